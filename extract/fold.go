package extract

import (
	"strings"

	"github.com/gcbaptista/docsearch/model"
)

// segment is one chunk of text recovered from folding a markup tree.
// atomic segments (DocIdentifier's contribution) bypass tokenize and
// enter the rest of the pipeline as a single token (spec §4.6,
// "Identifier(s): s as a single token"); the ) - / fragment split,
// casefold, stopword, and stem steps still apply to that token.
type segment struct {
	text   string
	atomic bool
}

// foldDoc walks d and appends its text contribution, per the table in
// spec §4.6, to segs.
func foldDoc(d model.Doc, monospacedMaxLen int, segs []segment) []segment {
	switch n := d.(type) {
	case model.DocEmpty:
		return segs
	case model.DocString:
		return append(segs, segment{text: n.Text})
	case model.DocParagraph:
		return foldDoc(n.Inner, monospacedMaxLen, segs)
	case model.DocAppend:
		segs = foldDoc(n.A, monospacedMaxLen, segs)
		return foldDoc(n.B, monospacedMaxLen, segs)
	case model.DocIdentifier:
		return append(segs, segment{text: n.Name, atomic: true})
	case model.DocModule:
		return segs
	case model.DocEmphasis:
		return foldDoc(n.Inner, monospacedMaxLen, segs)
	case model.DocMonospaced:
		if len(strings.Fields(n.Text)) <= monospacedMaxLen {
			return append(segs, segment{text: n.Text})
		}
		return segs
	case model.DocUnorderedList:
		for _, item := range n.Items {
			segs = foldDoc(item, monospacedMaxLen, segs)
		}
		return segs
	case model.DocOrderedList:
		for _, item := range n.Items {
			segs = foldDoc(item, monospacedMaxLen, segs)
		}
		return segs
	case model.DocDefList:
		for _, pair := range n.Pairs {
			segs = foldDoc(pair.Term, monospacedMaxLen, segs)
			segs = foldDoc(pair.Def, monospacedMaxLen, segs)
		}
		return segs
	case model.DocCodeBlock:
		return segs
	case model.DocHyperlink:
		if n.Label != nil {
			return foldDoc(n.Label, monospacedMaxLen, segs)
		}
		return segs
	case model.DocPicture:
		return segs
	case model.DocAName:
		return segs
	default:
		return segs
	}
}
