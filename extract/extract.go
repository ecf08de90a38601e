package extract

import (
	"strings"

	"github.com/kljensen/snowball/english"

	"github.com/gcbaptista/docsearch/model"
)

// ExtractSynopsisTerms tokenizes raw text directly: tokenize, split on
// ) - /, casefold, drop stopwords, stem (spec §4.6).
func ExtractSynopsisTerms(stopwords map[string]struct{}, text string) []model.Term {
	return normalizeTokens(stopwords, tokenize(text))
}

// ExtractDescriptionTerms folds a documentation markup tree per the
// table in spec §4.6, then runs the same tokenize/split/casefold/
// stopword/stem pipeline as ExtractSynopsisTerms over the recovered
// text. monospacedMaxLen bounds how many whitespace-delimited words an
// inline code span may have and still contribute (config.Schema's
// MonospacedMaxLen).
func ExtractDescriptionTerms(stopwords map[string]struct{}, doc model.Doc, monospacedMaxLen int) []model.Term {
	segs := foldDoc(doc, monospacedMaxLen, nil)

	var tokens []string
	for _, seg := range segs {
		if seg.atomic {
			tokens = append(tokens, seg.text)
			continue
		}
		tokens = append(tokens, tokenize(seg.text)...)
	}
	return normalizeTokens(stopwords, tokens)
}

// normalizeTokens applies the shared tail of the pipeline to an
// already-tokenized stream: split each token on its internal ) - /,
// casefold every resulting fragment, drop stopwords, stem.
func normalizeTokens(stopwords map[string]struct{}, tokens []string) []model.Term {
	var out []model.Term
	for _, tok := range tokens {
		for _, frag := range splitFragments(tok) {
			folded := strings.ToLower(frag)
			if folded == "" {
				continue
			}
			if _, isStopword := stopwords[folded]; isStopword {
				continue
			}
			out = append(out, model.Term(english.Stem(folded, false)))
		}
	}
	return out
}
