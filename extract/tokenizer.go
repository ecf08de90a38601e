// Package extract implements the text extraction pipeline of spec
// §4.6: tokenizing raw synopsis text, and folding+tokenizing a
// documentation markup tree, into normalized, stemmed index terms.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// wordRegex matches runs of letters, digits, underscore, and the three
// characters a token may still need to carry into the fragment-split
// step: ) - /. Unlike the teacher's original non-alphanumeric splitter,
// this one deliberately keeps those three characters inside a token
// instead of treating them as separators, so splitFragments can later
// decide whether they mark real word boundaries.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_)/-]+`)

// tokenize splits text into word-like tokens and drops any token that
// is pure punctuation (spec §4.6: "drop tokens consisting entirely of
// punctuation").
func tokenize(text string) []string {
	raw := wordRegex.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if hasWordChar(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func hasWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// splitFragments implements "split each remaining token on ), -, /,
// emitting both the whole token and its fragments when the token split
// into two or more pieces" (spec §4.6). A token with zero or one
// fragment (no internal split characters, or all of them at the edges)
// contributes only itself.
func splitFragments(token string) []string {
	pieces := strings.FieldsFunc(token, func(r rune) bool {
		return r == ')' || r == '-' || r == '/'
	})
	if len(pieces) < 2 {
		return []string{token}
	}
	out := make([]string, 0, len(pieces)+1)
	out = append(out, token)
	out = append(out, pieces...)
	return out
}
