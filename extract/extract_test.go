package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/docsearch/model"
)

func stopwordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func termStrings(terms []model.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = string(t)
	}
	return out
}

func TestExtractSynopsisTermsStemsToCommonRoot(t *testing.T) {
	stop := stopwordSet("the")

	a := termStrings(ExtractSynopsisTerms(stop, "running dogs"))
	b := termStrings(ExtractSynopsisTerms(stop, "runs dog"))

	assert.Contains(t, a, "dog")
	assert.Contains(t, b, "dog")

	var runStemA, runStemB string
	for i, w := range []string{"running", "runs"} {
		_ = w
		if i == 0 {
			runStemA = a[0]
		} else {
			runStemB = b[0]
		}
	}
	assert.Equal(t, runStemA, runStemB, "'running' and 'runs' must stem to the same term")
}

func TestExtractSynopsisTermsDropsStopwordsAndPunctuation(t *testing.T) {
	stop := stopwordSet("the", "a")
	terms := termStrings(ExtractSynopsisTerms(stop, "the quick-brown fox, a parser/lexer!"))

	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "a")
	assert.Contains(t, terms, "quick-brown") // whole token survives...
	assert.Contains(t, terms, "quick")       // ...alongside its fragments
	assert.Contains(t, terms, "brown")
	assert.Contains(t, terms, "parser/lex") // the whole token is stemmed too
	assert.Contains(t, terms, "parser")
	assert.Contains(t, terms, "lexer")
}

func TestExtractSynopsisTermsDropsPunctuationOnlyTokens(t *testing.T) {
	terms := ExtractSynopsisTerms(nil, "--- ... !!!")
	assert.Empty(t, terms)
}

func TestExtractDescriptionTermsFoldsParagraphAndAppend(t *testing.T) {
	doc := model.DocParagraph{Inner: model.DocAppend{
		A: model.DocString{Text: "parses"},
		B: model.DocString{Text: "json"},
	}}
	terms := termStrings(ExtractDescriptionTerms(nil, doc, 1))
	assert.Contains(t, terms, "json")
}

func TestExtractDescriptionTermsIdentifierIsOneToken(t *testing.T) {
	doc := model.DocIdentifier{Name: "parseJSON"}
	terms := termStrings(ExtractDescriptionTerms(nil, doc, 1))
	// Unlike free text, an identifier is never split on internal casing;
	// it passes through as a single (casefolded, stemmed) token.
	assert.Len(t, terms, 1)
}

func TestExtractDescriptionTermsDropsModuleCodeBlockAndPicture(t *testing.T) {
	doc := model.DocAppend{
		A: model.DocModule{Name: "Data.List"},
		B: model.DocAppend{
			A: model.DocCodeBlock{Code: "let x = 1"},
			B: model.DocPicture{URL: "http://example.com/x.png"},
		},
	}
	terms := ExtractDescriptionTerms(nil, doc, 1)
	assert.Empty(t, terms)
}

func TestExtractDescriptionTermsMonospacedLengthPolicy(t *testing.T) {
	short := model.DocMonospaced{Text: "foo"}
	long := model.DocMonospaced{Text: "foo bar baz"}

	assert.NotEmpty(t, ExtractDescriptionTerms(nil, short, 1))
	assert.Empty(t, ExtractDescriptionTerms(nil, long, 1))
	// With a higher configured cutoff, the longer span survives.
	assert.NotEmpty(t, ExtractDescriptionTerms(nil, long, 3))
}

func TestExtractDescriptionTermsHyperlinkLabelOnly(t *testing.T) {
	withLabel := model.DocHyperlink{URL: "http://example.com", Label: model.DocString{Text: "homepage"}}
	withoutLabel := model.DocHyperlink{URL: "http://example.com", Label: nil}

	assert.NotEmpty(t, ExtractDescriptionTerms(nil, withLabel, 1))
	assert.Empty(t, ExtractDescriptionTerms(nil, withoutLabel, 1))
}

func TestExtractDescriptionTermsDefListAndLists(t *testing.T) {
	doc := model.DocDefList{Pairs: []model.DocDefPair{
		{Term: model.DocString{Text: "alpha"}, Def: model.DocString{Text: "first"}},
	}}
	terms := termStrings(ExtractDescriptionTerms(nil, doc, 1))
	assert.Contains(t, terms, "alpha")
	assert.Contains(t, terms, "first")

	list := model.DocUnorderedList{Items: []model.Doc{
		model.DocString{Text: "one"},
		model.DocString{Text: "two"},
	}}
	listTerms := termStrings(ExtractDescriptionTerms(nil, list, 1))
	assert.Contains(t, listTerms, "one")
	assert.Contains(t, listTerms, "two")
}
