package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/docsearch/model"
)

func TestDecodeMarkupNil(t *testing.T) {
	doc, err := decodeMarkup(nil)
	require.NoError(t, err)
	assert.Equal(t, model.DocEmpty{}, doc)
}

func TestDecodeMarkupStringAndParagraph(t *testing.T) {
	raw := map[string]interface{}{
		"type": "paragraph",
		"inner": map[string]interface{}{
			"type": "string",
			"text": "hello",
		},
	}
	doc, err := decodeMarkup(raw)
	require.NoError(t, err)
	assert.Equal(t, model.DocParagraph{Inner: model.DocString{Text: "hello"}}, doc)
}

func TestDecodeMarkupAppendAndIdentifier(t *testing.T) {
	raw := map[string]interface{}{
		"type": "append",
		"a":    map[string]interface{}{"type": "identifier", "name": "parseJSON"},
		"b":    map[string]interface{}{"type": "string", "text": "parses json"},
	}
	doc, err := decodeMarkup(raw)
	require.NoError(t, err)
	assert.Equal(t, model.DocAppend{
		A: model.DocIdentifier{Name: "parseJSON"},
		B: model.DocString{Text: "parses json"},
	}, doc)
}

func TestDecodeMarkupHyperlinkWithoutLabel(t *testing.T) {
	raw := map[string]interface{}{"type": "hyperlink", "url": "http://example.com"}
	doc, err := decodeMarkup(raw)
	require.NoError(t, err)
	hyperlink, ok := doc.(model.DocHyperlink)
	require.True(t, ok)
	assert.Equal(t, "http://example.com", hyperlink.URL)
	assert.Nil(t, hyperlink.Label)
}

func TestDecodeMarkupUnorderedList(t *testing.T) {
	raw := map[string]interface{}{
		"type": "unordered_list",
		"items": []interface{}{
			map[string]interface{}{"type": "string", "text": "one"},
			map[string]interface{}{"type": "string", "text": "two"},
		},
	}
	doc, err := decodeMarkup(raw)
	require.NoError(t, err)
	assert.Equal(t, model.DocUnorderedList{Items: []model.Doc{
		model.DocString{Text: "one"},
		model.DocString{Text: "two"},
	}}, doc)
}

func TestDecodeMarkupUnknownTypeErrors(t *testing.T) {
	_, err := decodeMarkup(map[string]interface{}{"type": "bogus"})
	assert.Error(t, err)
}

func TestDecodeMarkupNonObjectErrors(t *testing.T) {
	_, err := decodeMarkup("not an object")
	assert.Error(t, err)
}
