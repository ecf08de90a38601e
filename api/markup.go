package api

import (
	"fmt"

	"github.com/gcbaptista/docsearch/model"
)

// decodeMarkup converts the generic JSON value bound from a
// FieldInputRequest.Markup field into a model.Doc tree. The wire format
// mirrors model.Doc's variants with a "type" discriminator, since the
// documentation-comment parser that would otherwise produce a model.Doc
// from raw source text is out of scope (callers that already have a
// parsed tree post it directly).
func decodeMarkup(raw interface{}) (model.Doc, error) {
	if raw == nil {
		return model.DocEmpty{}, nil
	}
	node, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("markup node must be an object")
	}
	kind, _ := node["type"].(string)
	switch kind {
	case "", "empty":
		return model.DocEmpty{}, nil
	case "string":
		text, _ := node["text"].(string)
		return model.DocString{Text: text}, nil
	case "paragraph":
		inner, err := decodeMarkup(node["inner"])
		if err != nil {
			return nil, err
		}
		return model.DocParagraph{Inner: inner}, nil
	case "append":
		a, err := decodeMarkup(node["a"])
		if err != nil {
			return nil, err
		}
		b, err := decodeMarkup(node["b"])
		if err != nil {
			return nil, err
		}
		return model.DocAppend{A: a, B: b}, nil
	case "identifier":
		name, _ := node["name"].(string)
		return model.DocIdentifier{Name: name}, nil
	case "module":
		name, _ := node["name"].(string)
		return model.DocModule{Name: name}, nil
	case "emphasis":
		inner, err := decodeMarkup(node["inner"])
		if err != nil {
			return nil, err
		}
		return model.DocEmphasis{Inner: inner}, nil
	case "monospaced":
		text, _ := node["text"].(string)
		return model.DocMonospaced{Text: text}, nil
	case "unordered_list", "ordered_list":
		rawItems, _ := node["items"].([]interface{})
		items := make([]model.Doc, len(rawItems))
		for i, ri := range rawItems {
			item, err := decodeMarkup(ri)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		if kind == "unordered_list" {
			return model.DocUnorderedList{Items: items}, nil
		}
		return model.DocOrderedList{Items: items}, nil
	case "def_list":
		rawPairs, _ := node["pairs"].([]interface{})
		pairs := make([]model.DocDefPair, len(rawPairs))
		for i, rp := range rawPairs {
			pairMap, ok := rp.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("def_list pair %d must be an object", i)
			}
			term, err := decodeMarkup(pairMap["term"])
			if err != nil {
				return nil, err
			}
			def, err := decodeMarkup(pairMap["def"])
			if err != nil {
				return nil, err
			}
			pairs[i] = model.DocDefPair{Term: term, Def: def}
		}
		return model.DocDefList{Pairs: pairs}, nil
	case "code_block":
		code, _ := node["code"].(string)
		return model.DocCodeBlock{Code: code}, nil
	case "hyperlink":
		url, _ := node["url"].(string)
		var label model.Doc
		if node["label"] != nil {
			l, err := decodeMarkup(node["label"])
			if err != nil {
				return nil, err
			}
			label = l
		}
		return model.DocHyperlink{URL: url, Label: label}, nil
	case "picture":
		url, _ := node["url"].(string)
		return model.DocPicture{URL: url}, nil
	case "a_name":
		name, _ := node["name"].(string)
		return model.DocAName{Name: name}, nil
	default:
		return nil, fmt.Errorf("unknown markup node type %q", kind)
	}
}
