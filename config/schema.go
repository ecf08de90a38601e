// Package config defines the schema a SearchIndex, ranker, and extractor
// are built from: the fixed set of searchable fields and non-term
// features, their BM25F parameters, and the extraction policy.
package config

import (
	"fmt"

	"github.com/gcbaptista/docsearch/model"
)

// FieldKind selects which text-extraction entry point a field's raw
// string values are run through.
type FieldKind int

const (
	// SynopsisField runs through ExtractSynopsisTerms: plain text,
	// tokenized directly.
	SynopsisField FieldKind = iota
	// DescriptionField runs through ExtractDescriptionTerms: the raw
	// string is lexed/parsed as documentation markup first.
	DescriptionField
)

func (k FieldKind) String() string {
	switch k {
	case SynopsisField:
		return "synopsis"
	case DescriptionField:
		return "description"
	default:
		return "unknown"
	}
}

// FieldSpec describes one searchable field and its BM25F weighting.
type FieldSpec struct {
	Name   string    `json:"name"`
	Kind   FieldKind `json:"kind"`
	ParamB float32   `json:"param_b"` // length-normalization strength, typically 0..1
	Weight float32   `json:"weight"`  // per-field contribution weight
}

// FunctionKind selects one of the three non-term feature shaping
// functions of spec §4.5.
type FunctionKind int

const (
	LogarithmicFunction FunctionKind = iota
	RationalFunction
	SigmoidFunction
)

// FeatureSpec describes one non-term numeric feature (e.g. popularity)
// and the shaping function applied to its raw value before weighting.
type FeatureSpec struct {
	Name     string       `json:"name"`
	Weight   float32      `json:"weight"`
	Function FunctionKind `json:"function"`
	Lambda   float32      `json:"lambda"`  // used by all three shapes
	Lambda2  float32      `json:"lambda2"` // used only by SigmoidFunction
}

// Schema is the fixed, finite enumeration of fields and features a
// SearchIndex is constructed with. It does not change for the lifetime
// of an index.
type Schema struct {
	Name     string      `json:"name"`
	Fields   []FieldSpec `json:"fields"`
	Features []FeatureSpec `json:"features"`

	// ParamK1 controls term-frequency saturation, shared across all
	// fields (spec §4.5).
	ParamK1 float32 `json:"param_k1"`

	// Stopwords are already case-folded terms dropped by the text
	// extractor before stemming.
	Stopwords map[string]struct{} `json:"-"`

	// MonospacedMaxLen is the inclusive length (in whitespace-delimited
	// words) at or under which a DocMonospaced span still contributes
	// text; spans longer than this are assumed to be multi-word code
	// and dropped. The source engine this is modeled on hardcodes this
	// at 1; kept configurable per spec §9's open question.
	MonospacedMaxLen int `json:"monospaced_max_len"`
}

// DefaultMonospacedMaxLen preserves the behavior of the engine this
// schema is modeled on: inline code longer than a single word is
// filtered out of the index vocabulary.
const DefaultMonospacedMaxLen = 1

// FieldByName returns the ordinal of the named field, if present.
func (s *Schema) FieldByName(name string) (model.Field, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return model.Field(i), true
		}
	}
	return 0, false
}

// FeatureByName returns the ordinal of the named feature, if present.
func (s *Schema) FeatureByName(name string) (model.Feature, bool) {
	for i, f := range s.Features {
		if f.Name == name {
			return model.Feature(i), true
		}
	}
	return 0, false
}

// Validate checks for structural problems in the schema: empty or
// duplicate field/feature names. It does not check ParamK1, ParamB,
// weights, or feature-function lambdas.
func (s *Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("config: field with empty name")
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("config: duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	seenFeat := make(map[string]struct{}, len(s.Features))
	for _, ft := range s.Features {
		if ft.Name == "" {
			return fmt.Errorf("config: feature with empty name")
		}
		if _, dup := seenFeat[ft.Name]; dup {
			return fmt.Errorf("config: duplicate feature name %q", ft.Name)
		}
		seenFeat[ft.Name] = struct{}{}
	}
	return nil
}
