// Package ranking implements the BM25F-family scoring function of spec
// §4.5: a per-field weighted combination of term frequencies plus a
// shaped sum of non-term numeric features, with an Explain mode that
// exposes a per-term and per-(term,field) breakdown without changing
// the overall score.
package ranking

import (
	"math"

	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/model"
)

// Context carries the corpus-wide statistics and schema parameters a
// score computation needs. Implementations are expected to be cheap
// snapshots built fresh per query, not long-lived caches: AvgFieldLength
// and NumDocsTotal can change between queries as documents are
// inserted or deleted.
type Context interface {
	NumFields() int
	NumFeatures() int
	ParamK1() float32
	ParamB(f model.Field) float32
	FieldWeight(f model.Field) float32
	AvgFieldLength(f model.Field) float32
	NumDocsTotal() int
	NumDocsWithTerm(t model.TermId) int
	FeatureWeight(phi model.Feature) float32
	FeatureFunction(phi model.Feature) FeatureFunc
}

// Doc is the per-document view a score computation reads from.
type Doc interface {
	FieldLength(f model.Field) int
	FieldTermFrequency(f model.Field, t model.TermId) int
	FeatureValue(phi model.Feature) float32
}

// FeatureFunc is one of the three non-term feature shaping functions of
// spec §4.5, picked by Kind and parameterized by Lambda (and Lambda2
// for the sigmoid shape).
type FeatureFunc struct {
	Kind    config.FunctionKind
	Lambda  float32
	Lambda2 float32
}

// Apply evaluates the shaping function at x.
func (f FeatureFunc) Apply(x float32) float32 {
	switch f.Kind {
	case config.LogarithmicFunction:
		return float32(math.Log(float64(f.Lambda + x)))
	case config.RationalFunction:
		return x / (f.Lambda + x)
	case config.SigmoidFunction:
		return 1 / (f.Lambda + float32(math.Exp(float64(-x*f.Lambda2))))
	default:
		return 0
	}
}

// fieldMaskContext wraps a Context so that FieldWeight returns the
// wrapped weight for exactly one field and zero for every other,
// implementing Explain's termFieldScores re-scoring policy (spec §4.5).
type fieldMaskContext struct {
	Context
	only model.Field
}

func (m fieldMaskContext) FieldWeight(f model.Field) float32 {
	if f == m.only {
		return m.Context.FieldWeight(f)
	}
	return 0
}
