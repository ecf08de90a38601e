package ranking

import (
	"math"

	"github.com/gcbaptista/docsearch/model"
)

// precomputeBf computes the per-field length-normalization factor
// B_f(D) for every field ordinal in ctx. A field whose average length
// and this document's length are both zero divides 0/0, which is
// exactly the IEEE-754 NaN spec §4.5 uses as the "skip this field"
// sentinel; no special case is needed to produce it.
func precomputeBf(ctx Context, doc Doc) []float32 {
	bf := make([]float32, ctx.NumFields())
	for f := 0; f < len(bf); f++ {
		field := model.Field(f)
		b := ctx.ParamB(field)
		docLen := float32(doc.FieldLength(field))
		avgLen := ctx.AvgFieldLength(field)
		bf[f] = (1 - b) + b*docLen/avgLen
	}
	return bf
}

func isNaN32(x float32) bool {
	return math.IsNaN(float64(x))
}

// idfOf computes W_idf(t) = log((N - n_t + 0.5) / (n_t + 0.5)).
func idfOf(ctx Context, t model.TermId) float32 {
	n := float32(ctx.NumDocsTotal())
	nt := float32(ctx.NumDocsWithTerm(t))
	return float32(math.Log(float64((n - nt + 0.5) / (nt + 0.5))))
}

// tfPrimeOf computes tf'(D, t), skipping any field whose precomputed
// B_f is NaN.
func tfPrimeOf(ctx Context, doc Doc, t model.TermId, bf []float32) float32 {
	var sum float32
	for f := 0; f < len(bf); f++ {
		if isNaN32(bf[f]) {
			continue
		}
		tf := float32(doc.FieldTermFrequency(model.Field(f), t))
		if tf == 0 {
			continue
		}
		sum += ctx.FieldWeight(model.Field(f)) * tf / bf[f]
	}
	return sum
}

// termScore computes a single query term's contribution to the overall
// score: W_idf(t) * tf'(D,t) / (k1 + tf'(D,t)).
func termScore(ctx Context, doc Doc, t model.TermId, bf []float32) float32 {
	tfPrime := tfPrimeOf(ctx, doc, t, bf)
	return idfOf(ctx, t) * tfPrime / (ctx.ParamK1() + tfPrime)
}

// featureScore computes one feature's weighted, shaped contribution.
func featureScore(ctx Context, doc Doc, phi model.Feature) float32 {
	return ctx.FeatureWeight(phi) * ctx.FeatureFunction(phi).Apply(doc.FeatureValue(phi))
}

// Score computes the BM25F score of doc against query terms, per spec
// §4.5. terms is taken as given: callers that want set semantics must
// deduplicate before calling.
func Score(ctx Context, doc Doc, terms []model.TermId) float32 {
	bf := precomputeBf(ctx, doc)

	var termSum float32
	for _, t := range terms {
		termSum += termScore(ctx, doc, t, bf)
	}

	var featureSum float32
	for phi := 0; phi < ctx.NumFeatures(); phi++ {
		featureSum += featureScore(ctx, doc, model.Feature(phi))
	}

	return termSum + featureSum
}

// ScoreTermsBulk returns a closure over doc's precomputed per-field
// B_f vector and ctx's k1, for scoring many terms against the same
// document without recomputing either per term (spec §4.5 "bulk
// scoring"). freq is called once per field to get that field's term
// frequency for the term being scored; it need not be memoized by the
// caller since ScoreTermsBulk itself does not cache across calls.
func ScoreTermsBulk(ctx Context, doc Doc) func(t model.TermId, freq func(model.Field) int) float32 {
	bf := precomputeBf(ctx, doc)
	k1 := ctx.ParamK1()

	return func(t model.TermId, freq func(model.Field) int) float32 {
		var tfPrime float32
		for f := 0; f < len(bf); f++ {
			if isNaN32(bf[f]) {
				continue
			}
			tf := float32(freq(model.Field(f)))
			if tf == 0 {
				continue
			}
			tfPrime += ctx.FieldWeight(model.Field(f)) * tf / bf[f]
		}
		return idfOf(ctx, t) * tfPrime / (k1 + tfPrime)
	}
}

// Explanation is the diagnostic breakdown returned by Explain.
// TermFieldScores are informational only: per spec §4.5 they do not
// sum to their term's entry in TermScores because the field
// combination inside tf' is non-linear.
type Explanation struct {
	OverallScore    float32
	TermScores      map[model.TermId]float32
	NonTermScores   map[model.Feature]float32
	TermFieldScores map[model.TermId]map[model.Field]float32
}

// Explain computes the same overall score as Score, plus a per-term,
// per-feature, and per-(term,field) breakdown. OverallScore is required
// to equal Score(ctx, doc, terms) bit for bit: both sum the identical
// per-term and per-feature values in the identical order.
func Explain(ctx Context, doc Doc, terms []model.TermId) Explanation {
	bf := precomputeBf(ctx, doc)

	termScores := make(map[model.TermId]float32, len(terms))
	termFieldScores := make(map[model.TermId]map[model.Field]float32, len(terms))
	var termSum float32
	for _, t := range terms {
		ts := termScore(ctx, doc, t, bf)
		termScores[t] = ts
		termSum += ts

		perField := make(map[model.Field]float32, ctx.NumFields())
		for f := 0; f < ctx.NumFields(); f++ {
			masked := fieldMaskContext{Context: ctx, only: model.Field(f)}
			perField[model.Field(f)] = termScore(masked, doc, t, bf)
		}
		termFieldScores[t] = perField
	}

	nonTermScores := make(map[model.Feature]float32, ctx.NumFeatures())
	var featureSum float32
	for phi := 0; phi < ctx.NumFeatures(); phi++ {
		fs := featureScore(ctx, doc, model.Feature(phi))
		nonTermScores[model.Feature(phi)] = fs
		featureSum += fs
	}

	return Explanation{
		OverallScore:    termSum + featureSum,
		TermScores:      termScores,
		NonTermScores:   nonTermScores,
		TermFieldScores: termFieldScores,
	}
}
