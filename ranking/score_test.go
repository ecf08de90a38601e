package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/model"
)

// fakeContext and fakeDoc are minimal in-package stand-ins for
// ranking.Context/Doc, letting these tests exercise the scoring
// formulas directly without pulling in the index package.
type fakeContext struct {
	numFields    int
	numFeatures  int
	k1           float32
	paramB       []float32
	fieldWeight  []float32
	avgFieldLen  []float32
	numDocsTotal int
	docsWithTerm map[model.TermId]int
	featWeight   []float32
	featFunc     []FeatureFunc
}

func (c *fakeContext) NumFields() int                            { return c.numFields }
func (c *fakeContext) NumFeatures() int                          { return c.numFeatures }
func (c *fakeContext) ParamK1() float32                          { return c.k1 }
func (c *fakeContext) ParamB(f model.Field) float32              { return c.paramB[f] }
func (c *fakeContext) FieldWeight(f model.Field) float32         { return c.fieldWeight[f] }
func (c *fakeContext) AvgFieldLength(f model.Field) float32      { return c.avgFieldLen[f] }
func (c *fakeContext) NumDocsTotal() int                         { return c.numDocsTotal }
func (c *fakeContext) NumDocsWithTerm(t model.TermId) int        { return c.docsWithTerm[t] }
func (c *fakeContext) FeatureWeight(phi model.Feature) float32   { return c.featWeight[phi] }
func (c *fakeContext) FeatureFunction(phi model.Feature) FeatureFunc {
	return c.featFunc[phi]
}

type fakeDoc struct {
	fieldLen  []int
	termFreq  map[model.Field]map[model.TermId]int
	featVals  []float32
}

func (d *fakeDoc) FieldLength(f model.Field) int { return d.fieldLen[f] }
func (d *fakeDoc) FieldTermFrequency(f model.Field, t model.TermId) int {
	return d.termFreq[f][t]
}
func (d *fakeDoc) FeatureValue(phi model.Feature) float32 { return d.featVals[phi] }

func singleFieldCtx(k1, paramB, fieldWeight, avgLen float32, numDocs int, docsWithTerm map[model.TermId]int) *fakeContext {
	return &fakeContext{
		numFields:    1,
		numFeatures:  0,
		k1:           k1,
		paramB:       []float32{paramB},
		fieldWeight:  []float32{fieldWeight},
		avgFieldLen:  []float32{avgLen},
		numDocsTotal: numDocs,
		docsWithTerm: docsWithTerm,
	}
}

func TestScorePositiveForMatchingTerm(t *testing.T) {
	// The term is in 1 of 10 documents, so W_idf > 0.
	ctx := singleFieldCtx(1.2, 0.75, 1, 2, 10, map[model.TermId]int{1: 1})
	doc := &fakeDoc{fieldLen: []int{2}, termFreq: map[model.Field]map[model.TermId]int{0: {1: 1}}}

	s := Score(ctx, doc, []model.TermId{1})
	assert.Greater(t, s, float32(0))
}

func TestScoreEmptyIndexNoTerms(t *testing.T) {
	ctx := singleFieldCtx(1.2, 0.75, 1, 0, 0, nil)
	doc := &fakeDoc{fieldLen: []int{0}, termFreq: map[model.Field]map[model.TermId]int{}}

	s := Score(ctx, doc, nil)
	assert.Equal(t, float32(0), s)
}

func TestNaNFieldIsSkippedNotPropagated(t *testing.T) {
	// Two fields: "title" always empty across the corpus (avg=0, doc=0 -> NaN),
	// "body" has real content. Overall score must not be NaN.
	ctx := &fakeContext{
		numFields:    2,
		numFeatures:  0,
		k1:           1.2,
		paramB:       []float32{0.75, 0.75},
		fieldWeight:  []float32{1, 1},
		avgFieldLen:  []float32{0, 3},
		numDocsTotal: 10,
		docsWithTerm: map[model.TermId]int{1: 1},
	}
	doc := &fakeDoc{
		fieldLen: []int{0, 3},
		termFreq: map[model.Field]map[model.TermId]int{
			0: {},
			1: {1: 2},
		},
	}

	s := Score(ctx, doc, []model.TermId{1})
	assert.False(t, math.IsNaN(float64(s)), "title's NaN B_f must not poison the overall score")
	assert.Greater(t, s, float32(0))
}

func TestScoreMonotoneInTermFrequency(t *testing.T) {
	ctx := singleFieldCtx(1.2, 0.75, 1, 3, 10, map[model.TermId]int{1: 1})
	low := &fakeDoc{fieldLen: []int{3}, termFreq: map[model.Field]map[model.TermId]int{0: {1: 1}}}
	high := &fakeDoc{fieldLen: []int{3}, termFreq: map[model.Field]map[model.TermId]int{0: {1: 5}}}

	assert.Greater(t, Score(ctx, high, []model.TermId{1}), Score(ctx, low, []model.TermId{1}))
}

func TestFeatureFunctionShapes(t *testing.T) {
	log := FeatureFunc{Kind: config.LogarithmicFunction, Lambda: 1}
	assert.InDelta(t, math.Log(1+2.0), log.Apply(2), 1e-5)

	rat := FeatureFunc{Kind: config.RationalFunction, Lambda: 1}
	assert.InDelta(t, 2.0/3.0, rat.Apply(2), 1e-5)

	sig := FeatureFunc{Kind: config.SigmoidFunction, Lambda: 1, Lambda2: 1}
	assert.InDelta(t, 1/(1+math.Exp(-2.0)), sig.Apply(2), 1e-5)
}

func TestExplainMatchesScoreExactly(t *testing.T) {
	ctx := &fakeContext{
		numFields:    2,
		numFeatures:  1,
		k1:           1.2,
		paramB:       []float32{0.75, 0.5},
		fieldWeight:  []float32{2, 1},
		avgFieldLen:  []float32{4, 10},
		numDocsTotal: 5,
		docsWithTerm: map[model.TermId]int{1: 2, 2: 1},
		featWeight:   []float32{0.3},
		featFunc:     []FeatureFunc{{Kind: config.LogarithmicFunction, Lambda: 1}},
	}
	doc := &fakeDoc{
		fieldLen: []int{5, 12},
		termFreq: map[model.Field]map[model.TermId]int{
			0: {1: 2, 2: 1},
			1: {1: 1},
		},
		featVals: []float32{7},
	}
	terms := []model.TermId{1, 2}

	score := Score(ctx, doc, terms)
	exp := Explain(ctx, doc, terms)

	assert.Equal(t, score, exp.OverallScore)

	var sum float32
	for _, t := range terms {
		sum += exp.TermScores[t]
	}
	for phi := 0; phi < ctx.NumFeatures(); phi++ {
		sum += exp.NonTermScores[model.Feature(phi)]
	}
	assert.Equal(t, exp.OverallScore, sum)

	assert.Len(t, exp.TermFieldScores[1], 2)
}

func TestScoreTermsBulkMatchesScore(t *testing.T) {
	ctx := singleFieldCtx(1.2, 0.75, 1, 3, 4, map[model.TermId]int{1: 2, 2: 1})
	doc := &fakeDoc{fieldLen: []int{3}, termFreq: map[model.Field]map[model.TermId]int{0: {1: 2, 2: 1}}}

	bulk := ScoreTermsBulk(ctx, doc)
	var bulkSum float32
	for _, t := range []model.TermId{1, 2} {
		bulkSum += bulk(t, func(f model.Field) int { return doc.FieldTermFrequency(f, t) })
	}

	assert.InDelta(t, Score(ctx, doc, []model.TermId{1, 2}), bulkSum, 1e-6)
}
