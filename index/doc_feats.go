package index

import "github.com/gcbaptista/docsearch/model"

// DocFeatVals holds, for one document, a dense per-feature
// floating-point vector indexed by feature ordinal (spec §4.3).
type DocFeatVals struct {
	vals []float32
}

// NewDocFeatVals materializes a DocFeatVals for a schema with
// numFeatures features, calling get once per feature in ordinal order.
func NewDocFeatVals(numFeatures int, get func(model.Feature) float32) *DocFeatVals {
	d := &DocFeatVals{vals: make([]float32, numFeatures)}
	for i := 0; i < numFeatures; i++ {
		d.vals[i] = get(model.Feature(i))
	}
	return d
}

// Lookup returns the value stored for feature phi.
func (d *DocFeatVals) Lookup(phi model.Feature) float32 {
	if int(phi) < 0 || int(phi) >= len(d.vals) {
		return 0
	}
	return d.vals[phi]
}
