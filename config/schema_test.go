package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldByName(t *testing.T) {
	s := &Schema{Fields: []FieldSpec{{Name: "synopsis"}, {Name: "description"}}}

	id, ok := s.FieldByName("description")
	assert.True(t, ok)
	assert.EqualValues(t, 1, id)

	_, ok = s.FieldByName("missing")
	assert.False(t, ok)
}

func TestFeatureByName(t *testing.T) {
	s := &Schema{Features: []FeatureSpec{{Name: "popularity"}, {Name: "recency"}}}

	id, ok := s.FeatureByName("recency")
	assert.True(t, ok)
	assert.EqualValues(t, 1, id)

	_, ok = s.FeatureByName("missing")
	assert.False(t, ok)
}

func TestValidateRejectsDuplicateFieldNames(t *testing.T) {
	s := &Schema{Fields: []FieldSpec{{Name: "body"}, {Name: "body"}}}
	assert.Error(t, s.Validate())
}

func TestValidateRejectsDuplicateFeatureNames(t *testing.T) {
	s := &Schema{Features: []FeatureSpec{{Name: "popularity"}, {Name: "popularity"}}}
	assert.Error(t, s.Validate())
}

func TestValidateRejectsEmptyNames(t *testing.T) {
	assert.Error(t, (&Schema{Fields: []FieldSpec{{Name: ""}}}).Validate())
	assert.Error(t, (&Schema{Features: []FeatureSpec{{Name: ""}}}).Validate())
}

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	s := &Schema{
		Fields:   []FieldSpec{{Name: "synopsis"}, {Name: "description"}},
		Features: []FeatureSpec{{Name: "popularity"}},
	}
	assert.NoError(t, s.Validate())
}

func TestFieldKindString(t *testing.T) {
	assert.Equal(t, "synopsis", SynopsisField.String())
	assert.Equal(t, "description", DescriptionField.String())
	assert.Equal(t, "unknown", FieldKind(99).String())
}
