package column_test

import (
	"testing"

	"github.com/ini-bdds/tabularstat/internal/column"
	"github.com/stretchr/testify/assert"
)

func observeAll(c *column.Column, values []string) {
	for i, v := range values {
		c.Observe(i+1, v)
	}
}

func Test_Classify_Categorical(t *testing.T) {
	c := column.New(column.DefaultConfig())
	// K=3 distinct values over N=10 observations: K <= cardinality cap,
	// max <= the categorical value bound, and K < N/2.
	observeAll(c, []string{"1", "2", "1", "3", "2", "1", "2", "3", "1", "2"})
	assert.Equal(t, column.Categorical, c.Classify())
}

func Test_Classify_QuantitativeWithNegatives(t *testing.T) {
	c := column.New(column.DefaultConfig())
	observeAll(c, []string{"-3", "5", "102", "-8"})
	assert.Equal(t, column.Quantitative, c.Classify())
}

func Test_Classify_CategoricalWithNegatives(t *testing.T) {
	c := column.New(column.DefaultConfig())
	// A Likert-style scale symmetric around zero, within
	// +-(MaxAbsoluteCategoricalValue/2).
	observeAll(c, []string{"-2", "-1", "0", "1", "2"})
	assert.Equal(t, column.Categorical, c.Classify())
}

func Test_Classify_Ordinal(t *testing.T) {
	cfg := column.DefaultConfig()
	// Force the value set to overflow immediately after the first
	// distinct value, so excess_values is set ahead of the dense-sequence
	// check.
	cfg.MaxCategoryCardinality = 1
	c := column.New(cfg)
	values := []string{"1"}
	for i := 0; i < 99; i++ {
		values = append(values, "100")
	}
	observeAll(c, values)
	assert.NotEmpty(t, c.ExcessValues)
	assert.Equal(t, column.Ordinal, c.Classify())
}

func Test_Classify_IntegerOverflowNonDenseIsQuantitative(t *testing.T) {
	cfg := column.DefaultConfig()
	cfg.MaxCategoryCardinality = 2
	c := column.New(cfg)
	observeAll(c, []string{"5", "13", "27", "41"})
	assert.NotEmpty(t, c.ExcessValues)
	assert.Equal(t, column.Quantitative, c.Classify())
}

func Test_Classify_Float(t *testing.T) {
	c := column.New(column.DefaultConfig())
	observeAll(c, []string{"1.5", "2.25", "3.0"})
	assert.Equal(t, column.Quantitative, c.Classify())
	assert.InDelta(t, 2.25, c.Mean(), 0.5)
}

func Test_Classify_StringCategorical(t *testing.T) {
	c := column.New(column.DefaultConfig())
	observeAll(c, []string{"red", "blue", "red", "green"})
	assert.Equal(t, column.Categorical, c.Classify())
}

func Test_Classify_MissingPlaceholderOnly(t *testing.T) {
	c := column.New(column.DefaultConfig())
	observeAll(c, []string{"n/a", "NA", "missing", "null"})
	assert.Equal(t, column.Categorical, c.Classify())
}

func Test_Classify_EmptyColumn(t *testing.T) {
	c := column.New(column.DefaultConfig())
	observeAll(c, []string{"", "", ""})
	assert.Equal(t, column.Unknown, c.Classify())
}

func Test_Classify_MixedStringAndNumeric(t *testing.T) {
	c := column.New(column.DefaultConfig())
	observeAll(c, []string{"1", "two", "3.0"})
	assert.Equal(t, column.Unknown, c.Classify())
}

func Test_Observe_TracksExtremaAndLongFields(t *testing.T) {
	cfg := column.DefaultConfig()
	cfg.LongFieldLenThreshold = 3
	c := column.New(cfg)
	observeAll(c, []string{"1", "2000", "abcd"})
	assert.Equal(t, float64(1), c.Min())
	assert.Equal(t, float64(2000), c.Max())
	assert.Equal(t, 2, c.LongFieldCount)
	assert.Equal(t, 4, c.MaxFieldLen)
}

func Test_Observe_ValueSetFreezesAndRecordsExcess(t *testing.T) {
	cfg := column.DefaultConfig()
	cfg.MaxCategoryCardinality = 2
	c := column.New(cfg)
	observeAll(c, []string{"a", "b", "c", "d"})
	assert.True(t, c.ValueSet.Full())
	assert.NotEmpty(t, c.ExcessValues)
}
