// Package column accumulates per-field statistics for a single table column
// as rows stream past, and classifies the column once accumulation is
// complete. It is grounded on original_source/src/c/tabular/line.c (the
// accumulation: _parse_field and its recursive mean/variance update) and
// original_source/src/c/tabular/column.c (the classifier: analyze_column
// and its _integer_inference sub-heuristic), generalizing the teacher's
// plain []string record shape (api.go's CurrentRecord) into a typed,
// statistically summarized column.
package column

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ini-bdds/tabularstat/internal/strset"
)

// FieldType is the type a single field value was inferred to hold.
type FieldType int

const (
	Empty FieldType = iota
	String
	Integer
	Float
	fieldTypeCount
)

// Class is the statistical classification assigned to a fully accumulated
// column.
type Class int

const (
	Unknown Class = iota
	Categorical
	Quantitative
	Ordinal
)

func (c Class) String() string {
	switch c {
	case Categorical:
		return "categorical"
	case Quantitative:
		return "quantitative"
	case Ordinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

func (f FieldType) String() string {
	switch f {
	case Empty:
		return "empty"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// maxIntegerMagnitude bounds the bitmask Column.IntegerMagnitudes: bit k is
// set when a value v satisfies floor(log10(1+|v|)) == k.
const maxIntegerMagnitude = 18

// missingDataPlaceholder matches common string encodings of a missing
// value, used by the classifier to recognize a string column whose every
// distinct label is such a placeholder as a degenerate categorical.
var missingDataPlaceholder = regexp.MustCompile(`(?i)^(n/?a|missing|null|none|unavailable|empty)$`)

// Config bounds column accumulation. Tunables are read once into this
// struct instead of living as mutable package state, per the ambient
// configuration convention the rest of this module follows.
type Config struct {
	MaxCategoryCardinality      int
	MaxAbsoluteCategoricalValue int64
	MaxLenCategoryLabel         int
	LongFieldLenThreshold       int
}

// DefaultConfig matches the original implementation's compiled-in
// defaults (overridable via environment in the top-level Config).
func DefaultConfig() Config {
	return Config{
		MaxCategoryCardinality:      32,
		MaxAbsoluteCategoricalValue: 16,
		MaxLenCategoryLabel:         63,
		LongFieldLenThreshold:       128,
	}
}

// Column accumulates votes and statistics for one table column.
type Column struct {
	cfg Config

	TypeVotes [fieldTypeCount]int

	n      int
	mean   float64
	ss     float64
	hasExt bool
	min    float64
	max    float64

	HasNegativeIntegers bool
	IntegerMagnitudes   uint32

	ValueSet *strset.Set
	// ExcessValues holds the 1-based row ordinal of every value_set
	// admission that returned strset.Full (the first of them is the one
	// that froze the set); it is empty if the set never overflowed.
	// Callers typically only care about len(ExcessValues) > 0.
	ExcessValues []int

	MaxFieldLen    int
	LongFieldCount int
}

// New returns an empty Column accumulator.
func New(cfg Config) *Column {
	return &Column{
		cfg:      cfg,
		ValueSet: strset.New(cfg.MaxCategoryCardinality),
	}
}

func magnitudeBit(v float64) int {
	m := int(math.Floor(math.Log10(1 + math.Abs(v))))
	if m < 0 {
		m = 0
	}
	if m >= maxIntegerMagnitude {
		m = maxIntegerMagnitude - 1
	}
	return m
}

func classifyField(raw string) (FieldType, int64, float64) {
	if raw == "" {
		return Empty, 0, 0
	}
	if iv, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Integer, iv, float64(iv)
	}
	if fv, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float, 0, fv
	}
	return String, 0, 0
}

// Observe folds one field's raw text into the column's accumulated state.
// rowOrdinal is the 1-based data-row number, used only to record excess
// value_set admissions.
func (c *Column) Observe(rowOrdinal int, raw string) {
	fl := len(raw)
	if fl > c.MaxFieldLen {
		c.MaxFieldLen = fl
	}
	if fl > c.cfg.LongFieldLenThreshold {
		c.LongFieldCount++
	}

	ty, iv, fv := classifyField(raw)
	c.TypeVotes[ty]++

	switch ty {
	case Integer, Float:
		x := fv
		if ty == Integer {
			x = float64(iv)
			if iv < 0 {
				c.HasNegativeIntegers = true
			}
			c.IntegerMagnitudes |= 1 << uint(magnitudeBit(x))
		}
		c.updateStats(x)
		if !c.hasExt {
			c.min, c.max = x, x
			c.hasExt = true
		} else {
			if x < c.min {
				c.min = x
			}
			if x > c.max {
				c.max = x
			}
		}
	}

	// Value-set admission: any field that isn't Float is a candidate for
	// categorical labeling, including Integer (a "small" integer column is
	// often really a category code), per line.c's _parse_field.
	if ty == Integer || ty == String {
		if fl <= c.cfg.MaxLenCategoryLabel {
			result := c.ValueSet.Insert(raw)
			if result == strset.Full {
				c.ExcessValues = append(c.ExcessValues, rowOrdinal)
			}
		}
	}
}

// updateStats applies the recursive mean/sample-variance update of
// _parse_field (N is the pre-update sample count); ss holds the sample
// variance of the values seen so far.
func (c *Column) updateStats(x float64) {
	n := c.n
	if n == 0 {
		c.mean = x
		c.ss = 0
		c.n = 1
		return
	}
	delta := x - c.mean
	newMean := (float64(n)*c.mean + x) / (float64(n) + 1.0)
	c.ss = (float64(n-1)*c.ss + float64(n)*delta*delta/float64(n+1)) / float64(n)
	c.mean = newMean
	c.n = n + 1
}

// Mean returns the running mean of numeric observations.
func (c *Column) Mean() float64 { return c.mean }

// Stddev returns the running standard deviation of numeric observations.
func (c *Column) Stddev() float64 {
	if c.ss < 0 {
		return 0
	}
	return math.Sqrt(c.ss)
}

// Min and Max return the numeric extrema observed, valid only when
// TypeVotes[Integer]+TypeVotes[Float] > 0.
func (c *Column) Min() float64 { return c.min }
func (c *Column) Max() float64 { return c.max }

// DominantType returns the field type with the most votes, excluding
// Empty (used for reporting a column's nominal type alongside its
// statistical class).
func (c *Column) DominantType() FieldType {
	best := Empty
	bestN := -1
	for _, ty := range []FieldType{String, Integer, Float} {
		if c.TypeVotes[ty] > bestN {
			best = ty
			bestN = c.TypeVotes[ty]
		}
	}
	return best
}

// observedTypeCount returns how many of {Empty,Integer,Float,String} were
// seen at least once.
func (c *Column) observedTypeCount() int {
	n := 0
	for _, v := range c.TypeVotes {
		if v > 0 {
			n++
		}
	}
	return n
}

// magnitudeBand returns floor(log10(v)), the band index used by the
// N_MAG == MAX_MAG comparison in integerInference. Distinct from
// magnitudeBit, which records floor(log10(1+|v|)) per value observed.
func magnitudeBand(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(math.Log10(v)))
}

// integerInference resolves an all-integer (possibly plus empty) column
// into Categorical, Quantitative, or Ordinal, ported from
// column.c's _integer_inference, in the original's branch order:
// excess_values first, then has_negative_integers, then the
// magnitude/cardinality gates.
func (c *Column) integerInference() Class {
	n := c.TypeVotes[Integer]
	k := c.ValueSet.Count()
	nMag := popcount32(c.IntegerMagnitudes)

	if len(c.ExcessValues) > 0 {
		// Cardinality overflowed: it can only be Ordinal or Quantitative.
		if c.HasNegativeIntegers {
			return Quantitative
		}
		maxMag := magnitudeBand(c.max)
		if nMag == maxMag && int(math.Round(c.min)) == 1 && int(math.Round(c.max)) == n {
			return Ordinal
		}
		return Quantitative
	}

	// value_set did not overflow.
	if c.HasNegativeIntegers {
		half := float64(c.cfg.MaxAbsoluteCategoricalValue) / 2
		if -half <= c.min && c.max <= half {
			return Categorical
		}
		return Quantitative
	}

	if k <= c.cfg.MaxCategoryCardinality && int64(c.max) <= c.cfg.MaxAbsoluteCategoricalValue && k < n/2 {
		return Categorical
	}
	return Quantitative
}

func popcount32(v uint32) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

// isPlaceholderOnly reports whether every distinct string observed in the
// value_set is a recognizable missing-data placeholder.
func (c *Column) isPlaceholderOnly() bool {
	if c.ValueSet.Count() == 0 {
		return false
	}
	for _, v := range c.ValueSet.Values() {
		if !missingDataPlaceholder.MatchString(strings.TrimSpace(v)) {
			return false
		}
	}
	return true
}

// Classify assigns a statistical class to the column, ported from
// column.c's analyze_column dispatch over the number of distinct observed
// field types.
func (c *Column) Classify() Class {
	switch c.observedTypeCount() {
	case 0:
		return Unknown
	case 1:
		switch {
		case c.TypeVotes[Integer] > 0:
			return c.integerInference()
		case c.TypeVotes[Float] > 0:
			return Quantitative
		case c.TypeVotes[String] > 0:
			if c.isPlaceholderOnly() {
				return Categorical
			}
			if c.ValueSet.Full() {
				return Unknown
			}
			return Categorical
		default:
			return Unknown
		}
	case 2:
		switch {
		case c.TypeVotes[Integer] > 0 && c.TypeVotes[Float] > 0:
			return Quantitative
		case c.TypeVotes[Empty] > 0 && c.TypeVotes[Integer] > 0:
			return c.integerInference()
		case c.TypeVotes[Empty] > 0 && c.TypeVotes[Float] > 0:
			return Quantitative
		case c.TypeVotes[Empty] > 0 && c.TypeVotes[String] > 0:
			if c.isPlaceholderOnly() {
				return Categorical
			}
			return Categorical
		default:
			return Unknown
		}
	default:
		// Three or four observed types (Empty counts as a type here): any
		// mix that includes String is Unknown; Empty+Integer+Float is
		// Quantitative.
		if c.TypeVotes[String] > 0 {
			return Unknown
		}
		return Quantitative
	}
}
