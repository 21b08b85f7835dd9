package tabularstat

import (
	"os"
	"strconv"

	"github.com/ini-bdds/tabularstat/internal/column"
)

// Config bundles every tunable constant the scanner reads once, rather
// than mutable package-level globals the way original_source/src/c/
// environ.c overrides compiled-in defaults via getenv. NewConfigFromEnv
// applies environment overrides once at startup: MAX_CATEGORY_CARDINALITY,
// MAX_ABSOLUTE_CATEGORICAL_VALUE and MAXLEN_CATEGORY_LABEL for the three
// category tunables, TABULARSTAT_<FIELD> for the other fields. Scan does
// not consult MaxHeaderLines or MaxSampleLines: the header and sample
// phases use the fixed bounds phase.MaxHeaderLines and
// phase.MaxSampleLines.
type Config struct {
	MaxHeaderLines              int
	MaxSampleLines              int
	MaxCategoryCardinality      int
	MaxAbsoluteCategoricalValue int64
	MaxLenCategoryLabel         int
	LongFieldLenThreshold       int
}

// DefaultConfig returns the compiled-in defaults, matching the originals'
// undecorated constants.
func DefaultConfig() *Config {
	col := column.DefaultConfig()
	return &Config{
		MaxHeaderLines:              256,
		MaxSampleLines:              16,
		MaxCategoryCardinality:      col.MaxCategoryCardinality,
		MaxAbsoluteCategoricalValue: col.MaxAbsoluteCategoricalValue,
		MaxLenCategoryLabel:         col.MaxLenCategoryLabel,
		LongFieldLenThreshold:       col.LongFieldLenThreshold,
	}
}

// NewConfigFromEnv returns DefaultConfig with any environment overrides
// (see Config) applied.
func NewConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if v, ok := envInt("TABULARSTAT_MAX_HEADER_LINES"); ok {
		cfg.MaxHeaderLines = v
	}
	if v, ok := envInt("TABULARSTAT_MAX_SAMPLE_LINES"); ok {
		cfg.MaxSampleLines = v
	}
	if v, ok := envInt("MAX_CATEGORY_CARDINALITY"); ok {
		cfg.MaxCategoryCardinality = v
	}
	if v, ok := envInt64("MAX_ABSOLUTE_CATEGORICAL_VALUE"); ok {
		cfg.MaxAbsoluteCategoricalValue = v
	}
	if v, ok := envInt("MAXLEN_CATEGORY_LABEL"); ok {
		cfg.MaxLenCategoryLabel = v
	}
	if v, ok := envInt("TABULARSTAT_LONG_FIELD_LEN_THRESHOLD"); ok {
		cfg.LongFieldLenThreshold = v
	}
	return cfg
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt64(name string) (int64, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *Config) columnConfig() column.Config {
	return column.Config{
		MaxCategoryCardinality:      c.MaxCategoryCardinality,
		MaxAbsoluteCategoricalValue: c.MaxAbsoluteCategoricalValue,
		MaxLenCategoryLabel:         c.MaxLenCategoryLabel,
		LongFieldLenThreshold:       c.LongFieldLenThreshold,
	}
}
