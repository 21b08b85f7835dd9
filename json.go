package tabularstat

import (
	"encoding/json"
	"hash/fnv"
	"sort"

	"github.com/ini-bdds/tabularstat/internal/column"
)

// MagicTooManyLabels marks a label_set_hash field as meaningless because
// the underlying column's value set overflowed its bounded capacity,
// matching json.c's MAGIC_TOO_MANY_LABELS sentinel.
const MagicTooManyLabels uint32 = 0xFFFFFFFF

type characterHistogramJSON struct {
	LF    uint64 `json:"lf"`
	CR    uint64 `json:"cr"`
	ASCII uint64 `json:"ascii"`
	UTF82 uint64 `json:"utf8-2"`
	UTF83 uint64 `json:"utf8-3"`
	UTF84 uint64 `json:"utf8-4"`
}

type transitionHistogramJSON struct {
	LF [3]uint64 `json:"lf"`
	CR [3]uint64 `json:"cr"`
	OC [3]uint64 `json:"oc"`
}

type votesJSON struct {
	Empty   int `json:"empty"`
	Integer int `json:"integer"`
	Float   int `json:"float"`
	String  int `json:"string"`
}

type statsJSON struct {
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
}

type extremaJSON struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type exhaustiveColumnJSON struct {
	InferredClass     string      `json:"inferred_class"`
	Votes             votesJSON   `json:"votes"`
	Stats             statsJSON   `json:"stats"`
	Extrema           extremaJSON `json:"extrema"`
	MaxFieldLength    int         `json:"max_field_length"`
	LongFieldCount    int         `json:"long_field_count"`
	Labels            []string    `json:"labels"`
	MaxLabelsExceeded bool        `json:"max_labels_exceeded"`
}

type exhaustiveTableJSON struct {
	MetadataPrefix   string                 `json:"metadata_prefix"`
	ColumnSeparator  string                 `json:"column_separator"`
	SeparatorIsRegex bool                   `json:"separator_is_regex"`
	ColumnCount      int                    `json:"column_count"`
	EmptyLines       int                    `json:"empty_lines"`
	MetaLines        int                    `json:"meta_lines"`
	DataLines        int                    `json:"data_lines"`
	AberrantLines    int                    `json:"aberrant_lines"`
	Columns          []exhaustiveColumnJSON `json:"columns"`
}

type exhaustiveOutput struct {
	OffendingByte       int64                   `json:"offending_byte"`
	CharacterHistogram  characterHistogramJSON  `json:"character_histogram"`
	TransitionHistogram transitionHistogramJSON `json:"transition_histogram"`
	Table               exhaustiveTableJSON     `json:"table"`
}

// MarshalExhaustive renders td with full per-column labels, votes, and
// statistics, mirroring json.c's EXHAUSTIVE_OUTPUT variant.
func MarshalExhaustive(td *TableDescription) ([]byte, error) {
	out := exhaustiveOutput{
		OffendingByte: td.OffendingByte,
		CharacterHistogram: characterHistogramJSON{
			LF:    td.CharHistogram[0],
			CR:    td.CharHistogram[1],
			ASCII: td.CharHistogram[2],
			UTF82: td.CharHistogram[3],
			UTF83: td.CharHistogram[4],
			UTF84: td.CharHistogram[5],
		},
		TransitionHistogram: transitionHistogramJSON{
			LF: [3]uint64{td.TransitionHistogram[0], td.TransitionHistogram[1], td.TransitionHistogram[2]},
			CR: [3]uint64{td.TransitionHistogram[3], td.TransitionHistogram[4], td.TransitionHistogram[5]},
			OC: [3]uint64{td.TransitionHistogram[6], td.TransitionHistogram[7], td.TransitionHistogram[8]},
		},
		Table: exhaustiveTableJSON{
			MetadataPrefix:   td.MetadataPrefix,
			ColumnSeparator:  separatorLabel(td),
			SeparatorIsRegex: td.SeparatorIsRegex,
			ColumnCount:      td.ColumnCount,
			EmptyLines:       td.EmptyLines,
			MetaLines:        td.MetaLines,
			DataLines:        td.DataLines,
			AberrantLines:    td.AberrantLines,
		},
	}

	for _, col := range td.Columns {
		labels := col.ValueSet.Values()
		sort.Strings(labels)
		out.Table.Columns = append(out.Table.Columns, exhaustiveColumnJSON{
			InferredClass: col.Classify().String(),
			Votes: votesJSON{
				Empty:   col.TypeVotes[column.Empty],
				Integer: col.TypeVotes[column.Integer],
				Float:   col.TypeVotes[column.Float],
				String:  col.TypeVotes[column.String],
			},
			Stats:             statsJSON{Mean: col.Mean(), Stddev: col.Stddev()},
			Extrema:           extremaJSON{Min: col.Min(), Max: col.Max()},
			MaxFieldLength:    col.MaxFieldLen,
			LongFieldCount:    col.LongFieldCount,
			Labels:            labels,
			MaxLabelsExceeded: col.ValueSet.Full(),
		})
	}

	return json.Marshal(out)
}

type abridgedColumnJSON struct {
	Type         string     `json:"type"`
	Class        string     `json:"class"`
	LabelSetHash *uint32    `json:"label_set_hash,omitempty"`
	Stats        *statsJSON `json:"stats,omitempty"`
}

type abridgedTableJSON struct {
	MetadataPrefix string               `json:"metadata_prefix"`
	LinesEmpty     int                  `json:"lines_empty"`
	LinesData      int                  `json:"lines_data"`
	LinesMeta      int                  `json:"lines_meta"`
	LinesAberrant  int                  `json:"lines_aberrant"`
	ColumnCount    int                  `json:"column_count"`
	Columns        []abridgedColumnJSON `json:"columns"`
}

type abridgedOutput struct {
	NonUTF8 bool              `json:"non_utf8"`
	Table   abridgedTableJSON `json:"table"`
}

// labelSetHash hashes the sorted label set, each label followed by a NUL
// byte, matching
// json.c's sorted-labels-then-hash abridged fingerprint. It reuses the
// same hash/fnv primitive as internal/strset rather than introducing a
// second hash family for one field.
func labelSetHash(labels []string) uint32 {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	h := fnv.New32a()
	for _, l := range sorted {
		h.Write([]byte(l))
		h.Write([]byte{0})
	}
	return h.Sum32()
}

// MarshalAbridged renders td with per-column labels collapsed to a single
// hash (or MagicTooManyLabels if the label set overflowed), omitting
// string-valued details exhaustive output carries, mirroring json.c's
// non-EXHAUSTIVE_OUTPUT variant.
func MarshalAbridged(td *TableDescription) ([]byte, error) {
	out := abridgedOutput{
		NonUTF8: td.Status == StatusUtf8Prefix || td.Status == StatusUtf8Suffix,
		Table: abridgedTableJSON{
			MetadataPrefix: td.MetadataPrefix,
			LinesEmpty:     td.EmptyLines,
			LinesData:      td.DataLines,
			LinesMeta:      td.MetaLines,
			LinesAberrant:  td.AberrantLines,
			ColumnCount:    td.ColumnCount,
		},
	}

	for _, col := range td.Columns {
		class := col.Classify()
		entry := abridgedColumnJSON{
			Type:  col.DominantType().String(),
			Class: class.String(),
		}
		if class == column.Categorical {
			hash := labelSetHash(col.ValueSet.Values())
			if col.ValueSet.Full() {
				hash = MagicTooManyLabels
			}
			entry.LabelSetHash = &hash
		} else {
			entry.Stats = &statsJSON{Mean: col.Mean(), Stddev: col.Stddev()}
		}
		out.Table.Columns = append(out.Table.Columns, entry)
	}

	return json.Marshal(out)
}

func separatorLabel(td *TableDescription) string {
	if td.SeparatorIsRegex {
		return `[ \t]+`
	}
	if td.ColumnSeparator == 0 {
		return ""
	}
	return string(td.ColumnSeparator)
}
