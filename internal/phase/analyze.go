package phase

import (
	"io"

	"github.com/ini-bdds/tabularstat/internal/charclass"
	"github.com/ini-bdds/tabularstat/internal/column"
	"github.com/ini-bdds/tabularstat/internal/splitter"
	"github.com/ini-bdds/tabularstat/util"
)

// Counts tallies the kinds of lines seen during content analysis, mirroring
// table_description's rows.{empty,meta,data,aberrant} fields (meta is
// populated by DiscardHeader, not here).
type Counts struct {
	Empty    int
	Data     int
	Aberrant int
}

// splitterFor resolves the splitter to use for a given inferred format.
// Plain comma is split as an ordinary SingleByte separator here: format
// inference (InferFormat) never identifies true RFC4180 quoting (that
// would require the quote-comma-quote virtual candidate from format.c,
// which this port omits, see DESIGN.md), so nothing upgrades a surviving
// comma candidate into the Csv splitter. splitter.Csv remains available
// for callers that already know their input is quoted CSV.
func splitterFor(f Format) splitter.Splitter {
	switch {
	case f.IsWhitespaceGroup:
		return splitter.CoalesceWhitespace{}
	case f.ColumnCount <= 1:
		return nil
	default:
		return splitter.SingleByte{Sep: f.Sep}
	}
}

// AnalyzeContent splits every data line (the already-read sample lines,
// then the remainder of the stream) with the splitter f resolves to, and
// folds each field into its column accumulator. Grounded on
// original_source/src/c/tabular/line.c's _analyze_line, generalizing the
// teacher's CurrentRecord()-per-call model into a full-stream fold.
func AnalyzeContent(src *Source, t Terminator, hist *charclass.Histogram, mirror func(charclass.Char), sampleLines [][]byte, f Format, cfg column.Config) ([]*column.Column, Counts, error) {
	split := splitterFor(f)
	columns := make([]*column.Column, f.ColumnCount)
	for i := range columns {
		columns[i] = column.New(cfg)
	}

	var counts Counts

	observeLine := func(line []byte) {
		line = util.Rstrip(line)
		if len(line) == 0 {
			counts.Empty++
			return
		}
		var fields []string
		if split == nil {
			fields = []string{string(line)}
		} else {
			fields = split.Split(line)
		}
		counts.Data++
		if len(fields) != len(columns) {
			counts.Aberrant++
		}
		for i, v := range fields {
			if i >= len(columns) {
				break
			}
			columns[i].Observe(counts.Data, v)
		}
	}

	for _, line := range sampleLines {
		observeLine(line)
	}

	for {
		line, err := readLine(src, t, hist, mirror)
		if err == io.EOF {
			break
		}
		if err != nil {
			return columns, counts, err
		}
		observeLine(line)
	}

	return columns, counts, nil
}
