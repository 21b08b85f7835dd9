// Package tabularstat implements a single-pass streaming analyzer for
// delimited tabular text files: it infers the line terminator and field
// separator, skips leading metadata/comment lines, and accumulates
// per-column statistics sufficient to classify each column as
// categorical, quantitative, or ordinal, all without buffering the whole
// file in memory. It is grounded on the teacher repo's Scan-loop-over-
// io.ReadSeeker design (api.go), generalized from record-oriented CSV
// scanning into the five-phase pipeline original_source/src/c/tabular/
// scan.c implements.
package tabularstat

import (
	"errors"
	"io"
	"reflect"

	"github.com/ini-bdds/tabularstat/internal/charclass"
	"github.com/ini-bdds/tabularstat/internal/column"
	"github.com/ini-bdds/tabularstat/internal/phase"
	"github.com/ini-bdds/tabularstat/internal/samplecache"
)

// TableDescription is the complete result of a Scan, mirroring
// table_description from tabular.h.
type TableDescription struct {
	Status        Status
	OffendingByte int64

	CharHistogram     [charclass.FineCount]uint64
	TransitionHistogram [charclass.CoarseCount * charclass.CoarseCount]uint64

	MetadataPrefix   string
	ColumnSeparator  byte
	SeparatorIsRegex bool
	ColumnCount      int

	EmptyLines    int
	MetaLines     int
	DataLines     int
	AberrantLines int

	Columns []*column.Column
}

func (td *TableDescription) isZero() bool {
	return reflect.DeepEqual(*td, TableDescription{})
}

// Scan reads r to completion, inferring its tabular structure and
// accumulating column statistics in a single pass.
//
// out, if non-nil, must be a freshly zero-valued *TableDescription; Scan
// populates it in place and returns it. Passing a TableDescription that
// already carries scan results (instead of a fresh one, or nil) is
// refused with StatusUninitializedOutput, mirroring the original's
// caller-owns-the-zero-initialized-output contract. Pass nil to have
// Scan allocate its own.
func Scan(r io.Reader, cfg *Config, out *TableDescription) (*TableDescription, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if out == nil {
		out = &TableDescription{}
	} else if !out.isZero() {
		return out, &ScanError{Status: StatusUninitializedOutput, Err: ErrUninitializedOutput}
	}

	charReader := charclass.NewReader(r)
	hist := &charclass.Histogram{}
	cache := samplecache.New()
	src := phase.NewSource(charReader)

	mirror := func(c charclass.Char) {
		_, _ = cache.Write(c.Bytes[:c.Len])
	}

	term, err := phase.InferLineTerminator(src, hist, mirror)
	if err != nil {
		return scanFailure(out, hist, err)
	}

	header, err := phase.DiscardHeader(src, term, hist, mirror)
	if err != nil {
		return scanFailure(out, hist, err)
	}

	acquired, err := phase.AcquireSample(src, term, hist, mirror)
	if err != nil {
		return scanFailure(out, hist, err)
	}

	// DiscardHeader may have had to read one or two lines of real data
	// before it could confirm the metadata/data boundary; those lines
	// must be replayed ahead of whatever AcquireSample read afterward so
	// no data is lost.
	sample := append(header.RecoveredLines, acquired...)

	format := phase.InferFormat(sample)
	if format.NoTable {
		out.Status = StatusNoTable
		out.MetadataPrefix = string(header.MetadataPrefix)
		out.MetaLines = header.MetaLineCount
		out.CharHistogram = hist.Counts
		out.TransitionHistogram = hist.Transition
		return out, nil
	}

	columns, counts, err := phase.AnalyzeContent(src, term, hist, mirror, sample, format, cfg.columnConfig())
	if err != nil {
		return scanFailure(out, hist, err)
	}

	out.Status = StatusOK
	out.MetadataPrefix = string(header.MetadataPrefix)
	out.ColumnSeparator = format.Sep
	out.SeparatorIsRegex = format.IsWhitespaceGroup
	out.ColumnCount = format.ColumnCount
	out.MetaLines = header.MetaLineCount
	out.EmptyLines = counts.Empty
	out.DataLines = counts.Data
	out.AberrantLines = counts.Aberrant
	out.Columns = columns
	out.CharHistogram = hist.Counts
	out.TransitionHistogram = hist.Transition
	return out, nil
}

func scanFailure(out *TableDescription, hist *charclass.Histogram, err error) (*TableDescription, error) {
	out.Status = StatusIOError
	out.CharHistogram = hist.Counts
	out.TransitionHistogram = hist.Transition

	var posErr *charclass.PositionalError
	var scanErr *ScanError

	switch {
	case errors.As(err, &posErr) && errors.Is(posErr.Err, charclass.ErrUTF8Prefix):
		out.Status = StatusUtf8Prefix
		out.OffendingByte = posErr.Ordinal
		return out, &ScanError{Status: StatusUtf8Prefix, OffendingByte: posErr.Ordinal, Err: ErrUTF8Prefix}
	case errors.As(err, &posErr) && errors.Is(posErr.Err, charclass.ErrUTF8Suffix):
		out.Status = StatusUtf8Suffix
		out.OffendingByte = posErr.Ordinal
		return out, &ScanError{Status: StatusUtf8Suffix, OffendingByte: posErr.Ordinal, Err: ErrUTF8Suffix}
	case errors.Is(err, phase.ErrNoTerminatorFound):
		out.Status = StatusNoTerminatorFound
		return out, &ScanError{Status: StatusNoTerminatorFound, Err: ErrNoTerminatorFound}
	case errors.As(err, &scanErr):
		out.Status = scanErr.Status
		return out, scanErr
	default:
		return out, &ScanError{Status: StatusIOError, Err: err}
	}
}
