package phase

import (
	"io"

	"github.com/ini-bdds/tabularstat/internal/charclass"
	"github.com/ini-bdds/tabularstat/internal/prefixpart"
)

// MaxHeaderLines bounds how many leading lines DiscardHeader will
// consider before giving up on finding a metadata/data boundary
// (scan.c's MAX_COUNT_HEADER_LINES).
const MaxHeaderLines = 256

// MaxLenMetadataPrefix bounds the metadata prefix string recorded in the
// result (tabular.h's MAXLEN_METADATA_PREFIX).
const MaxLenMetadataPrefix = 7

func isAlnumByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isAdmissiblePrefix reports whether prefix looks like a metadata/comment
// marker rather than ordinary data: its leading byte must be printable
// ASCII punctuation, matching scan.c's ispunct-based admissibility check.
func isAdmissiblePrefix(prefix []byte) bool {
	if len(prefix) == 0 {
		return false
	}
	b := prefix[0]
	return b >= 0x21 && b <= 0x7E && !isAlnumByte(b)
}

func clipPrefix(p []byte) []byte {
	if len(p) > MaxLenMetadataPrefix {
		return append([]byte(nil), p[:MaxLenMetadataPrefix]...)
	}
	return append([]byte(nil), p...)
}

// HeaderResult is what DiscardHeader determines about the leading
// metadata block.
type HeaderResult struct {
	MetadataPrefix []byte
	MetaLineCount  int
	// RecoveredLines holds the lines DiscardHeader had to read in order to
	// confirm the metadata/data boundary but that turned out to be real
	// data, not metadata. The caller must treat these as the first data
	// lines, ahead of anything AcquireSample reads afterward.
	RecoveredLines [][]byte
}

// DiscardHeader consumes lines from src until it finds the boundary
// between a leading run of metadata/comment lines (lines sharing a
// punctuation-prefixed common prefix) and the first line of real data.
// Every line it reads is folded into hist and mirrored (typically into a
// samplecache.Cache) exactly like every other phase; on top of that it
// must account for every line it consumes itself, since the one or two
// lines that settle the boundary question are not metadata and must be
// handed back for replay rather than silently dropped. Grounded on
// scan.c's _cs_discard_header, generalizing the teacher's record-oriented
// Scan loop into a line-prefix boundary detector.
func DiscardHeader(src *Source, t Terminator, hist *charclass.Histogram, mirror func(charclass.Char)) (HeaderResult, error) {
	part := prefixpart.New()
	var result HeaderResult
	var pending [][]byte

	for i := 0; i < MaxHeaderLines; i++ {
		line, err := readLine(src, t, hist, mirror)
		if err == io.EOF {
			result.RecoveredLines = pending
			return result, nil
		}
		if err != nil {
			result.RecoveredLines = pending
			return result, err
		}

		clipped := line
		if len(clipped) > prefixpart.MaxLineAccumulator {
			clipped = clipped[:prefixpart.MaxLineAccumulator]
		}
		part.Push(clipped)
		status, completed := part.Flush()
		if status == prefixpart.Incomplete {
			pending = append(pending, line)
			continue
		}

		if isAdmissiblePrefix(completed) {
			result.MetaLineCount += len(pending)
			result.MetadataPrefix = clipPrefix(completed)
			pending = [][]byte{line}
			continue
		}

		result.RecoveredLines = append(pending, line)
		return result, nil
	}

	result.RecoveredLines = pending
	return result, nil
}
