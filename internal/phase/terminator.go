// Package phase implements the five-phase scanning state machine: line
// terminator inference, header discard, sample acquisition, format
// inference, and content analysis. It generalizes the teacher's
// internal/linesplit (a bufio.SplitFunc tuned for CSV line boundaries) and
// api.go's Scan loop into the broader tabular-analysis pipeline spec.md
// §4 describes, grounded operation-for-operation on
// original_source/src/c/tabular/scan.c.
package phase

import (
	"errors"
	"io"

	"github.com/ini-bdds/tabularstat/internal/charclass"
)

// Terminator identifies the line-ending convention detected in the stream.
type Terminator int

const (
	TerminatorUnknown Terminator = iota
	TerminatorUnix               // "\n"
	TerminatorDOS                // "\r\n"
	TerminatorInvertedDOS        // "\n\r"
	TerminatorCR                 // "\r"
)

// Bytes returns the literal byte sequence for t.
func (t Terminator) Bytes() []byte {
	switch t {
	case TerminatorUnix:
		return []byte{'\n'}
	case TerminatorDOS:
		return []byte{'\r', '\n'}
	case TerminatorInvertedDOS:
		return []byte{'\n', '\r'}
	case TerminatorCR:
		return []byte{'\r'}
	default:
		return nil
	}
}

// ErrNoTerminatorFound means the stream was exhausted (or ended in error)
// before any line terminator byte was seen.
var ErrNoTerminatorFound = errors.New("phase: no line terminator found in stream")

// InferLineTerminator reads characters from src until it observes enough
// to settle on one of the four supported terminator conventions, mirroring
// scan.c's _cs_infer_lineterm. Every character consumed (including any
// used only for lookahead) is folded into hist and mirrored into cache so
// later phases can replay the same bytes without re-reading the source.
func InferLineTerminator(src *Source, hist *charclass.Histogram, mirror func(charclass.Char)) (Terminator, error) {
	for {
		c, err := src.next()
		if err == io.EOF {
			return TerminatorUnknown, ErrNoTerminatorFound
		}
		if err != nil {
			return TerminatorUnknown, err
		}
		hist.Observe(c)
		mirror(c)

		switch c.Coarse {
		case charclass.CoarseLF:
			next, perr := src.peek()
			if perr == nil && next.Coarse == charclass.CoarseCR {
				_, _ = src.next()
				hist.Observe(next)
				mirror(next)
				return TerminatorInvertedDOS, nil
			}
			return TerminatorUnix, nil
		case charclass.CoarseCR:
			next, perr := src.peek()
			if perr == nil && next.Coarse == charclass.CoarseLF {
				_, _ = src.next()
				hist.Observe(next)
				mirror(next)
				return TerminatorDOS, nil
			}
			return TerminatorCR, nil
		}
	}
}
