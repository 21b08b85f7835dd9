package phase

import (
	"io"

	"github.com/ini-bdds/tabularstat/internal/charclass"
)

func terminatorStartsOn(t Terminator, c charclass.Coarse) bool {
	switch t {
	case TerminatorUnix, TerminatorInvertedDOS:
		return c == charclass.CoarseLF
	case TerminatorDOS, TerminatorCR:
		return c == charclass.CoarseCR
	default:
		return false
	}
}

func terminatorSecondByte(t Terminator) (charclass.Coarse, bool) {
	switch t {
	case TerminatorDOS:
		return charclass.CoarseLF, true
	case TerminatorInvertedDOS:
		return charclass.CoarseCR, true
	default:
		return 0, false
	}
}

// readLine reads one logical line from src, stripping the terminator
// sequence matching t. It returns io.EOF only when no bytes at all
// (including a partial, unterminated final line) remain.
func readLine(src *Source, t Terminator, hist *charclass.Histogram, mirror func(charclass.Char)) ([]byte, error) {
	var line []byte
	sawAny := false

	for {
		c, err := src.next()
		if err == io.EOF {
			if !sawAny {
				return nil, io.EOF
			}
			return line, nil
		}
		if err != nil {
			return line, err
		}
		sawAny = true
		hist.Observe(c)
		mirror(c)

		if terminatorStartsOn(t, c.Coarse) {
			if second, ok := terminatorSecondByte(t); ok {
				next, perr := src.peek()
				if perr == nil && next.Coarse == second {
					_, _ = src.next()
					hist.Observe(next)
					mirror(next)
				}
			}
			return line, nil
		}
		line = append(line, c.Bytes[:c.Len]...)
	}
}
