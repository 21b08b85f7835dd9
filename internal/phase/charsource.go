package phase

import (
	"github.com/ini-bdds/tabularstat/internal/charclass"
)

// Source adds one-character lookahead on top of charclass.Reader, since
// line-terminator and header inference both need to peek past a
// terminator candidate before committing to it.
type Source struct {
	r        *charclass.Reader
	pending  *charclass.Char
	pendErr  error
	havePend bool
}

// NewSource wraps r for lookahead-capable character reading.
func NewSource(r *charclass.Reader) *Source {
	return &Source{r: r}
}

// next returns the next character, consuming any previously peeked one.
func (s *Source) next() (charclass.Char, error) {
	if s.havePend {
		s.havePend = false
		return *s.pending, s.pendErr
	}
	return s.r.Next()
}

// peek returns the next character without consuming it; subsequent calls
// to peek or next return the same character until next is called.
func (s *Source) peek() (charclass.Char, error) {
	if !s.havePend {
		c, err := s.r.Next()
		s.pending = &c
		s.pendErr = err
		s.havePend = true
	}
	return *s.pending, s.pendErr
}
