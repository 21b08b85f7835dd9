// Package util collects small helpers shared across the scanning
// pipeline, adapted from the teacher's internal/util (which served
// encoding/csv's quoting quirks) into the byte-oriented helpers this
// domain's line- and field-handling needs.
package util

// Rstrip trims trailing ASCII whitespace (space, tab, CR) from b, mirroring
// original_source/src/c/tabular/line.c's _analyze_line rstrip step, which
// runs before a line is judged empty or matched against the metadata
// prefix.
func Rstrip(b []byte) []byte {
	end := len(b)
	for end > 0 {
		switch b[end-1] {
		case ' ', '\t', '\r':
			end--
		default:
			return b[:end]
		}
	}
	return b[:end]
}

// Must panics if err is non-nil, for use at program startup where an
// error is unrecoverable misconfiguration rather than routine input
// failure (the teacher's util.Panic, renamed to the conventional Go
// idiom).
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
