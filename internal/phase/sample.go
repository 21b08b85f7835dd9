package phase

import (
	"io"

	"github.com/ini-bdds/tabularstat/internal/charclass"
)

// MaxSampleLines bounds how many lines past the header are read before
// format inference runs (scan.c's MAX_COUNT_SAMPLE_LINES).
const MaxSampleLines = 16

// AcquireSample reads up to MaxSampleLines further lines, returning their
// terminator-stripped content for FormatInference to examine. Reaching
// EOF early is not an error: whatever lines were read are still usable.
func AcquireSample(src *Source, t Terminator, hist *charclass.Histogram, mirror func(charclass.Char)) ([][]byte, error) {
	var lines [][]byte
	for i := 0; i < MaxSampleLines; i++ {
		line, err := readLine(src, t, hist, mirror)
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
