// Format inference chooses which field splitter describes a sample of
// lines, by tracking, for every admissible candidate separator byte, how
// many times it occurs per line; a candidate survives only while its
// per-line occurrence count stays identical across every line seen so
// far. Ported from original_source/src/c/tabular/format.c's
// _count_candidate_separators/_format_infer reference/candidate
// reduction, including the virtual whitespace-group candidate
// (P_SPC_GROUP) standing in for a run of spaces acting as one separator.
package phase

// spaceGroupCandidate is the virtual candidate id representing a
// coalesced run of whitespace, matching format.c's P_SPC_GROUP slot
// appended after the 128 literal ASCII byte candidates.
const spaceGroupCandidate = 128

const candidateCount = 129

func isAdmissibleSeparator(b byte) bool {
	return b < 128 && !isAlnumByte(b)
}

// countCandidates returns, for every admissible candidate, the number of
// times it would split line (i.e. its occurrence count for literal
// candidates, or the number of space runs that start after the first byte,
// for the virtual whitespace-group candidate; tabs are not part of a run).
func countCandidates(line []byte) [candidateCount]int {
	var counts [candidateCount]int
	prevSpace := false
	for i, b := range line {
		if isAdmissibleSeparator(b) {
			counts[b]++
		}
		isSpace := b == ' '
		if isSpace && !prevSpace && i > 0 {
			counts[spaceGroupCandidate]++
		}
		prevSpace = isSpace
	}
	return counts
}

// Format is the resolved field-splitting strategy and expected column
// count. NoTable is set when no candidate separator survived the sweep;
// the other fields are meaningless in that case.
type Format struct {
	Sep               byte
	IsWhitespaceGroup bool
	ColumnCount       int
	NoTable           bool
}

// InferFormat resolves the separator among the sample lines. Resolution
// order, per format.c: a viable whitespace-group candidate wins over all
// literal separators; otherwise TAB wins if viable; otherwise the lowest
// remaining viable candidate byte wins. If no candidate survives (including
// when there were no data lines to sample at all), format inference fails
// and NoTable is set.
func InferFormat(lines [][]byte) Format {
	viable := make([]bool, candidateCount)
	expected := make([]int, candidateCount)
	for i := range viable {
		viable[i] = true
	}

	seenAnyLine := false
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		seenAnyLine = true
		counts := countCandidates(line)
		for c := 0; c < candidateCount; c++ {
			if !viable[c] {
				continue
			}
			if counts[c] == 0 {
				viable[c] = false
				continue
			}
			if expected[c] == 0 {
				expected[c] = counts[c]
			} else if expected[c] != counts[c] {
				viable[c] = false
			}
		}
	}

	if !seenAnyLine {
		return Format{NoTable: true}
	}

	if viable[spaceGroupCandidate] && expected[spaceGroupCandidate] > 0 {
		return Format{IsWhitespaceGroup: true, ColumnCount: expected[spaceGroupCandidate] + 1}
	}
	if viable['\t'] && expected['\t'] > 0 {
		return Format{Sep: '\t', ColumnCount: expected['\t'] + 1}
	}
	for c := 0; c < 128; c++ {
		if viable[c] && expected[c] > 0 {
			return Format{Sep: byte(c), ColumnCount: expected[c] + 1}
		}
	}
	return Format{NoTable: true}
}
