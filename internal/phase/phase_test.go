package phase

import (
	"strings"
	"testing"

	"github.com/ini-bdds/tabularstat/internal/charclass"
	"github.com/ini-bdds/tabularstat/internal/column"
	"github.com/stretchr/testify/assert"
)

func newSrc(s string) (*Source, *charclass.Histogram) {
	return NewSource(charclass.NewReader(strings.NewReader(s))), &charclass.Histogram{}
}

func noopMirror(charclass.Char) {}

func Test_InferLineTerminator_Unix(t *testing.T) {
	src, hist := newSrc("a,b,c\n1,2,3\n")
	term, err := InferLineTerminator(src, hist, noopMirror)
	assert.NoError(t, err)
	assert.Equal(t, TerminatorUnix, term)
}

func Test_InferLineTerminator_DOS(t *testing.T) {
	src, hist := newSrc("a,b,c\r\n1,2,3\r\n")
	term, err := InferLineTerminator(src, hist, noopMirror)
	assert.NoError(t, err)
	assert.Equal(t, TerminatorDOS, term)
}

func Test_InferLineTerminator_CR(t *testing.T) {
	src, hist := newSrc("a,b,c\r1,2,3\r")
	term, err := InferLineTerminator(src, hist, noopMirror)
	assert.NoError(t, err)
	assert.Equal(t, TerminatorCR, term)
}

func Test_InferLineTerminator_NoTerminator(t *testing.T) {
	src, hist := newSrc("nolineterminatorhere")
	_, err := InferLineTerminator(src, hist, noopMirror)
	assert.ErrorIs(t, err, ErrNoTerminatorFound)
}

func Test_DiscardHeader_SkipsCommentBlock(t *testing.T) {
	src, hist := newSrc("## generated by tool\n## do not edit\na,b,c\n1,2,3\n")
	term, err := InferLineTerminator(src, hist, noopMirror)
	assert.NoError(t, err)

	result, err := DiscardHeader(src, term, hist, noopMirror)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.MetaLineCount)
	assert.Equal(t, "## ", string(result.MetadataPrefix))
	assert.Equal(t, []string{"a,b,c", "1,2,3"}, linesToStrings(result.RecoveredLines))
}

func linesToStrings(lines [][]byte) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

func Test_DiscardHeader_NoMetadataWhenDataStartsImmediately(t *testing.T) {
	src, hist := newSrc("id,name\n1,alice\n2,bob\n")
	term, err := InferLineTerminator(src, hist, noopMirror)
	assert.NoError(t, err)

	result, err := DiscardHeader(src, term, hist, noopMirror)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.MetaLineCount)
	assert.Equal(t, []string{"id,name", "1,alice"}, linesToStrings(result.RecoveredLines))
}

func Test_InferFormat_CommaSeparated(t *testing.T) {
	lines := [][]byte{[]byte("1,2,3"), []byte("4,5,6"), []byte("7,8,9")}
	f := InferFormat(lines)
	assert.Equal(t, byte(','), f.Sep)
	assert.Equal(t, 3, f.ColumnCount)
}

func Test_InferFormat_WhitespaceGroup(t *testing.T) {
	lines := [][]byte{[]byte("1   2   3"), []byte("44  55  66")}
	f := InferFormat(lines)
	assert.True(t, f.IsWhitespaceGroup)
	assert.Equal(t, 3, f.ColumnCount)
}

func Test_InferFormat_TabPreferredOverOtherPunctuation(t *testing.T) {
	lines := [][]byte{[]byte("a\tb.c"), []byte("d\te.f")}
	f := InferFormat(lines)
	assert.Equal(t, byte('\t'), f.Sep)
	assert.Equal(t, 2, f.ColumnCount)
}

func Test_InferFormat_NoSeparatorIsNoTable(t *testing.T) {
	lines := [][]byte{[]byte("alice"), []byte("bob")}
	f := InferFormat(lines)
	assert.True(t, f.NoTable)
}

func Test_AnalyzeContent_ClassifiesColumns(t *testing.T) {
	src, hist := newSrc("")
	sample := [][]byte{[]byte("1,red,1.5"), []byte("2,blue,2.5")}
	f := Format{Sep: ',', ColumnCount: 3}

	columns, counts, err := AnalyzeContent(src, TerminatorUnix, hist, noopMirror, sample, f, column.DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, 2, counts.Data)
	assert.Equal(t, 0, counts.Aberrant)
	assert.Equal(t, column.Quantitative, columns[0].Classify())
	assert.Equal(t, column.Categorical, columns[1].Classify())
	assert.Equal(t, column.Quantitative, columns[2].Classify())
}

func Test_AnalyzeContent_CountsAberrantAndEmptyLines(t *testing.T) {
	src, hist := newSrc("3,4\n\n")
	f := Format{Sep: ',', ColumnCount: 3}
	columns, counts, err := AnalyzeContent(src, TerminatorUnix, hist, noopMirror, nil, f, column.DefaultConfig())
	assert.NoError(t, err)
	assert.Len(t, columns, 3)
	assert.Equal(t, 1, counts.Data)
	assert.Equal(t, 1, counts.Aberrant)
	assert.Equal(t, 1, counts.Empty)
}
