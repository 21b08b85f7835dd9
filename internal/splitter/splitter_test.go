package splitter_test

import (
	"testing"

	"github.com/ini-bdds/tabularstat/internal/splitter"
	"github.com/stretchr/testify/assert"
)

func Test_SingleByte(t *testing.T) {
	s := splitter.SingleByte{Sep: ','}
	assert.Equal(t, []string{"a", "b", "c"}, s.Split([]byte("a,b,c")))
	assert.Equal(t, []string{"a", "", "c"}, s.Split([]byte("a,,c")))
	assert.Equal(t, []string{""}, s.Split([]byte("")))
}

func Test_CoalesceWhitespace(t *testing.T) {
	s := splitter.CoalesceWhitespace{}
	assert.Equal(t, []string{"a", "b", "c"}, s.Split([]byte("a   b\tc")))
	assert.Equal(t, []string{"a", "b"}, s.Split([]byte("  a b  ")))
	assert.Equal(t, []string{""}, s.Split([]byte("   ")))
}

func Test_Csv(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", `a,b,c`, []string{"a", "b", "c"}},
		{"quoted field with separator", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"escaped quote inside quoted field", `a,"b""c",d`, []string{"a", `b"c`, "d"}},
		{"empty quoted field", `a,"",c`, []string{"a", "", "c"}},
	}

	s := splitter.Csv{Sep: ','}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, s.Split([]byte(test.in)))
		})
	}
}
