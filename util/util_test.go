package util_test

import (
	"errors"
	"testing"

	"github.com/ini-bdds/tabularstat/util"
	"github.com/stretchr/testify/assert"
)

func Test_Rstrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing whitespace", "abc", "abc"},
		{"trailing spaces", "abc   ", "abc"},
		{"trailing tabs", "abc\t\t", "abc"},
		{"trailing CR", "abc\r", "abc"},
		{"mixed trailing whitespace", "abc \t\r \t", "abc"},
		{"all whitespace", "   ", ""},
		{"empty", "", ""},
		{"leading whitespace preserved", "  abc", "  abc"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, string(util.Rstrip([]byte(test.in))))
		})
	}
}

func Test_Must_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		util.Must(errors.New("boom"))
	})
}

func Test_Must_NoPanicOnNil(t *testing.T) {
	assert.NotPanics(t, func() {
		util.Must(nil)
	})
}
