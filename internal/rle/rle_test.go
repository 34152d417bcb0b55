package rle

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/icons/symbol"
)

func render(rows [][]symbol.Symbol) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		var sb strings.Builder
		for _, s := range row {
			sb.WriteString(s.Cell())
		}
		out[i] = sb.String()
	}
	return out
}

func TestScanRuns(t *testing.T) {
	runs, err := Scan("3A.2pB$\n yO!ignored")
	require.NoError(t, err)
	require.Len(t, runs, 5)

	assert.Equal(t, Run{Count: 3, Symbol: symbol.MustEncode(1)}, runs[0])
	assert.Equal(t, Run{Count: 1, Symbol: symbol.Background}, runs[1])
	assert.Equal(t, Run{Count: 2, Symbol: symbol.MustEncode(26)}, runs[2])
	assert.Equal(t, Run{Count: 1, RowEnd: true}, runs[3])
	assert.Equal(t, Run{Count: 1, Symbol: symbol.MustEncode(255)}, runs[4])
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fragment string
	}{
		{"lowercase", "2Ab3C", "b3C"},
		{"bad pair", "A2yP", "2yP"},
		{"dangling count", "A12", "12"},
		{"zero count", "0A", "0"},
		{"huge count", "99999A", "99999"},
		{"block letter at end", "Ap", "p"},
		{"punctuation", "A#B", "#B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.text)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "Scan(%q) error = %v", tt.text, err)
			assert.Equal(t, tt.fragment, se.Fragment)
		})
	}
}

func TestRows(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single row", "2A.B", []string{"AAAA..BB"}},
		{"two rows", "A$pA", []string{"AA", "pA"}},
		{"blank rows", "A3$B", []string{"AA", "", "", "BB"}},
		{"trailing row end", "A$B$!", []string{"AA", "BB", ""}},
		{"empty", "", []string{""}},
		{"empty", "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := Scan(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, render(Rows(runs)))
		})
	}
}
