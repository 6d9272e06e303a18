package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapicera/asistente-compras/internal/models"
)

func TestLineParserParse(t *testing.T) {
	parser := NewLineParser()

	tests := []struct {
		name  string
		input string
		want  []models.ParsedLine
	}{
		{
			name:  "quantities and plain names with blank lines",
			input: "3 cuadernos\n\nlápiz\n2  mochilas",
			want: []models.ParsedLine{
				{Name: "cuadernos", Quantity: 3, RawText: "3 cuadernos", LineNumber: 0},
				{Name: "lápiz", Quantity: 1, RawText: "lápiz", LineNumber: 1},
				{Name: "mochilas", Quantity: 2, RawText: "2  mochilas", LineNumber: 2},
			},
		},
		{
			name:  "zero padded quantity",
			input: "007 gomas",
			want: []models.ParsedLine{
				{Name: "gomas", Quantity: 7, RawText: "007 gomas", LineNumber: 0},
			},
		},
		{
			name:  "zero quantity keeps remainder as name with default quantity",
			input: "0 carpetas",
			want: []models.ParsedLine{
				{Name: "carpetas", Quantity: 1, RawText: "0 carpetas", LineNumber: 0},
			},
		},
		{
			name:  "number only line is a name",
			input: "42",
			want: []models.ParsedLine{
				{Name: "42", Quantity: 1, RawText: "42", LineNumber: 0},
			},
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "   2 lápices   \n\t cuaderno \t",
			want: []models.ParsedLine{
				{Name: "lápices", Quantity: 2, RawText: "2 lápices", LineNumber: 0},
				{Name: "cuaderno", Quantity: 1, RawText: "cuaderno", LineNumber: 1},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only input",
			input: "  \n\t\n   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineParserParseLine(t *testing.T) {
	parser := NewLineParser()

	line, ok := parser.ParseLine("3 cuadernos")
	require.True(t, ok)
	assert.Equal(t, "cuadernos", line.Name)
	assert.Equal(t, 3, line.Quantity)

	_, ok = parser.ParseLine("   ")
	assert.False(t, ok)
}
