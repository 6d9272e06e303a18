package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lapicera/asistente-compras/internal/models"
)

// LineParser turns free-text item input into (name, quantity) pairs
type LineParser struct {
	quantityPattern *regexp.Regexp
}

// NewLineParser creates a new parser instance
func NewLineParser() *LineParser {
	return &LineParser{
		// Match a leading integer followed by whitespace: "3 cuadernos"
		quantityPattern: regexp.MustCompile(`^(\d+)\s+(.+)$`),
	}
}

// Parse splits a text block into lines and extracts a quantity and item name
// from each non-blank one. Lines keep their original order. Parsing never
// fails: anything that does not look like "<qty> <name>" becomes a whole-line
// item name with quantity 1.
func (p *LineParser) Parse(text string) []models.ParsedLine {
	var items []models.ParsedLine
	lineNumber := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		item := models.ParsedLine{
			Name:       line,
			Quantity:   1,
			RawText:    line,
			LineNumber: lineNumber,
		}

		if matches := p.quantityPattern.FindStringSubmatch(line); len(matches) == 3 {
			// Atoi tolerates zero padding ("007" -> 7); it only fails on
			// overflow, which degenerates to the default quantity.
			if qty, err := strconv.Atoi(matches[1]); err == nil {
				item.Name = strings.TrimSpace(matches[2])
				if qty >= 1 {
					item.Quantity = qty
				}
			}
		}

		items = append(items, item)
		lineNumber++
	}

	return items
}

// ParseLine parses a single input line the same way Parse treats one line of
// a block. Blank input yields ok=false.
func (p *LineParser) ParseLine(text string) (models.ParsedLine, bool) {
	items := p.Parse(text)
	if len(items) == 0 {
		return models.ParsedLine{}, false
	}
	return items[0], true
}
