// Package tokenizer splits raw CSV text into header-keyed rows.
// It honors double-quote enclosure (commas inside quotes are not
// separators, doubled quotes emit a literal quote) and silently drops
// rows whose field count does not match the header.
package tokenizer

import (
	"errors"
	"strings"
)

var ErrEmptyInput = errors.New("input contains no rows")

// Row maps a header name to the field value of one data row.
type Row map[string]string

// Document is a tokenized CSV upload: the header names in file order
// and one Row per retained data line.
type Document struct {
	Headers []string
	Rows    []Row
}

// Tokenize splits a raw CSV blob into a Document. Lines are trimmed and
// empty lines discarded before any field splitting. The first retained
// line names the columns. Data rows with a field count different from
// the header are dropped; this is a data-quality tolerance, not an error.
func Tokenize(text string) (*Document, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	headers := SplitFields(lines[0])

	doc := &Document{Headers: headers}
	for _, line := range lines[1:] {
		fields := SplitFields(line)
		if len(fields) != len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, name := range headers {
			row[name] = fields[i]
		}
		doc.Rows = append(doc.Rows, row)
	}

	return doc, nil
}

// SplitFields splits one CSV line into trimmed fields. A double quote
// toggles the in-quotes state, a doubled quote ("") emits a literal
// quote, and commas inside quotes do not separate fields.
func SplitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"' && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}
