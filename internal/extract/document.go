package extract

import (
	"regexp"
	"strings"
)

// Document is an immutable, ordered sequence of OCR text lines. It is
// built once per extraction request and read by every extractor.
type Document struct {
	text  string
	lines []string
}

// NewDocument splits an OCR text blob into its line sequence.
func NewDocument(text string) Document {
	return Document{
		text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// Text returns the full text blob.
func (d Document) Text() string { return d.text }

// Lines returns the line sequence. Callers must not modify it.
func (d Document) Lines() []string { return d.lines }

// Line returns the line at index i.
func (d Document) Line(i int) string { return d.lines[i] }

// Len returns the number of lines.
func (d Document) Len() int { return len(d.lines) }

// facilityLineRe marks facility-header lines (hospital letterheads,
// ward names). These are excluded from person-name and amount search.
var facilityLineRe = regexp.MustCompile(`(?i)\b(hospital|clinic|medical center|centre|facility|ward|department)\b`)

// fieldSepRe separates a field label from its value: colon, double-dash
// run, or tab.
var fieldSepRe = regexp.MustCompile(`:|-{2,}|\t`)

// splitField splits a label line at the first separator and returns the
// trimmed remainder. ok is false when the line has no separator.
func splitField(line string) (rest string, ok bool) {
	loc := fieldSepRe.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}
