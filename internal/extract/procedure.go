package extract

import (
	"regexp"
	"strings"
)

var (
	procedureVocabRe = regexp.MustCompile(`(?i)\b(test|x-?ray|scan|procedure|operation|surgery|lab|consultation|nursing care|medication)\b`)
	trailingColonRe  = regexp.MustCompile(`:\s*$`)
	anyDigitRe       = regexp.MustCompile(`\d`)
	dateCharRe       = regexp.MustCompile(`[\d\-/:.,]`)
	procNonWordRe    = regexp.MustCompile("[^\\w\\s\\-'`]")
	anyLetterRe      = regexp.MustCompile(`[A-Za-z]`)
)

// ExtractProcedures collects procedure descriptions. Only lines with
// procedure vocabulary qualify; facility-header lines and lines ending
// in a colon (unfilled form labels) are excluded. Lines containing
// digits are kept only if meaningful text survives once digit, date,
// and punctuation characters are stripped. Results are deduplicated
// case-insensitively in first-seen order.
func ExtractProcedures(doc Document) []string {
	procedures := []string{}
	seen := map[string]bool{}

	keep := func(p string) {
		key := strings.ToLower(p)
		if seen[key] {
			return
		}
		seen[key] = true
		procedures = append(procedures, p)
	}

	for _, raw := range doc.Lines() {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if trailingColonRe.MatchString(line) {
			continue
		}
		if facilityLineRe.MatchString(line) {
			continue
		}
		if !procedureVocabRe.MatchString(line) {
			continue
		}

		if !anyDigitRe.MatchString(line) {
			keep(line)
			continue
		}

		cleaned := dateCharRe.ReplaceAllString(line, " ")
		cleaned = strings.TrimSpace(procNonWordRe.ReplaceAllString(cleaned, ""))
		cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
		if trailingColonRe.MatchString(cleaned) {
			continue
		}
		if !anyLetterRe.MatchString(cleaned) {
			continue
		}
		// A single leftover word is not a procedure description.
		if len(strings.Fields(cleaned)) < 2 {
			continue
		}
		keep(cleaned)
	}

	return procedures
}
