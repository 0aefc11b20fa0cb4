package extract

import (
	"regexp"
	"strings"
)

// patientLabelRe matches explicit patient-name labels. A bare "Name"
// label is intentionally insufficient: it is ambiguous against
// member/insured labels.
var patientLabelRe = regexp.MustCompile(`(?i)\b(patient(?:'s)?\s*name|name\s+of\s+patient|pt\.?\s*name)\b`)

// ExtractPatientName scans lines top to bottom for an explicitly
// labelled patient name and returns the first candidate that survives
// normalization. Facility-header lines are skipped. ok is false when no
// line yields a name.
func ExtractPatientName(doc Document) (name string, ok bool) {
	for _, line := range doc.Lines() {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if facilityLineRe.MatchString(line) {
			continue
		}
		if !patientLabelRe.MatchString(line) {
			continue
		}

		candidate, found := splitField(line)
		if !found {
			// No separator after the label: strip the label text itself.
			if loc := patientLabelRe.FindStringIndex(line); loc != nil {
				candidate = strings.TrimSpace(line[loc[1]:])
			}
		}
		if name, ok := CleanPersonCandidate(candidate); ok {
			return name, true
		}
	}
	return "", false
}
