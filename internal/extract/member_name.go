package extract

import (
	"regexp"
	"sort"
	"strings"
)

var (
	memberLabelRe   = regexp.MustCompile(`(?i)\b(member(?:'s)?\s*name|name\s+of\s+member|insured\s+name|policy\s*holder|policyholder|subscriber|beneficiary)\b`)
	memberContextRe = regexp.MustCompile(`(?i)\b(member|insured|policy|subscriber|beneficiary|policy no|policy #|policy number)\b`)
	bareNameLineRe  = regexp.MustCompile(`(?i)^\s*name\s*[:\-]\s*(.+)$`)
	twoWordNameRe   = regexp.MustCompile(`\b([A-Z][a-z'-]+)\s+([A-Z][a-z'-]+)\b`)
	facilityWordRe  = regexp.MustCompile(`(?i)\b(hospital|clinic|centre|medical)\b`)
)

// memberStrategy is one tier of the member-name cascade. Each tier must
// apply the exclusion check itself before claiming success.
type memberStrategy func(doc Document, exclude string) (string, bool)

// memberStrategies is the cascade in strict priority order: explicit
// label, member-context field, bare "Name:" with adjacent context, and
// finally a proximity-scored scan for capitalized two-word spans.
var memberStrategies = []memberStrategy{
	memberFromExplicitLabel,
	memberFromContextField,
	memberFromBareNameLine,
	memberFromProximityScan,
}

// ExtractMemberName resolves the member/insured/policyholder name.
// exclude is the already-resolved patient name (possibly empty); a
// candidate equal to it case-insensitively is rejected in every tier so
// the two fields never collapse into one.
func ExtractMemberName(doc Document, exclude string) (name string, ok bool) {
	for _, strategy := range memberStrategies {
		if name, ok := strategy(doc, exclude); ok {
			return name, true
		}
	}
	return "", false
}

// acceptMember runs the shared normalization and exclusion check.
func acceptMember(candidate, exclude string) (string, bool) {
	name, ok := CleanPersonCandidate(candidate)
	if !ok {
		return "", false
	}
	if exclude != "" && strings.EqualFold(name, exclude) {
		return "", false
	}
	return name, true
}

// Tier 1: explicit member/insured/policyholder label. The value is
// taken from the same line after the separator, or from the next
// non-blank line when the label line carries no value.
func memberFromExplicitLabel(doc Document, exclude string) (string, bool) {
	lines := doc.Lines()
	for i, line := range lines {
		if facilityLineRe.MatchString(line) {
			continue
		}
		if !memberLabelRe.MatchString(line) {
			continue
		}

		candidate, found := splitField(line)
		if !found || candidate == "" {
			for j := i + 1; j < len(lines); j++ {
				if strings.TrimSpace(lines[j]) != "" {
					candidate = strings.TrimSpace(lines[j])
					break
				}
			}
		}
		if candidate == "" {
			continue
		}
		if name, ok := acceptMember(candidate, exclude); ok {
			return name, true
		}
	}
	return "", false
}

// Tier 2: any line with member-context vocabulary and a colon-separated
// field value.
func memberFromContextField(doc Document, exclude string) (string, bool) {
	for _, line := range doc.Lines() {
		if facilityLineRe.MatchString(line) {
			continue
		}
		if !memberContextRe.MatchString(line) || !strings.Contains(line, ":") {
			continue
		}
		candidate, found := splitField(line)
		if !found {
			continue
		}
		if name, ok := acceptMember(candidate, exclude); ok {
			return name, true
		}
	}
	return "", false
}

// Tier 3: a bare "Name:" line, accepted only when the immediately
// preceding or following line carries member context. This guards
// against matching the patient's own "Name:" line.
func memberFromBareNameLine(doc Document, exclude string) (string, bool) {
	lines := doc.Lines()
	for i, line := range lines {
		if facilityLineRe.MatchString(line) {
			continue
		}
		m := bareNameLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var prev, next string
		if i > 0 {
			prev = lines[i-1]
		}
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if !memberContextRe.MatchString(prev) && !memberContextRe.MatchString(next) {
			continue
		}
		if name, ok := acceptMember(strings.TrimSpace(m[1]), exclude); ok {
			return name, true
		}
	}
	return "", false
}

// memberCandidate is a scored tier-4 candidate: proximity 2 = member
// context on the same line, 1 = within a two-line window, 0 = none.
type memberCandidate struct {
	proximity int
	line      int
	name      string
}

// Tier 4: scan every non-facility line for adjacent capitalized
// two-token spans and pick the candidate closest to member-context
// vocabulary, earliest line winning ties. A title-cased non-name phrase
// can win here when no closer context exists; the tie-break is kept
// deliberately simple.
func memberFromProximityScan(doc Document, exclude string) (string, bool) {
	lines := doc.Lines()
	var candidates []memberCandidate

	for i, line := range lines {
		if facilityLineRe.MatchString(line) {
			continue
		}

		proximity := 0
		if memberContextRe.MatchString(line) {
			proximity = 2
		} else {
			lo, hi := i-2, i+3
			if lo < 0 {
				lo = 0
			}
			if hi > len(lines) {
				hi = len(lines)
			}
			if memberContextRe.MatchString(strings.Join(lines[lo:hi], " ")) {
				proximity = 1
			}
		}

		for _, m := range twoWordNameRe.FindAllStringSubmatch(line, -1) {
			span := m[1] + " " + m[2]
			if facilityWordRe.MatchString(span) {
				continue
			}
			name, ok := acceptMember(span, exclude)
			if !ok {
				continue
			}
			candidates = append(candidates, memberCandidate{proximity: proximity, line: i, name: name})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].proximity != candidates[b].proximity {
			return candidates[a].proximity > candidates[b].proximity
		}
		return candidates[a].line < candidates[b].line
	})
	if len(candidates) > 0 {
		return candidates[0].name, true
	}
	return "", false
}
