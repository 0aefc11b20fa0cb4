package extract

import (
	"regexp"
	"strconv"
	"strings"

	"claimlens/internal/domain"
)

var (
	// medLineRe filters line-scan candidates to lines mentioning a
	// medication route or form.
	medLineRe     = regexp.MustCompile(`(?i)\b(mg|tablet|tab|capsule|ml|syrup|syp|cream|ointment|vial|bottle|suppository|injection)\b`)
	dosageRe      = regexp.MustCompile(`(?i)(\d{1,4}(?:\.\d+)?\s*(?:mg|g|ml|mcg|iu))`)
	unitRe        = regexp.MustCompile(`(?i)\b(tablets?|tabs?|capsules?|caps|sachets|bottles|vials|cream|ointment|patch|suppository|syrup|syp|ml)\b`)
	leadingCodeRe = regexp.MustCompile(`^\s*\d{3,}\s+`)
	smallNumRe    = regexp.MustCompile(`\b(\d{1,3})\b`)
	longNumRe     = regexp.MustCompile(`\b\d{4,}\b`)
	medPunctRe    = regexp.MustCompile(`[_\t|:,()\[\]\-\\/]+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	// inlineMedRe recovers combined "Name Dosage Quantity Unit" forms
	// (e.g. "Paracetamol 500mg 10 tablets") in the pattern pass.
	inlineMedRe = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z \-]{1,40})\s+(\d{1,4}\s*(?:mg|g|ml|mcg|iu))\s+(\d{1,3})\s*(tablets?|tabs|capsules?)`)
)

// medicationKey is the identity key for deduplication.
type medicationKey struct {
	name     string // lowercased
	dosage   string
	quantity string
}

// ExtractMedications runs two complementary passes over the document:
// a line-scan pass over lines carrying medication vocabulary or a
// dosage pattern, then a pattern pass for inline forms the line filter
// may have missed. Entries are deduplicated by (name, dosage, quantity)
// with line-scan-pass order first.
func ExtractMedications(doc Document) []domain.MedicationEntry {
	meds := []domain.MedicationEntry{}
	seen := map[medicationKey]bool{}

	add := func(entry domain.MedicationEntry) {
		key := medicationKey{
			name:     strings.ToLower(entry.Name),
			dosage:   entry.Dosage,
			quantity: entry.Quantity,
		}
		if seen[key] {
			return
		}
		seen[key] = true
		meds = append(meds, entry)
	}

	for _, raw := range doc.Lines() {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !medLineRe.MatchString(line) && !dosageRe.MatchString(line) {
			continue
		}
		add(medicationFromLine(line))
	}

	for _, m := range inlineMedRe.FindAllStringSubmatch(doc.Text(), -1) {
		add(domain.MedicationEntry{
			Name:     titleWords(m[1]),
			Dosage:   normalizeDosage(m[2]),
			Quantity: m[3] + " " + m[4],
		})
	}

	return meds
}

// medicationFromLine extracts one entry from a qualifying line.
func medicationFromLine(line string) domain.MedicationEntry {
	proc := leadingCodeRe.ReplaceAllString(line, "")

	dosageMatch := dosageRe.FindString(proc)
	dosage := normalizeDosage(dosageMatch)

	unitLoc := unitRe.FindStringIndex(proc)
	unit := ""
	if unitLoc != nil {
		unit = strings.ToLower(proc[unitLoc[0]:unitLoc[1]])
	}

	quantity := medicationQuantity(proc, unit, unitLoc)

	// Build the name by removing dosage, unit, and standalone numbers.
	name := proc
	if dosageMatch != "" {
		name = dosageRe.ReplaceAllString(name, "")
	}
	if unit != "" {
		name = unitRe.ReplaceAllString(name, "")
	}
	name = smallNumRe.ReplaceAllString(name, "")
	name = longNumRe.ReplaceAllString(name, "")
	name = medPunctRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
	name = strings.TrimSpace(leadingCodeRe.ReplaceAllString(name, ""))
	name = titleWords(name)
	if name == "" {
		// Never drop a detected medication for lack of a clean name.
		name = line
	}

	return domain.MedicationEntry{Name: name, Dosage: dosage, Quantity: quantity}
}

// medicationQuantity prefers the first small integer after the matched
// unit token, appending the unit word unless a number-unit pair is
// already adjacent in the line. Otherwise it falls back to the first
// small integer anywhere that does not look like a year or price,
// appending the unit word when that integer directly precedes the unit
// ("Paracetamol 500mg 10 tablets" -> "10 tablets").
func medicationQuantity(proc, unit string, unitLoc []int) string {
	if unitLoc != nil {
		after := strings.TrimSpace(proc[unitLoc[1]:])
		if m := smallNumRe.FindStringSubmatch(after); m != nil {
			quantity := m[1]
			adjacentRe := regexp.MustCompile(`(?i)\d+\s*` + regexp.QuoteMeta(unit))
			if unit != "" && !adjacentRe.MatchString(proc) {
				quantity = quantity + " " + unit
			}
			return quantity
		}
	}
	for _, m := range smallNumRe.FindAllStringSubmatch(proc, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n >= 1000 {
			continue
		}
		quantity := m[1]
		if unit != "" {
			pairRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(m[1]) + `\s*` + regexp.QuoteMeta(unit) + `\b`)
			if pairRe.MatchString(proc) {
				quantity = quantity + " " + unit
			}
		}
		return quantity
	}
	return ""
}

// normalizeDosage lower-cases a dosage token and removes its internal
// whitespace ("250 mg" -> "250mg").
func normalizeDosage(dosage string) string {
	return strings.ReplaceAll(strings.ToLower(dosage), " ", "")
}

// titleWords capitalizes each whitespace-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
