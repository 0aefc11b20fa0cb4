package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// amountLabelRe matches explicit total/net/balance/invoice/payable
	// labels on billing lines.
	amountLabelRe = regexp.MustCompile(`(?i)\b(` + strings.Join([]string{
		`net\s+(?:amount|value|total|payable|amt)`,
		`total\s+(?:amount|value|payable|due|bill)`,
		`final\s+(?:amount|total|payment|value)`,
		`grand\s+total`,
		`bill(?:ing)?\s+(?:amount|total)`,
		`invoice\s+(?:amount|total|value)`,
		`amount\s+(?:due|payable)`,
		`balance\s+(?:due|payable)`,
		`sub\s*total`,
		`payable\s+amount`,
	}, "|") + `)\b`)

	// amountTokenRe captures currency-marked or comma-grouped numbers.
	amountTokenRe = regexp.MustCompile(`(?i)(₦\s?[\d,]+(?:\.\d+)?|NGN\s?[\d,]+(?:\.\d+)?|[\d,]+\.\d+|[\d,]+\b)`)

	// amountOnlyLineRe matches a line consisting solely of an amount.
	amountOnlyLineRe = regexp.MustCompile(`(?i)^\s*(?:₦\s?[\d,]+(?:\.\d+)?|NGN\s?[\d,]+(?:\.\d+)?|[\d,]+(?:\.\d+)?)\s*$`)

	// totalishRe matches the loose total vocabulary used to qualify an
	// unlabelled amount-only line by its preceding line.
	totalishRe = regexp.MustCompile(`(?i)\b(sum|subtotal|total|net|amount|payable|due|grand)\b`)

	ngnMarkerRe    = regexp.MustCompile(`(?i)\bNGN\b`)
	nonAmountChrRe = regexp.MustCompile(`[^\d.]`)
)

// amountStrategy is one tier of the amount cascade.
type amountStrategy func(doc Document, lines []string) (string, bool)

// amountStrategies in priority order: labelled same-line value,
// labelled next-line value, amount-only line after a total-ish word,
// then the largest numeric token on the page.
var amountStrategies = []amountStrategy{
	amountFromLabelledLine,
	amountFromLabelNextLine,
	amountAfterTotalWord,
	amountLargestValue,
}

// ExtractTotalAmount resolves the billed total. ok is false only when
// the document contains no numeric or currency token at all.
func ExtractTotalAmount(doc Document) (amount string, ok bool) {
	var lines []string
	for _, line := range doc.Lines() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t\r"))
	}

	for _, strategy := range amountStrategies {
		if amount, ok := strategy(doc, lines); ok {
			return amount, true
		}
	}
	return "", false
}

// Tier 1: a label line carrying the amount itself.
func amountFromLabelledLine(_ Document, lines []string) (string, bool) {
	for _, line := range lines {
		if facilityLineRe.MatchString(line) {
			continue
		}
		if !amountLabelRe.MatchString(line) {
			continue
		}
		if token := amountTokenRe.FindString(line); token != "" {
			return normalizeNGN(strings.TrimSpace(token)), true
		}
	}
	return "", false
}

// Tier 2: a label line with no amount, followed by a line that is
// solely a currency/number value.
func amountFromLabelNextLine(_ Document, lines []string) (string, bool) {
	for i, line := range lines {
		if facilityLineRe.MatchString(line) {
			continue
		}
		if !amountLabelRe.MatchString(line) || amountTokenRe.MatchString(line) {
			continue
		}
		if i+1 >= len(lines) || !amountOnlyLineRe.MatchString(lines[i+1]) {
			continue
		}
		if token := amountTokenRe.FindString(lines[i+1]); token != "" {
			return normalizeNGN(strings.TrimSpace(token)), true
		}
	}
	return "", false
}

// Tier 3: an unlabelled amount-only line directly preceded by a line
// with total-ish vocabulary.
func amountAfterTotalWord(_ Document, lines []string) (string, bool) {
	for i, line := range lines {
		if !amountOnlyLineRe.MatchString(line) {
			continue
		}
		if i == 0 || !totalishRe.MatchString(lines[i-1]) {
			continue
		}
		if token := amountTokenRe.FindString(line); token != "" {
			return normalizeNGN(strings.TrimSpace(token)), true
		}
	}
	return "", false
}

// Tier 4: every parseable token outside facility-header lines, highest
// numeric value wins. A line-item price larger than the printed total
// wins here too; that imprecision is accepted.
func amountLargestValue(doc Document, lines []string) (string, bool) {
	var (
		bestToken string
		bestValue float64
		found     bool
	)
	for _, line := range lines {
		if facilityLineRe.MatchString(line) {
			continue
		}
		for _, token := range amountTokenRe.FindAllString(line, -1) {
			token = strings.TrimSpace(token)
			value, ok := parseAmount(token)
			if !ok {
				continue
			}
			if !found || value > bestValue {
				bestToken, bestValue, found = token, value, true
			}
		}
	}
	if !found {
		return "", false
	}
	// The NGN marker anywhere on the page is enough to render the
	// winner in naira form.
	if ngnMarkerRe.MatchString(doc.Text()) && !strings.HasPrefix(bestToken, "₦") {
		return formatNaira(bestValue), true
	}
	return bestToken, true
}

// parseAmount strips separators and currency markers and parses the
// remainder. Malformed tokens are skipped as candidates, never fatal.
func parseAmount(token string) (float64, bool) {
	cleaned := nonAmountChrRe.ReplaceAllString(token, "")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// normalizeNGN rewrites an NGN-marked value to the ₦ symbol form with
// thousands separators; integral values drop decimal places.
func normalizeNGN(token string) string {
	if !ngnMarkerRe.MatchString(token) || strings.HasPrefix(token, "₦") {
		return token
	}
	value, ok := parseAmount(token)
	if !ok {
		return token
	}
	return formatNaira(value)
}

// formatNaira renders a value as ₦ with comma thousands separators,
// keeping decimals only for fractional values.
func formatNaira(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")
	grouped := groupThousands(intPart)
	if !hasFrac {
		return "₦" + grouped
	}
	return "₦" + grouped + "." + frac
}

// groupThousands inserts commas into a digit string every three digits
// from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
