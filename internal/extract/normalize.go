package extract

import (
	"regexp"
	"strings"
)

var (
	honorificRe    = regexp.MustCompile(`(?i)\b(Mr|Mrs|Ms|Dr|Prof|Miss|Mx|Rev)\.?\b`)
	roleNounRe     = regexp.MustCompile(`(?i)\b(patient|member|insured|policyholder|subscriber|beneficiary|name|dob|age|address)\b`)
	facilityNounRe = regexp.MustCompile(`(?i)\b(hospital|clinic|medical|center|centre|facility|ward|department)\b`)
	nonNameCharRe  = regexp.MustCompile(`[^\w\s-]`)
	nameTokenRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z'-]*$`)
)

// CleanPersonCandidate normalizes a candidate span into a two-token
// "First Last" person name. It strips honorific titles, role and label
// nouns, and facility-type nouns, then keeps only alphabetic-leading
// tokens. ok is false unless at least two such tokens survive; the
// first two become the name. Both name extractors route through this,
// so a field label can never leak into an extracted name.
func CleanPersonCandidate(candidate string) (name string, ok bool) {
	if candidate == "" {
		return "", false
	}
	candidate = honorificRe.ReplaceAllString(candidate, "")
	candidate = roleNounRe.ReplaceAllString(candidate, "")
	candidate = facilityNounRe.ReplaceAllString(candidate, "")
	candidate = strings.TrimSpace(nonNameCharRe.ReplaceAllString(candidate, ""))

	var tokens []string
	for _, tok := range strings.Fields(candidate) {
		if nameTokenRe.MatchString(tok) {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) < 2 {
		return "", false
	}
	return capitalize(tokens[0]) + " " + capitalize(tokens[1]), true
}

// capitalize upper-cases the first byte and lower-cases the rest.
// Name tokens are ASCII-alphabetic by construction.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
