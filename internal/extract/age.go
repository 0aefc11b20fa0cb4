package extract

import (
	"regexp"
	"strconv"
	"time"
)

var (
	ageWordRe   = regexp.MustCompile(`(?i)\bage\b`)
	ageLabelRe  = regexp.MustCompile(`(?i)age[:\s]*([0-9]{1,3})\b`)
	ageSuffixRe = regexp.MustCompile(`(?i)([0-9]{1,3})\s*(?:years|yrs|y/o|yo)\b`)
	dobRe       = regexp.MustCompile(`(?i)\bDOB[:\s]*([0-9]{4})-([0-9]{2})-([0-9]{2})\b`)
)

// ExtractAge returns the patient age. Only lines containing the word
// "age" or an explicit years/yrs/y-o suffix are considered; bare
// numbers elsewhere (dosages, amounts, dates) are never treated as an
// age. When no line qualifies, a "DOB: YYYY-MM-DD" pattern anywhere in
// the text yields an age computed as of now(). ok is false when
// neither path succeeds.
func ExtractAge(doc Document, now func() time.Time) (age int, ok bool) {
	for _, line := range doc.Lines() {
		if !ageWordRe.MatchString(line) && !ageSuffixRe.MatchString(line) {
			continue
		}
		if m := ageLabelRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return v, true
			}
		}
		if m := ageSuffixRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return v, true
			}
		}
	}

	m := dobRe.FindStringSubmatch(doc.Text())
	if m == nil {
		return 0, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	// time.Date normalizes out-of-range components, so a changed value
	// after the round trip means the DOB was not a real calendar date.
	dob := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if dob.Year() != year || int(dob.Month()) != month || dob.Day() != day {
		return 0, false
	}

	today := now()
	age = today.Year() - year
	// Not yet had this year's birthday.
	if int(today.Month()) < month || (int(today.Month()) == month && today.Day() < day) {
		age--
	}
	return age, true
}
