package extract

import (
	"regexp"

	"claimlens/internal/domain"
)

var (
	// dateRe matches ISO, DD/MM/YYYY, and textual "D Month YYYY" dates.
	dateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}|\d{1,2}\s[A-Za-z]{3,9}\s\d{4})`)

	admissionWordRe = regexp.MustCompile(`(?i)\b(admit|admitted|admission|discharge|discharged)\b`)
	admitRe         = regexp.MustCompile(`(?i)\b(admit|admitted|admission)\b`)
	dischargeRe     = regexp.MustCompile(`(?i)\b(discharge|discharged)\b`)
)

// ExtractAdmission determines admission status and dates. Dates are
// read only from lines referencing admission or discharge, so unrelated
// dates elsewhere in the document are never picked up: the first date
// found becomes the admission date, the next distinct date the
// discharge date. If no admission keyword is seen but a discharge
// keyword appears anywhere, the patient is still marked admitted,
// since discharge implies a prior admission.
func ExtractAdmission(doc Document) domain.AdmissionInfo {
	info := domain.AdmissionInfo{}

	for _, line := range doc.Lines() {
		if !admissionWordRe.MatchString(line) {
			continue
		}
		if admitRe.MatchString(line) {
			info.WasAdmitted = true
		}
		for _, date := range dateRe.FindAllString(line, -1) {
			switch {
			case info.AdmissionDate == nil:
				d := date
				info.AdmissionDate = &d
			case info.DischargeDate == nil && date != *info.AdmissionDate:
				d := date
				info.DischargeDate = &d
			}
		}
	}

	if !info.WasAdmitted && dischargeRe.MatchString(doc.Text()) {
		info.WasAdmitted = true
	}
	return info
}
