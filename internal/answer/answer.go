// Package answer builds the deterministic textual summary served by the
// ask endpoint. It consumes only the structured record; there is no
// reasoning involved.
package answer

import (
	"strings"

	"claimlens/internal/domain"
)

// medicationPurposes maps well-known medication names to their common
// use. The lookup is substring-based against the lowercased extracted
// name.
var medicationPurposes = map[string]string{
	"paracetamol":   "used for fever and pain relief",
	"amoxicillin":   "used to treat bacterial infections",
	"ciprofloxacin": "used to treat bacterial infections",
	"ibuprofen":     "used for pain, inflammation, and fever",
	"artemether":    "used to treat malaria",
	"artesunate":    "used to treat malaria",
}

// purposeOrder fixes the lookup order so the summary is deterministic.
var purposeOrder = []string{
	"paracetamol", "amoxicillin", "ciprofloxacin",
	"ibuprofen", "artemether", "artesunate",
}

// NoMedications is the answer when the record holds no medications.
const NoMedications = "No medications were extracted from the document."

// ForMedications describes each extracted medication with its dosage,
// quantity, and inferred purpose. Unknown medications fall back to the
// record's diagnoses, then to an explicit "not determined" note.
func ForMedications(record domain.StructuredRecord) string {
	if len(record.Medications) == 0 {
		return NoMedications
	}

	parts := make([]string, 0, len(record.Medications))
	for _, med := range record.Medications {
		name := strings.TrimSpace(med.Name)
		purpose := lookupPurpose(name)
		if purpose == "" {
			if len(record.Diagnoses) > 0 {
				purpose = "likely related to treating " + strings.Join(record.Diagnoses, ", ")
			} else {
				purpose = "purpose not determined from document"
			}
		}
		desc := strings.TrimSpace(name + " " + med.Dosage + " " + med.Quantity)
		parts = append(parts, desc+" — "+purpose)
	}
	return strings.Join(parts, "; ")
}

func lookupPurpose(name string) string {
	searchable := strings.ToLower(name)
	for _, key := range purposeOrder {
		if strings.Contains(searchable, key) {
			return medicationPurposes[key]
		}
	}
	return ""
}
