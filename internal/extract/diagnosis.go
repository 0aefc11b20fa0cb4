package extract

import "strings"

// diagnosisVocabulary is the closed set of condition keywords. Hits are
// reported in vocabulary-scan order, not document order.
var diagnosisVocabulary = []string{
	"malaria", "typhoid", "diabetes", "hypertension", "asthma",
	"fracture", "bronchitis", "heart attack", "stroke", "infection",
	"allergy", "covid-19", "pneumonia", "arthritis",
}

// ExtractDiagnoses matches the whole document, case-insensitively,
// against the condition vocabulary. Each keyword is included at most
// once, capitalized.
func ExtractDiagnoses(doc Document) []string {
	lower := strings.ToLower(doc.Text())
	found := []string{}
	for _, keyword := range diagnosisVocabulary {
		if strings.Contains(lower, keyword) {
			found = append(found, capitalize(keyword))
		}
	}
	return found
}
