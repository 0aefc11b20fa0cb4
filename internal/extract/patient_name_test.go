package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/extract"
)

func TestExtractPatientName_Labelled(t *testing.T) {
	doc := extract.NewDocument("Claim Form\nPatient Name: John Doe\nAge: 45")

	name, ok := extract.ExtractPatientName(doc)

	assert.True(t, ok)
	assert.Equal(t, "John Doe", name)
}

func TestExtractPatientName_LabelVariants(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Patient Name: John Doe", "John Doe"},
		{"Patient's Name: John Doe", "John Doe"},
		{"Name of Patient: John Doe", "John Doe"},
		{"Pt. Name: John Doe", "John Doe"},
		{"Patient Name -- John Doe", "John Doe"},
		{"Patient Name\tJohn Doe", "John Doe"},
	}
	for _, tt := range tests {
		name, ok := extract.ExtractPatientName(extract.NewDocument(tt.line))
		assert.True(t, ok, tt.line)
		assert.Equal(t, tt.want, name, tt.line)
	}
}

func TestExtractPatientName_NoSeparator(t *testing.T) {
	doc := extract.NewDocument("Patient Name John Doe")

	name, ok := extract.ExtractPatientName(doc)

	assert.True(t, ok)
	assert.Equal(t, "John Doe", name)
}

func TestExtractPatientName_HonorificStripped(t *testing.T) {
	doc := extract.NewDocument("Patient Name: Mr. John Doe")

	name, ok := extract.ExtractPatientName(doc)

	assert.True(t, ok)
	assert.Equal(t, "John Doe", name)
}

func TestExtractPatientName_SkipsFacilityLines(t *testing.T) {
	doc := extract.NewDocument("St. Mary Hospital Patient Name: Admissions Desk\nPatient Name: John Doe")

	name, ok := extract.ExtractPatientName(doc)

	assert.True(t, ok)
	assert.Equal(t, "John Doe", name)
}

func TestExtractPatientName_BareNameLabelIgnored(t *testing.T) {
	doc := extract.NewDocument("Name: John Doe")

	_, ok := extract.ExtractPatientName(doc)

	assert.False(t, ok)
}

func TestExtractPatientName_Missing(t *testing.T) {
	doc := extract.NewDocument("Invoice 2231\nTotal: 4,500")

	_, ok := extract.ExtractPatientName(doc)

	assert.False(t, ok)
}
