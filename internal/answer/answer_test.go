package answer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/answer"
	"claimlens/internal/domain"
)

func TestForMedications_KnownMedication(t *testing.T) {
	record := domain.StructuredRecord{
		Medications: []domain.MedicationEntry{
			{Name: "Paracetamol", Dosage: "500mg", Quantity: "10 tablets"},
		},
	}

	got := answer.ForMedications(record)

	assert.Equal(t, "Paracetamol 500mg 10 tablets — used for fever and pain relief", got)
}

func TestForMedications_UnknownFallsBackToDiagnoses(t *testing.T) {
	record := domain.StructuredRecord{
		Diagnoses: []string{"Malaria", "Typhoid"},
		Medications: []domain.MedicationEntry{
			{Name: "Coartem", Dosage: "80mg"},
		},
	}

	got := answer.ForMedications(record)

	assert.Equal(t, "Coartem 80mg — likely related to treating Malaria, Typhoid", got)
}

func TestForMedications_UnknownWithoutDiagnoses(t *testing.T) {
	record := domain.StructuredRecord{
		Medications: []domain.MedicationEntry{{Name: "Coartem"}},
	}

	got := answer.ForMedications(record)

	assert.Equal(t, "Coartem — purpose not determined from document", got)
}

func TestForMedications_MultipleJoined(t *testing.T) {
	record := domain.StructuredRecord{
		Medications: []domain.MedicationEntry{
			{Name: "Amoxicillin", Dosage: "250mg", Quantity: "2 capsules"},
			{Name: "Ibuprofen", Dosage: "400mg", Quantity: "1"},
		},
	}

	got := answer.ForMedications(record)

	assert.Equal(t,
		"Amoxicillin 250mg 2 capsules — used to treat bacterial infections; "+
			"Ibuprofen 400mg 1 — used for pain, inflammation, and fever",
		got)
}

func TestForMedications_Empty(t *testing.T) {
	got := answer.ForMedications(domain.StructuredRecord{})

	assert.Equal(t, answer.NoMedications, got)
}
