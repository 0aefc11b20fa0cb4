package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patient holds the identity fields extracted for the patient.
// Age is nil when no labelled age or DOB was found in the document.
type Patient struct {
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

// MedicationEntry is a single extracted medication. Dosage and Quantity
// are empty strings when the source line carried no such detail.
type MedicationEntry struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Quantity string `json:"quantity"`
}

// AdmissionInfo captures admission status and dates. Dates keep their
// original source formatting (ISO, DMY, or textual month), so they are
// strings rather than time values.
type AdmissionInfo struct {
	WasAdmitted   bool    `json:"was_admitted"`
	AdmissionDate *string `json:"admission_date"`
	DischargeDate *string `json:"discharge_date"`
}

// StructuredRecord is the aggregate output of the extraction pipeline.
// Absent fields are empty strings, empty lists, or null; keys are never
// omitted from the serialized form.
type StructuredRecord struct {
	Patient     Patient           `json:"patient"`
	MemberName  string            `json:"member_name"`
	Diagnoses   []string          `json:"diagnoses"`
	Medications []MedicationEntry `json:"medications"`
	Procedures  []string          `json:"procedures"`
	Admission   AdmissionInfo     `json:"admission"`
	TotalAmount *string           `json:"total_amount"`
}

// ExtractedDocument is a stored extraction result: the OCR text it was
// derived from plus the structured record, keyed by a generated ID.
type ExtractedDocument struct {
	ID          uuid.UUID        `json:"id"`
	FileName    string           `json:"file_name"`
	ContentType string           `json:"content_type"`
	RawText     string           `json:"raw_text"`
	Structure   StructuredRecord `json:"structure"`
	CreatedAt   time.Time        `json:"created_at"`
}
