package extract

import (
	"time"

	"claimlens/internal/domain"
)

// Pipeline composes the field extractors into a single pass over a
// document. Each run is a pure function of the input text: there is no
// shared state between invocations, so one Pipeline may serve
// concurrent requests.
type Pipeline struct {
	now func() time.Time
}

// NewPipeline creates a Pipeline using the wall clock for the age DOB
// fallback.
func NewPipeline() *Pipeline {
	return &Pipeline{now: time.Now}
}

// NewPipelineAt creates a Pipeline with a fixed clock.
func NewPipelineAt(now func() time.Time) *Pipeline {
	return &Pipeline{now: now}
}

// Run resolves every field and assembles the structured record. The
// only cross-extractor coupling is the fixed ordering: the patient name
// is resolved first so the member-name cascade can exclude it. Missing
// fields surface as empty values, never as errors.
func (p *Pipeline) Run(doc Document) domain.StructuredRecord {
	patientName, _ := ExtractPatientName(doc)
	memberName, _ := ExtractMemberName(doc, patientName)

	record := domain.StructuredRecord{
		Patient:     domain.Patient{Name: patientName},
		MemberName:  memberName,
		Diagnoses:   ExtractDiagnoses(doc),
		Medications: ExtractMedications(doc),
		Procedures:  ExtractProcedures(doc),
		Admission:   ExtractAdmission(doc),
	}

	if age, ok := ExtractAge(doc, p.now); ok {
		record.Patient.Age = &age
	}
	if amount, ok := ExtractTotalAmount(doc); ok {
		record.TotalAmount = &amount
	}
	return record
}

// RunText is a convenience wrapper for callers holding a raw text blob.
func (p *Pipeline) RunText(text string) domain.StructuredRecord {
	return p.Run(NewDocument(text))
}
