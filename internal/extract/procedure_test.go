package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/extract"
)

func TestExtractProcedures_KeepsVocabularyLines(t *testing.T) {
	doc := extract.NewDocument("Blood Test\nChest X-Ray\nRoom charges")

	procs := extract.ExtractProcedures(doc)

	assert.Equal(t, []string{"Blood Test", "Chest X-Ray"}, procs)
}

func TestExtractProcedures_SkipsFormLabels(t *testing.T) {
	doc := extract.NewDocument("Procedures:\nBlood Test")

	procs := extract.ExtractProcedures(doc)

	assert.Equal(t, []string{"Blood Test"}, procs)
}

func TestExtractProcedures_StripsDatesAndNumbers(t *testing.T) {
	doc := extract.NewDocument("X-Ray performed on 2024-03-02")

	procs := extract.ExtractProcedures(doc)

	assert.Equal(t, []string{"X Ray performed on"}, procs)
}

func TestExtractProcedures_DropsNumericOnlyLines(t *testing.T) {
	doc := extract.NewDocument("Lab 12345\nScan 2024-01-01")

	procs := extract.ExtractProcedures(doc)

	assert.Empty(t, procs)
}

func TestExtractProcedures_SkipsFacilityLines(t *testing.T) {
	doc := extract.NewDocument("Radiology Department Scan Unit\nCT Scan of the head")

	procs := extract.ExtractProcedures(doc)

	assert.Equal(t, []string{"CT Scan of the head"}, procs)
}

func TestExtractProcedures_Deduplicates(t *testing.T) {
	doc := extract.NewDocument("Blood Test\nBLOOD TEST")

	procs := extract.ExtractProcedures(doc)

	assert.Equal(t, []string{"Blood Test"}, procs)
}
