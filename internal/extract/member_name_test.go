package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/extract"
)

func TestExtractMemberName_ExplicitLabel(t *testing.T) {
	doc := extract.NewDocument("Patient Name: John Doe\nMember Name: Jane Smith")

	name, ok := extract.ExtractMemberName(doc, "John Doe")

	assert.True(t, ok)
	assert.Equal(t, "Jane Smith", name)
}

func TestExtractMemberName_LabelValueOnNextLine(t *testing.T) {
	doc := extract.NewDocument("Member Name:\n\nJane Smith")

	name, ok := extract.ExtractMemberName(doc, "")

	assert.True(t, ok)
	assert.Equal(t, "Jane Smith", name)
}

func TestExtractMemberName_PolicyholderLabel(t *testing.T) {
	doc := extract.NewDocument("Policyholder: Mark Webber")

	name, ok := extract.ExtractMemberName(doc, "")

	assert.True(t, ok)
	assert.Equal(t, "Mark Webber", name)
}

func TestExtractMemberName_ContextField(t *testing.T) {
	doc := extract.NewDocument("Insured: Mark Webber")

	name, ok := extract.ExtractMemberName(doc, "")

	assert.True(t, ok)
	assert.Equal(t, "Mark Webber", name)
}

func TestExtractMemberName_BareNameNeedsAdjacentContext(t *testing.T) {
	with := extract.NewDocument("Policy Number: 12345\nName: Sarah Connor")
	name, ok := extract.ExtractMemberName(with, "")
	assert.True(t, ok)
	assert.Equal(t, "Sarah Connor", name)

	// Without adjacent context the bare "Name:" line only surfaces
	// through the proximity scan, where the patient exclusion removes it.
	without := extract.NewDocument("Name: John Doe")
	_, ok = extract.ExtractMemberName(without, "John Doe")
	assert.False(t, ok)
}

func TestExtractMemberName_ProximityScanPrefersContext(t *testing.T) {
	doc := extract.NewDocument(
		"Alice Brown attended reception\n" +
			"General notes recorded\n" +
			"Additional remarks written\n" +
			"Policy documents enclosed\n" +
			"Jane Smith")

	name, ok := extract.ExtractMemberName(doc, "")

	assert.True(t, ok)
	assert.Equal(t, "Jane Smith", name)
}

func TestExtractMemberName_ExcludesPatient(t *testing.T) {
	doc := extract.NewDocument("Member Name: John Doe")

	_, ok := extract.ExtractMemberName(doc, "John Doe")

	assert.False(t, ok)
}

func TestExtractMemberName_SkipsFacilityHeader(t *testing.T) {
	doc := extract.NewDocument("Sunrise Clinic Ward\nMember Name: Jane Smith")

	name, ok := extract.ExtractMemberName(doc, "")

	assert.True(t, ok)
	assert.Equal(t, "Jane Smith", name)
}

func TestExtractMemberName_Missing(t *testing.T) {
	doc := extract.NewDocument("Invoice 4410\nTotal: 2,000")

	_, ok := extract.ExtractMemberName(doc, "")

	assert.False(t, ok)
}
