package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"claimlens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row (13 columns), shared by the
// CSV and XLSX writers.
var columns = []string{
	"Document ID",
	"File Name",
	"Patient Name",
	"Age",
	"Member Name",
	"Diagnoses",
	"Medications",
	"Procedures",
	"Was Admitted",
	"Admission Date",
	"Discharge Date",
	"Total Amount",
	"Created At",
}

// Writer wraps csv.Writer for exporting extracted documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.ExtractedDocument) error {
	for i := range docs {
		if err := w.csv.Write(documentToRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// documentToRow converts a single document to a 13-element string slice.
// Absent optional fields become empty cells.
func documentToRow(doc *domain.ExtractedDocument) []string {
	row := make([]string, len(columns))
	rec := &doc.Structure

	row[0] = doc.ID.String()
	row[1] = doc.FileName
	row[2] = rec.Patient.Name
	if rec.Patient.Age != nil {
		row[3] = strconv.Itoa(*rec.Patient.Age)
	}
	row[4] = rec.MemberName
	row[5] = strings.Join(rec.Diagnoses, "; ")
	row[6] = formatMedications(rec.Medications)
	row[7] = strings.Join(rec.Procedures, "; ")
	row[8] = formatBool(rec.Admission.WasAdmitted)
	row[9] = stringOrEmpty(rec.Admission.AdmissionDate)
	row[10] = stringOrEmpty(rec.Admission.DischargeDate)
	row[11] = stringOrEmpty(rec.TotalAmount)
	row[12] = doc.CreatedAt.Format(time.RFC3339)

	return row
}

func formatMedications(meds []domain.MedicationEntry) string {
	parts := make([]string, 0, len(meds))
	for _, m := range meds {
		fields := []string{m.Name}
		if m.Dosage != "" {
			fields = append(fields, m.Dosage)
		}
		if m.Quantity != "" {
			fields = append(fields, m.Quantity)
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, "; ")
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
