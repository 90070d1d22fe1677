// Package export renders submission listings as CSV and XLSX reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"leadgate/internal/domain"
)

// BOM is the UTF-8 byte order mark, written ahead of CSV output for Excel
// compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the report header row.
var columns = []string{
	"Submission ID",
	"Form",
	"Status",
	"Lead ID",
	"Applicant Name",
	"Applicant Mobile",
	"Applicant Email",
	"Last Error",
	"Created At",
	"Updated At",
}

// CSVWriter wraps csv.Writer for exporting submissions.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSubmissions converts a batch of submissions to CSV rows and writes them.
func (w *CSVWriter) WriteSubmissions(subs []domain.Submission) error {
	for i := range subs {
		if err := w.csv.Write(submissionToRow(&subs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// submissionToRow converts a single submission to a row. Applicant columns
// come out of the answers JSON; a submission with unreadable answers still
// exports its metadata columns.
func submissionToRow(sub *domain.Submission) []string {
	row := make([]string, len(columns))
	row[0] = sub.ID.String()
	row[1] = sub.FormKey
	row[2] = string(sub.Status)
	row[3] = sub.LeadID
	row[7] = sub.LastError
	row[8] = sub.CreatedAt.Format(time.RFC3339)
	row[9] = sub.UpdatedAt.Format(time.RFC3339)

	var answers domain.FormAnswers
	if err := json.Unmarshal(sub.Answers, &answers); err != nil {
		return row
	}
	row[4] = answers.Get("full_name")
	row[5] = answers.Get("mobile")
	row[6] = answers.Get("email")
	return row
}
