// Package export serializes report records to CSV with a fixed column schema.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"githubreport/models"
)

// Header is the fixed CSV column schema, in output order.
var Header = []string{
	"Repository Name",
	"Full Name",
	"Private",
	"Archived",
	"Is Fork",
	"Forked From",
	"Description",
	"URL",
	"Stars",
	"Forks",
	"Primary Language",
	"Commit Count",
	"Last Commit Date",
	"Created Date",
	"Updated Date",
	"Size (KB)",
}

// Write serializes the records as CSV, header row first.
func Write(w io.Writer, records []models.ReportRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		if err := cw.Write(toRow(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.FullName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile serializes the records to the named file.
func WriteFile(path string, records []models.ReportRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// DefaultFilename builds the output filename used when none is given:
// <username>-repositories-<timestamp>.csv, with the ISO8601 timestamp's
// colons and dots replaced by dashes to stay filesystem-safe.
func DefaultFilename(username string, now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return fmt.Sprintf("%s-repositories-%s.csv", username, stamp)
}

// toRow flattens one record into CSV cells. Nullable fields and the
// not-computed commit count sentinel render as empty cells.
func toRow(r models.ReportRecord) []string {
	commitCount := ""
	if r.CommitCount != models.CommitCountUnknown {
		commitCount = strconv.Itoa(r.CommitCount)
	}

	lastCommit := ""
	if r.LastCommitDate != nil {
		lastCommit = r.LastCommitDate.UTC().Format(time.RFC3339)
	}

	return []string{
		r.Name,
		r.FullName,
		strconv.FormatBool(r.Private),
		strconv.FormatBool(r.Archived),
		strconv.FormatBool(r.Fork),
		r.ForkedFrom,
		deref(r.Description),
		r.URL,
		strconv.Itoa(r.Stars),
		strconv.Itoa(r.Forks),
		deref(r.Language),
		commitCount,
		lastCommit,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
		strconv.Itoa(r.SizeKB),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
