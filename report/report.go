// Package report merges repository snapshots with their enrichments and
// summarizes the finished report.
package report

import (
	"fmt"
	"io"

	"githubreport/models"
)

// ErrLengthMismatch is returned when the descriptor and enrichment slices
// disagree in length, which the batch runner's contract rules out.
var ErrLengthMismatch = fmt.Errorf("repository and enrichment counts differ")

// Assemble produces one ReportRecord per repository by merging each
// repository with the enrichment at the same index. Pure; no I/O.
func Assemble(repos []models.Repository, enrichments []models.Enrichment) ([]models.ReportRecord, error) {
	if len(repos) != len(enrichments) {
		return nil, fmt.Errorf("%w: %d repositories, %d enrichments", ErrLengthMismatch, len(repos), len(enrichments))
	}

	records := make([]models.ReportRecord, len(repos))
	for i, repo := range repos {
		records[i] = models.ReportRecord{
			Repository:     repo,
			CommitCount:    enrichments[i].CommitCount,
			LastCommitDate: enrichments[i].LastCommitDate,
		}
	}
	return records, nil
}

// Summarize aggregates counts over the report records.
func Summarize(records []models.ReportRecord) models.Summary {
	s := models.Summary{Total: len(records)}
	for _, r := range records {
		if r.Private {
			s.Private++
		} else {
			s.Public++
		}
		if r.Archived {
			s.Archived++
		}
		if r.Fork {
			s.Forked++
		} else {
			s.Original++
		}
		s.TotalStars += r.Stars
	}
	return s
}

// WriteSummary prints the human-readable summary block.
func WriteSummary(w io.Writer, username string, s models.Summary) {
	fmt.Fprintf(w, "\nSummary for %s\n", username)
	fmt.Fprintf(w, "  Total repositories: %d\n", s.Total)
	fmt.Fprintf(w, "  Private: %d\n", s.Private)
	fmt.Fprintf(w, "  Public: %d\n", s.Public)
	fmt.Fprintf(w, "  Archived: %d\n", s.Archived)
	fmt.Fprintf(w, "  Forked: %d\n", s.Forked)
	fmt.Fprintf(w, "  Original: %d\n", s.Original)
	fmt.Fprintf(w, "  Total stars: %d\n", s.TotalStars)
}
