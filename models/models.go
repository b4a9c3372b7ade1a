// Package models defines the core data structures used throughout the application.
package models

import "time"

// CommitCountUnknown is the CommitCount value for repositories whose commit
// history was not counted. It is distinct from a legitimate count of zero.
const CommitCountUnknown = -1

// Repository is an immutable snapshot of a GitHub repository's metadata,
// taken once at listing time.
type Repository struct {
	Name        string    `db:"name" json:"name"`
	FullName    string    `db:"full_name" json:"full_name"`
	Owner       string    `db:"owner" json:"owner"`
	Private     bool      `db:"private" json:"private"`
	Archived    bool      `db:"archived" json:"archived"`
	Fork        bool      `db:"fork" json:"fork"`
	ForkedFrom  string    `db:"forked_from" json:"forked_from,omitempty"`
	Description *string   `db:"description" json:"description"`
	URL         string    `db:"url" json:"url"`
	Stars       int       `db:"stars_count" json:"stars_count"`
	Forks       int       `db:"forks_count" json:"forks_count"`
	Language    *string   `db:"language" json:"language"`
	SizeKB      int       `db:"size_kb" json:"size_kb"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Enrichment holds the commit metadata gathered for one repository.
// A nil LastCommitDate means either the repository has no reachable commit
// on its default branch or the lookup failed.
type Enrichment struct {
	CommitCount    int        `db:"commit_count" json:"commit_count"`
	LastCommitDate *time.Time `db:"last_commit_date" json:"last_commit_date"`
}

// ReportRecord is one flattened row of the final report: repository metadata
// merged with its enrichment.
type ReportRecord struct {
	Repository
	CommitCount    int        `db:"commit_count" json:"commit_count"`
	LastCommitDate *time.Time `db:"last_commit_date" json:"last_commit_date"`
}

// Summary aggregates counts over a finished report.
type Summary struct {
	Total      int `json:"total"`
	Private    int `json:"private"`
	Public     int `json:"public"`
	Archived   int `json:"archived"`
	Forked     int `json:"forked"`
	Original   int `json:"original"`
	TotalStars int `json:"total_stars"`
}
