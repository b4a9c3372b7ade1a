// Package enricher performs the per-repository commit lookup: resolve the
// default branch, fetch the most recent commit, and optionally count the
// full history. Enrichment is best-effort and never aborts the pipeline.
package enricher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"githubreport/logger"
	"githubreport/models"
)

// CommitAPI defines the GitHub client operations needed by the enricher
type CommitAPI interface {
	DefaultBranch(ctx context.Context, owner, name string) (string, error)
	LatestCommit(ctx context.Context, owner, name, branch string) (*time.Time, error)
	CountCommits(ctx context.Context, owner, name, branch string) (int, error)
}

// Enricher produces one Enrichment per repository.
type Enricher struct {
	client       CommitAPI
	countCommits bool
}

// New creates an Enricher. When countCommits is set, every enrichment walks
// the repository's full commit history, one round trip per page.
func New(client CommitAPI, countCommits bool) *Enricher {
	return &Enricher{client: client, countCommits: countCommits}
}

// Enrich looks up commit metadata for one repository. It never returns an
// error: any failure is logged as a warning and degrades to a zero-valued
// record, so one broken repository cannot abort the batch.
func (e *Enricher) Enrich(ctx context.Context, owner, name string) models.Enrichment {
	branch, err := e.client.DefaultBranch(ctx, owner, name)
	if err != nil {
		return e.failed(owner, name, "resolve default branch", err)
	}

	lastCommit, err := e.client.LatestCommit(ctx, owner, name, branch)
	if err != nil {
		return e.failed(owner, name, "fetch latest commit", err)
	}

	count := models.CommitCountUnknown
	if e.countCommits {
		count, err = e.client.CountCommits(ctx, owner, name, branch)
		if err != nil {
			return e.failed(owner, name, "count commits", err)
		}
	}

	return models.Enrichment{
		CommitCount:    count,
		LastCommitDate: lastCommit,
	}
}

// failed downgrades an enrichment error to the zero-valued record.
func (e *Enricher) failed(owner, name, step string, err error) models.Enrichment {
	logger.Warn("Enrichment failed, emitting empty record",
		zap.String("owner", owner),
		zap.String("name", name),
		zap.String("step", step),
		zap.Error(err))
	return models.Enrichment{CommitCount: 0, LastCommitDate: nil}
}
