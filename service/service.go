// Package service wires the pipeline together: list, enrich with bounded
// concurrency, assemble, export.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"githubreport/batch"
	"githubreport/config"
	"githubreport/export"
	"githubreport/logger"
	"githubreport/models"
	"githubreport/report"
)

// Lister abstracts the GitHub listing operations needed by the service
// (for testability)
type Lister interface {
	AuthenticatedLogin(ctx context.Context) (string, error)
	ListOwnRepositories(ctx context.Context) ([]models.Repository, error)
	ListUserRepositories(ctx context.Context, username string) ([]models.Repository, error)
}

// RepoEnricher abstracts the per-repository commit enrichment
// (for testability)
type RepoEnricher interface {
	Enrich(ctx context.Context, owner, name string) models.Enrichment
}

// ReportStore abstracts the optional database sink
type ReportStore interface {
	StoreReport(ctx context.Context, records []models.ReportRecord) error
}

// Service runs one report over one account.
type Service struct {
	cfg      *config.Config
	client   Lister
	enricher RepoEnricher
	store    ReportStore // nil when no database is configured
	out      io.Writer
}

// New creates a Service. store may be nil; out receives the progress and
// summary lines.
func New(cfg *config.Config, client Lister, enricher RepoEnricher, store ReportStore, out io.Writer) *Service {
	return &Service{
		cfg:      cfg,
		client:   client,
		enricher: enricher,
		store:    store,
		out:      out,
	}
}

// Run produces the report for username and writes it to outputPath, or to
// the default timestamped filename when outputPath is empty. It returns the
// path the report was written to.
func (s *Service) Run(ctx context.Context, username, outputPath string) (string, error) {
	started := time.Now()

	repos, err := s.listRepositories(ctx, username)
	if err != nil {
		logger.Error("Failed to list repositories",
			zap.String("username", username),
			zap.Error(err))
		return "", err
	}
	logger.Info("Repository listing complete",
		zap.String("username", username),
		zap.Int("count", len(repos)))

	enrichments, err := s.enrichAll(ctx, repos)
	if err != nil {
		return "", err
	}

	records, err := report.Assemble(repos, enrichments)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = export.DefaultFilename(username, time.Now())
	}
	if err := export.WriteFile(outputPath, records); err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Report written to %s\n", outputPath)

	if s.store != nil {
		// The CSV is the primary artifact; a sink failure downgrades
		// to a warning.
		if err := s.store.StoreReport(ctx, records); err != nil {
			logger.Warn("Failed to store report in database", zap.Error(err))
		}
	}

	summary := report.Summarize(records)
	report.WriteSummary(s.out, username, summary)

	logger.Info("Report complete",
		zap.String("username", username),
		zap.String("output", outputPath),
		zap.Int("repositories", summary.Total),
		zap.Int("total_stars", summary.TotalStars),
		zap.Duration("elapsed", time.Since(started)))

	return outputPath, nil
}

// listRepositories selects the listing mode once, before listing begins:
// the token owner sees all their repositories, anyone else's account lists
// public only.
func (s *Service) listRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	login, err := s.client.AuthenticatedLogin(ctx)
	if err != nil {
		return nil, err
	}

	if login == username {
		return s.client.ListOwnRepositories(ctx)
	}
	return s.client.ListUserRepositories(ctx, username)
}

// enrichAll runs the enricher over every repository with at most
// cfg.Concurrency lookups in flight, preserving input order.
func (s *Service) enrichAll(ctx context.Context, repos []models.Repository) ([]models.Enrichment, error) {
	total := len(repos)
	runner := &batch.Runner[models.Repository, models.Enrichment]{
		Limit: s.cfg.Concurrency,
		OnItem: func(position int, repo models.Repository) {
			fmt.Fprintf(s.out, "Processing %d/%d: %s\n", position, total, repo.Name)
		},
		OnChunk: func(index, size int) {
			logger.Debug("Starting enrichment chunk",
				zap.Int("chunk", index),
				zap.Int("size", size))
		},
	}

	return runner.Run(ctx, repos, func(ctx context.Context, repo models.Repository, _ int) models.Enrichment {
		return s.enricher.Enrich(ctx, repo.Owner, repo.Name)
	})
}
