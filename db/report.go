package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"githubreport/logger"
	"githubreport/models"
)

const upsertRecordQuery = `
	INSERT INTO report_records (
		full_name, name, owner, private, archived, fork, forked_from,
		description, url, stars_count, forks_count, language, size_kb,
		commit_count, last_commit_date, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	ON CONFLICT (full_name) DO UPDATE SET
		private = EXCLUDED.private,
		archived = EXCLUDED.archived,
		fork = EXCLUDED.fork,
		forked_from = EXCLUDED.forked_from,
		description = EXCLUDED.description,
		url = EXCLUDED.url,
		stars_count = EXCLUDED.stars_count,
		forks_count = EXCLUDED.forks_count,
		language = EXCLUDED.language,
		size_kb = EXCLUDED.size_kb,
		commit_count = EXCLUDED.commit_count,
		last_commit_date = EXCLUDED.last_commit_date,
		updated_at = EXCLUDED.updated_at
`

// StoreReport upserts every report record inside one transaction, keyed on
// the repository's full name. Either the whole report lands or none of it.
func (db *DB) StoreReport(ctx context.Context, records []models.ReportRecord) error {
	if len(records) == 0 {
		return nil
	}

	logger.Info("Storing report records", zap.Int("count", len(records)))

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertRecordQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare record upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.FullName == "" {
			return fmt.Errorf("%w: record full name cannot be empty", ErrInvalidInput)
		}
		if _, err := stmt.ExecContext(ctx,
			r.FullName, r.Name, r.Owner, r.Private, r.Archived, r.Fork, r.ForkedFrom,
			r.Description, r.URL, r.Stars, r.Forks, r.Language, r.SizeKB,
			r.CommitCount, r.LastCommitDate, r.CreatedAt, r.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert record %s: %w", r.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", ErrTransactionFailed, err)
	}

	logger.Info("Report records stored successfully", zap.Int("count", len(records)))
	return nil
}

// GetByFullName retrieves a stored report record.
func (db *DB) GetByFullName(ctx context.Context, fullName string) (*models.ReportRecord, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", ErrInvalidInput)
	}

	var record models.ReportRecord
	query := `
		SELECT full_name, name, owner, private, archived, fork, forked_from,
			description, url, stars_count, forks_count, language, size_kb,
			commit_count, last_commit_date, created_at, updated_at
		FROM report_records
		WHERE full_name = $1
	`

	if err := db.conn.GetContext(ctx, &record, query, fullName); err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", fullName, err)
	}

	return &record, nil
}
