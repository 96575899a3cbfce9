package run

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/internal/repositories"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
)

var runColumns = []string{
	"id", "started_at", "finished_at", "discovered", "already_archived",
	"to_archive", "archived", "failed", "skipped_documents", "interrupted",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("RunLedger"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create inserts the run and its failures in one transaction
func (p *Pgx) Create(ctx context.Context, summary *domain.RunSummary) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Insert("runs").
		Columns(runColumns[1:]...).
		Values(summary.StartedAt, summary.FinishedAt, summary.Discovered, summary.AlreadyArchived,
			summary.ToArchive, summary.Archived, summary.Failed, summary.SkippedDocuments,
			summary.Interrupted).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	tx, err := p.pg.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	if len(summary.Failures) > 0 {
		insert := repositories.SqBuilder.
			Insert("run_failures").
			Columns("run_id", "post_id", "code", "reason")
		for _, f := range summary.Failures {
			insert = insert.Values(id, f.PostID, f.Code, f.Reason)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return 0, repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("failed to insert run failures: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	summary.ID = id
	p.logger.Debug("Run recorded", "run_id", id)
	return id, nil
}

func (p *Pgx) Latest(ctx context.Context) (*domain.RunSummary, error) {
	runs, err := p.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, errors.ErrNotFound
	}
	return runs[0], nil
}

func (p *Pgx) List(ctx context.Context, limit int) ([]*domain.RunSummary, error) {
	builder := repositories.SqBuilder.
		Select(runColumns...).
		From("runs").
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.RunSummary, error) {
		var s domain.RunSummary
		err := row.Scan(&s.ID, &s.StartedAt, &s.FinishedAt, &s.Discovered, &s.AlreadyArchived,
			&s.ToArchive, &s.Archived, &s.Failed, &s.SkippedDocuments, &s.Interrupted)
		return &s, err
	})
	if err != nil {
		return nil, err
	}

	if err := p.attachFailures(ctx, runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (p *Pgx) attachFailures(ctx context.Context, runs []*domain.RunSummary) error {
	if len(runs) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.RunSummary, len(runs))
	ids := make([]int64, 0, len(runs))
	for _, r := range runs {
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}

	query, args, err := repositories.SqBuilder.
		Select("run_id", "post_id", "code", "reason").
		From("run_failures").
		Where(sq.Eq{"run_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var runID int64
		var f domain.PostFailure
		if err := rows.Scan(&runID, &f.PostID, &f.Code, &f.Reason); err != nil {
			return err
		}
		if r, ok := byID[runID]; ok {
			r.Failures = append(r.Failures, f)
		}
	}
	return rows.Err()
}
