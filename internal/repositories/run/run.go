package run

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

// Repository is the ledger of archive runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=run.go -destination=mocks/mock.go
type Repository interface {
	// Create stores the summary with its failures, assigns summary.ID and returns it.
	Create(ctx context.Context, summary *domain.RunSummary) (int64, error)

	// Latest returns the most recent run, errors.ErrNotFound when the ledger is empty.
	Latest(ctx context.Context) (*domain.RunSummary, error)

	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]*domain.RunSummary, error)
}
