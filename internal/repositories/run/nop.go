package run

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/pkg/errors"
)

// Nop discards runs. It backs LEDGER_BACKEND=none.
type Nop struct{}

var _ Repository = Nop{}

func (Nop) Create(context.Context, *domain.RunSummary) (int64, error) { return 0, nil }

func (Nop) Latest(context.Context) (*domain.RunSummary, error) { return nil, errors.ErrNotFound }

func (Nop) List(context.Context, int) ([]*domain.RunSummary, error) { return nil, nil }
