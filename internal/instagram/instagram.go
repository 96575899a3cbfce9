package instagram

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

var (
	ErrNotLoggedIn = errors.New("instagram client is not logged in")
)

// Client is the authenticated account client the archiver reads from.
//
//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	// Login reuses a saved session when it is still valid, otherwise logs in with credentials.
	Login(ctx context.Context) error

	// ResolveAccountID returns the numeric id of the account with the given handle.
	ResolveAccountID(ctx context.Context, handle string) (int64, error)

	// ListItems returns every item posted by the account, newest first.
	ListItems(ctx context.Context, accountID int64) ([]domain.RemoteItem, error)
}
