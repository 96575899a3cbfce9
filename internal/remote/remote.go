package remote

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

// Source lists the account's posts as freshly constructed, unarchived Posts.
//
//go:generate go run go.uber.org/mock/mockgen -source=remote.go -destination=mocks/mock.go
type Source interface {
	// ListRemotePosts fetches the account's items and maps them to Posts. It always hits the network.
	ListRemotePosts(ctx context.Context) ([]*domain.Post, error)

	// CachedRemotePosts returns a copy of the last successful ListRemotePosts result, if any,
	// without touching the network.
	CachedRemotePosts() ([]*domain.Post, bool)
}
