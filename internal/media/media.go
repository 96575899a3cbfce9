package media

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=media.go -destination=mocks/mock.go
type Fetcher interface {
	// EnsureDownloaded guarantees asset exists locally under destDir afterwards.
	// It returns nil when the asset is already present, *domain.IntegrityFault when the asset
	// claims a local file that is missing, and *domain.DownloadFailure when fetching fails.
	// On success asset.LocalPath is set relative to the archive root.
	EnsureDownloaded(ctx context.Context, asset *domain.PostMedia, destDir string) error
}
