package archive

import (
	"context"
	"path/filepath"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

// Fixed archive layout below the root.
const (
	ConfigFile  = "_config.yml"
	PostsDir    = "_posts"
	MediaDir    = "media"
	DocumentExt = ".md"
)

// Listing is the content of the local archive. Skipped holds the documents that
// could not be parsed, so callers never under-report silently.
type Listing struct {
	Posts   []*domain.Post
	Skipped []*domain.ParseError
}

//go:generate go run go.uber.org/mock/mockgen -source=archive.go -destination=mocks/mock.go
type Archive interface {
	// Root is the absolute archive root; media local paths are relative to it.
	Root() string

	// CheckStructure fails with *domain.StructuralError when _config.yml or _posts/ is missing
	// and creates media/ when absent.
	CheckStructure() error

	// ListArchivedPosts rehydrates every archive document into a Post.
	ListArchivedPosts(ctx context.Context) (*Listing, error)

	// PostMediaDir creates (if needed) and returns the absolute media directory of a post.
	PostMediaDir(post *domain.Post) (string, error)

	// SavePost writes the write-once document of an archived post and returns its path.
	// Collisions are *domain.PersistenceCollision, I/O failures *domain.PersistenceFailure;
	// anything else is unexpected.
	SavePost(post *domain.Post) (string, error)
}

// DocumentName is the file name of the document of p: {YYYY-MM-DD}-{code}.md.
func DocumentName(p *domain.Post) string {
	return p.Date.Format("2006-01-02") + "-" + p.Code + DocumentExt
}

// MediaRelDir is the media directory of p relative to the archive root, slash separated.
func MediaRelDir(p *domain.Post) string {
	return filepath.ToSlash(filepath.Join(MediaDir, p.Code))
}
