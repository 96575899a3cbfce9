package archiveimpl

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/orgball2608/insta-archiver/internal/archive"
	"github.com/orgball2608/insta-archiver/internal/document"
	"github.com/orgball2608/insta-archiver/internal/domain"
)

func (a *ArchiveImpl) PostMediaDir(post *domain.Post) (string, error) {
	dir := filepath.Join(a.root, filepath.FromSlash(archive.MediaRelDir(post)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.PersistenceFailure{Path: dir, Err: err}
	}
	return dir, nil
}

func (a *ArchiveImpl) SavePost(post *domain.Post) (string, error) {
	if !post.IsArchived() {
		return "", fmt.Errorf("post %d has no archive date", post.ID)
	}

	caption := a.sanitizeCaption(post.Caption)

	path := filepath.Join(a.postsPath(), archive.DocumentName(post))
	err := a.store.Save(path, archive.NewMetadata(post), archive.Body(caption))
	switch {
	case err == nil:
		a.logger.Info("Post archived", "id", post.ID, "code", post.Code, "path", path)
		return path, nil
	case errors.Is(err, document.ErrExists):
		return "", &domain.PersistenceCollision{Path: path, Err: err}
	case errors.Is(err, document.ErrEncode):
		return "", err
	default:
		return "", &domain.PersistenceFailure{Path: path, Err: err}
	}
}

// sanitizeCaption strips markup and keeps the remaining text literal.
// The strict policy entity-escapes what it keeps, which would be frozen into a write-once document.
func (a *ArchiveImpl) sanitizeCaption(caption string) string {
	if a.sanitizer == nil {
		return caption
	}
	return html.UnescapeString(a.sanitizer.Sanitize(caption))
}
