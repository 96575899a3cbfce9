package archiveimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-archiver/internal/archive"
	"github.com/orgball2608/insta-archiver/internal/domain"
)

// ListArchivedPosts parses every document in _posts/. Documents that fail to parse are
// skipped with a warning and returned in Listing.Skipped.
func (a *ArchiveImpl) ListArchivedPosts(ctx context.Context) (*archive.Listing, error) {
	if err := a.CheckStructure(); err != nil {
		return nil, err
	}

	paths, err := a.store.List(a.postsPath(), archive.DocumentExt)
	if err != nil {
		return nil, err
	}

	listing := &archive.Listing{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		post, err := a.loadPost(path)
		if err != nil {
			parseErr := &domain.ParseError{Path: path, Err: err}
			a.logger.Warn("Skipping unreadable archive document", "path", path, "error", err)
			listing.Skipped = append(listing.Skipped, parseErr)
			continue
		}
		listing.Posts = append(listing.Posts, post)
	}

	a.logger.Info("Archive listed", "posts", len(listing.Posts), "skipped", len(listing.Skipped))
	return listing, nil
}

func (a *ArchiveImpl) loadPost(path string) (*domain.Post, error) {
	var meta archive.Metadata
	body, err := a.store.Load(path, &meta)
	if err != nil {
		return nil, err
	}

	if err := a.validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}

	return meta.ToPost(body)
}
