package archiveimpl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/orgball2608/insta-archiver/internal/archive"
	"github.com/orgball2608/insta-archiver/internal/document"
	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Store  document.Store
}

type ArchiveImpl struct {
	root      string
	store     document.Store
	logger    logger.Logger
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

func New(opts Opts) (*ArchiveImpl, error) {
	root, err := filepath.Abs(opts.Config.Archive.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve archive root: %w", err)
	}

	a := &ArchiveImpl{
		root:     root,
		store:    opts.Store,
		logger:   opts.Logger.WithComponent("Archive"),
		validate: validator.New(),
	}
	if opts.Config.Archive.SanitizeCaption {
		a.sanitizer = bluemonday.StrictPolicy()
	}
	return a, nil
}

var _ archive.Archive = (*ArchiveImpl)(nil)

func (a *ArchiveImpl) Root() string {
	return a.root
}

func (a *ArchiveImpl) postsPath() string {
	return filepath.Join(a.root, archive.PostsDir)
}

func (a *ArchiveImpl) mediaPath() string {
	return filepath.Join(a.root, archive.MediaDir)
}

func (a *ArchiveImpl) CheckStructure() error {
	for _, required := range []string{archive.ConfigFile, archive.PostsDir} {
		if _, err := os.Stat(filepath.Join(a.root, required)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &domain.StructuralError{Path: required}
			}
			return fmt.Errorf("stat %s: %w", required, err)
		}
	}

	if err := os.MkdirAll(a.mediaPath(), 0o755); err != nil {
		return fmt.Errorf("create media directory: %w", err)
	}
	return nil
}
