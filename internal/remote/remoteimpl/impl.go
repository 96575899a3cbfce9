package remoteimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/internal/instagram"
	"github.com/orgball2608/insta-archiver/internal/remote"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Instagram instagram.Client
}

type SourceImpl struct {
	accountID int64
	handle    string
	instagram instagram.Client
	logger    logger.Logger

	mu        sync.Mutex
	loggedIn  bool
	cache     []*domain.Post
	hasCached bool
}

func New(opts Opts) *SourceImpl {
	handle := opts.Config.Instagram.AccountHandle
	if handle == "" {
		handle = opts.Config.Instagram.User
	}
	return &SourceImpl{
		accountID: opts.Config.Instagram.AccountID,
		handle:    handle,
		instagram: opts.Instagram,
		logger:    opts.Logger.WithComponent("RemoteSource"),
	}
}

var _ remote.Source = (*SourceImpl)(nil)

func (s *SourceImpl) ListRemotePosts(ctx context.Context) ([]*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		if err := s.instagram.Login(ctx); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		s.loggedIn = true
	}

	if s.accountID == 0 {
		id, err := s.instagram.ResolveAccountID(ctx, s.handle)
		if err != nil {
			return nil, fmt.Errorf("resolve account %s: %w", s.handle, err)
		}
		s.accountID = id
		s.logger.Info("Resolved account id", "handle", s.handle, "account_id", id)
	}

	items, err := s.instagram.ListItems(ctx, s.accountID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	posts := make([]*domain.Post, 0, len(items))
	for i := range items {
		posts = append(posts, ToPost(&items[i], s.handle))
	}

	s.cache = clonePosts(posts)
	s.hasCached = true

	s.logger.Info("Remote posts listed", "count", len(posts))
	return posts, nil
}

func (s *SourceImpl) CachedRemotePosts() ([]*domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCached {
		return nil, false
	}
	return clonePosts(s.cache), true
}

// clonePosts keeps the cached listing independent of callers that archive the returned posts.
func clonePosts(posts []*domain.Post) []*domain.Post {
	out := make([]*domain.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}
