package archiverimpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/orgball2608/insta-archiver/internal/archive"
	"github.com/orgball2608/insta-archiver/internal/archive/archiveimpl"
	"github.com/orgball2608/insta-archiver/internal/document/documentimpl"
	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/internal/media/mediaimpl"
	mock_remote "github.com/orgball2608/insta-archiver/internal/remote/mocks"
	"github.com/orgball2608/insta-archiver/internal/repositories/run"
	"github.com/orgball2608/insta-archiver/internal/telegram"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

// mediaServer serves /m/<name> and counts requests per name.
type mediaServer struct {
	*httptest.Server

	mu      sync.Mutex
	hits    map[string]int
	failing map[string]bool
}

func newMediaServer(t *testing.T) *mediaServer {
	t.Helper()
	s := &mediaServer{hits: map[string]int{}, failing: map[string]bool{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/m/")

		s.mu.Lock()
		s.hits[name]++
		fail := s.failing[name]
		s.mu.Unlock()

		if fail {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("content of " + name))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *mediaServer) url(name string) string {
	return s.URL + "/m/" + name
}

func (s *mediaServer) setFailing(name string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[name] = fail
}

func (s *mediaServer) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[name]
}

func (s *mediaServer) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.hits {
		n += c
	}
	return n
}

func imagePost(s *mediaServer, id int64, code string) *domain.Post {
	name := fmt.Sprintf("%d.jpg", id)
	return &domain.Post{
		ID:        id,
		Title:     "Image by tester",
		Date:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Permalink: "/p/" + code + "/",
		Caption:   "caption of " + code,
		Code:      code,
		Thumbnail: domain.NewRemoteMedia(id, domain.MediaTypeImage, s.url(name)),
		Media:     []*domain.PostMedia{domain.NewRemoteMedia(id, domain.MediaTypeImage, s.url(name))},
	}
}

func videoPost(s *mediaServer, id int64, code string) *domain.Post {
	return &domain.Post{
		ID:        id,
		Title:     "Video by tester",
		Date:      time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		Permalink: "/p/" + code + "/",
		Caption:   "line one\nline two",
		Code:      code,
		Thumbnail: domain.NewRemoteMedia(id, domain.MediaTypeImage, s.url(fmt.Sprintf("%d.jpg", id))),
		Media:     []*domain.PostMedia{domain.NewRemoteMedia(id, domain.MediaTypeVideo, s.url(fmt.Sprintf("%d.mp4", id)))},
	}
}

func albumPost(s *mediaServer, id int64, code string, children ...int64) *domain.Post {
	p := &domain.Post{
		ID:        id,
		Title:     "Album by tester",
		Date:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Permalink: "/p/" + code + "/",
		Code:      code,
		Thumbnail: domain.NewRemoteMedia(id, domain.MediaTypeImage, s.url(fmt.Sprintf("%d.jpg", id))),
	}
	for _, c := range children {
		p.Media = append(p.Media, domain.NewRemoteMedia(c, domain.MediaTypeImage, s.url(fmt.Sprintf("%d.jpg", c))))
	}
	return p
}

type harness struct {
	root     string
	server   *mediaServer
	archive  *archiveimpl.ArchiveImpl
	archiver *ArchiverImpl

	mu     sync.Mutex
	remote func() []*domain.Post
	last   []*domain.Post
}

// newHarness wires the pipeline against a temporary archive and a local media server.
// The remote source builds a fresh post graph on every call, like the real source.
func newHarness(t *testing.T) *harness {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, archive.ConfigFile), []byte("title: test\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, archive.PostsDir), 0o755))

	cfg := &config.Config{}
	cfg.Archive.Root = root
	cfg.Download.Timeout = 5 * time.Second

	log := logger.NewNop()
	arch, err := archiveimpl.New(archiveimpl.Opts{Config: cfg, Logger: log, Store: documentimpl.New(log)})
	require.NoError(t, err)
	fetcher, err := mediaimpl.New(mediaimpl.Opts{Config: cfg, Logger: log})
	require.NoError(t, err)

	h := &harness{root: root, server: newMediaServer(t), archive: arch}

	src := mock_remote.NewMockSource(gomock.NewController(t))
	src.EXPECT().ListRemotePosts(gomock.Any()).DoAndReturn(func(context.Context) ([]*domain.Post, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.last = h.remote()
		return h.last, nil
	}).AnyTimes()

	h.archiver = New(Opts{
		Config:   cfg,
		Logger:   log,
		Remote:   src,
		Archive:  arch,
		Fetcher:  fetcher,
		Runs:     run.Nop{},
		Telegram: telegram.Nop{},
	})
	h.archiver.now = func() time.Time { return fixedNow }
	return h
}

func (h *harness) setRemote(build func(s *mediaServer) []*domain.Post) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remote = func() []*domain.Post { return build(h.server) }
}

func (h *harness) lastRemote(id int64) *domain.Post {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.last {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (h *harness) documentPath(date, code string) string {
	return filepath.Join(h.root, archive.PostsDir, date+"-"+code+archive.DocumentExt)
}

func TestRunArchivesAllNewPosts(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA"), videoPost(s, 2, "BBB"), albumPost(s, 5, "ALB", 51, 52)}
	})

	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Discovered)
	assert.Equal(t, 0, summary.AlreadyArchived)
	assert.Equal(t, 3, summary.ToArchive)
	assert.Equal(t, 3, summary.Archived)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, fixedNow, summary.StartedAt)

	assert.FileExists(t, h.documentPath("2024-01-01", "AAA"))
	assert.FileExists(t, h.documentPath("2024-02-01", "BBB"))
	assert.FileExists(t, h.documentPath("2024-03-01", "ALB"))
	assert.FileExists(t, filepath.Join(h.root, "media", "BBB", "2.mp4"))
	assert.FileExists(t, filepath.Join(h.root, "media", "BBB", "2.jpg"))
	assert.FileExists(t, filepath.Join(h.root, "media", "ALB", "52.jpg"))

	listing, err := h.archive.ListArchivedPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, listing.Posts, 3)

	var album *domain.Post
	for _, p := range listing.Posts {
		if p.ID == 5 {
			album = p
		}
	}
	require.NotNil(t, album)
	require.Len(t, album.Media, 2)
	assert.Equal(t, "media/ALB/51.jpg", album.Media[0].LocalPath)
	assert.Equal(t, "media/ALB/5.jpg", album.Thumbnail.LocalPath)
	require.NotNil(t, album.ArchiveDate)
	assert.Equal(t, "2024-06-01", album.ArchiveDate.Format(time.DateOnly))
}

func TestRunIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA"), videoPost(s, 2, "BBB")}
	})

	_, err := h.archiver.Run(context.Background())
	require.NoError(t, err)
	fetched := h.server.total()

	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.AlreadyArchived)
	assert.Equal(t, 0, summary.ToArchive)
	assert.Equal(t, 0, summary.Archived)
	assert.Equal(t, fetched, h.server.total(), "second run must not fetch anything")
}

func TestRunThreeRemoteOneLocal(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA")}
	})
	_, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA"), imagePost(s, 3, "CCC"), imagePost(s, 4, "DDD")}
	})
	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Discovered)
	assert.Equal(t, 1, summary.AlreadyArchived)
	assert.Equal(t, 2, summary.ToArchive)
	assert.Equal(t, 2, summary.Archived)
	assert.Equal(t, 1, h.server.count("1.jpg"), "post 1 is not fetched again")
	assert.Equal(t, 1, h.server.count("3.jpg"), "thumbnail adopts the file of the identical media")
}

func TestRunDeduplicatesByIdentityOnly(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA")}
	})
	_, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	// same id, every other field changed
	h.setRemote(func(s *mediaServer) []*domain.Post {
		p := imagePost(s, 1, "ZZZ")
		p.Title = "Renamed"
		p.Caption = "edited"
		return []*domain.Post{p}
	})
	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.ToArchive)
	assert.NoFileExists(t, h.documentPath("2024-01-01", "ZZZ"))
	assert.NoDirExists(t, filepath.Join(h.root, "media", "ZZZ"))
}

func TestRunPartialFailureResumes(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA"), albumPost(s, 5, "ALB", 51, 52)}
	})
	h.server.setFailing("52.jpg", true)

	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Archived)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, int64(5), summary.Failures[0].PostID)
	assert.Equal(t, errors.CodeDownload, summary.Failures[0].Code)

	assert.FileExists(t, filepath.Join(h.root, "media", "ALB", "51.jpg"), "sibling downloaded before the failure stays")
	assert.NoFileExists(t, filepath.Join(h.root, "media", "ALB", "52.jpg"))
	assert.NoFileExists(t, h.documentPath("2024-03-01", "ALB"))
	assert.Equal(t, 0, h.server.count("5.jpg"), "thumbnail is not attempted after a media failure")

	failed := h.lastRemote(5)
	require.NotNil(t, failed)
	assert.False(t, failed.IsArchived())

	h.server.setFailing("52.jpg", false)
	summary, err = h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ToArchive)
	assert.Equal(t, 1, summary.Archived)
	assert.Equal(t, 1, h.server.count("51.jpg"), "already downloaded sibling is not fetched again")
	assert.Equal(t, 2, h.server.count("52.jpg"))
	assert.Equal(t, 1, h.server.count("5.jpg"))
	assert.FileExists(t, h.documentPath("2024-03-01", "ALB"))
}

func TestRunNeverOverwritesDocuments(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA"), imagePost(s, 3, "CCC")}
	})

	// an unreadable document occupies the target path of post 1
	occupied := h.documentPath("2024-01-01", "AAA")
	require.NoError(t, os.WriteFile(occupied, []byte("hand written notes"), 0o644))

	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SkippedDocuments)
	assert.Equal(t, 1, summary.Archived)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, errors.CodePersistenceCollision, summary.Failures[0].Code)

	content, err := os.ReadFile(occupied)
	require.NoError(t, err)
	assert.Equal(t, "hand written notes", string(content))

	collided := h.lastRemote(1)
	require.NotNil(t, collided)
	assert.Nil(t, collided.ArchiveDate, "archive date is reverted after a collision")
	assert.True(t, h.lastRemote(3).IsArchived())
}

func TestRunMissingStructure(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA")}
	})
	require.NoError(t, os.Remove(filepath.Join(h.root, archive.ConfigFile)))

	_, err := h.archiver.Run(context.Background())

	var structural *domain.StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, errors.CodeMissingArchiveStructure, errors.GetCode(err))
	assert.Equal(t, 0, h.server.total())
}

func TestVerifyReportsMissingMedia(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA"), videoPost(s, 2, "BBB")}
	})
	_, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	report, err := h.archiver.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Checked)

	require.NoError(t, os.Remove(filepath.Join(h.root, "media", "BBB", "2.mp4")))

	report, err = h.archiver.Verify(context.Background())
	require.NoError(t, err)
	assert.False(t, report.OK())
	require.Len(t, report.Faults, 1)
	assert.Equal(t, int64(2), report.Faults[0].PostID)
	assert.Equal(t, errors.CodeIntegrity, report.Faults[0].Code)

	// a missing file is never treated as "not downloaded": the next run does not repair it silently
	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ToArchive)
	assert.NoFileExists(t, filepath.Join(h.root, "media", "BBB", "2.mp4"))
}

func TestRunRefusesOverlappingRuns(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post { return nil })

	h.archiver.running.Lock()
	_, err := h.archiver.Run(context.Background())
	assert.True(t, errors.IsRunInProgress(err))
	_, err = h.archiver.Verify(context.Background())
	assert.True(t, stderrors.Is(err, errors.ErrRunInProgress))
	h.archiver.running.Unlock()

	_, err = h.archiver.Run(context.Background())
	assert.NoError(t, err)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post {
		return []*domain.Post{imagePost(s, 1, "AAA")}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := h.archiver.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, h.server.total())

	require.NotNil(t, summary)
	assert.True(t, summary.Interrupted)
	assert.Equal(t, 1, summary.ToArchive)
	assert.Equal(t, 0, summary.Archived)
}

func TestLastRun(t *testing.T) {
	h := newHarness(t)
	h.setRemote(func(s *mediaServer) []*domain.Post { return []*domain.Post{imagePost(s, 1, "AAA")} })

	_, err := h.archiver.LastRun(context.Background())
	assert.True(t, errors.IsNotFound(err))

	summary, err := h.archiver.Run(context.Background())
	require.NoError(t, err)

	last, err := h.archiver.LastRun(context.Background())
	require.NoError(t, err)
	assert.Same(t, summary, last)
}
