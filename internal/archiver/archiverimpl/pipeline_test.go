package archiverimpl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/orgball2608/insta-archiver/internal/archive"
	mock_archive "github.com/orgball2608/insta-archiver/internal/archive/mocks"
	"github.com/orgball2608/insta-archiver/internal/document"
	"github.com/orgball2608/insta-archiver/internal/domain"
	mock_media "github.com/orgball2608/insta-archiver/internal/media/mocks"
	mock_remote "github.com/orgball2608/insta-archiver/internal/remote/mocks"
	mock_run "github.com/orgball2608/insta-archiver/internal/repositories/run/mocks"
	mock_telegram "github.com/orgball2608/insta-archiver/internal/telegram/mocks"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	remote   *mock_remote.MockSource
	archive  *mock_archive.MockArchive
	fetcher  *mock_media.MockFetcher
	runs     *mock_run.MockRepository
	telegram *mock_telegram.MockClient
}

func newMockedArchiver(t *testing.T) (*ArchiverImpl, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		remote:   mock_remote.NewMockSource(ctrl),
		archive:  mock_archive.NewMockArchive(ctrl),
		fetcher:  mock_media.NewMockFetcher(ctrl),
		runs:     mock_run.NewMockRepository(ctrl),
		telegram: mock_telegram.NewMockClient(ctrl),
	}

	a := New(Opts{
		Config:   &config.Config{},
		Logger:   logger.NewNop(),
		Remote:   m.remote,
		Archive:  m.archive,
		Fetcher:  m.fetcher,
		Runs:     m.runs,
		Telegram: m.telegram,
	})
	a.now = func() time.Time { return fixedNow }
	return a, m
}

func remotePost(id int64) *domain.Post {
	code := fmt.Sprintf("P%d", id)
	return &domain.Post{
		ID:        id,
		Code:      code,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Thumbnail: domain.NewRemoteMedia(id, domain.MediaTypeImage, "https://cdn/"+code+".jpg"),
		Media:     []*domain.PostMedia{domain.NewRemoteMedia(id, domain.MediaTypeImage, "https://cdn/"+code+".jpg")},
	}
}

func (m mocks) expectReconcile(remote, local []*domain.Post) {
	m.archive.EXPECT().CheckStructure().Return(nil)
	m.remote.EXPECT().ListRemotePosts(gomock.Any()).Return(remote, nil)
	m.archive.EXPECT().ListArchivedPosts(gomock.Any()).Return(&archive.Listing{Posts: local}, nil)
}

func TestRunEncodingErrorAbortsRun(t *testing.T) {
	a, m := newMockedArchiver(t)
	first, second := remotePost(1), remotePost(2)
	m.expectReconcile([]*domain.Post{first, second}, nil)

	m.archive.EXPECT().PostMediaDir(first).Return("/archive/media/P1", nil)
	m.fetcher.EXPECT().EnsureDownloaded(gomock.Any(), gomock.Any(), "/archive/media/P1").Return(nil).Times(2)
	m.archive.EXPECT().SavePost(first).Return("", fmt.Errorf("%w: yaml: cannot marshal", document.ErrEncode))

	_, err := a.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrEncode)
	assert.False(t, first.IsArchived())
	assert.False(t, second.IsArchived())
}

func TestRunPersistenceFailureRevertsPost(t *testing.T) {
	a, m := newMockedArchiver(t)
	post := remotePost(1)
	m.expectReconcile([]*domain.Post{post}, nil)

	m.archive.EXPECT().PostMediaDir(post).Return("/archive/media/P1", nil)
	m.fetcher.EXPECT().EnsureDownloaded(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.archive.EXPECT().SavePost(post).DoAndReturn(func(p *domain.Post) (string, error) {
		assert.True(t, p.IsArchived(), "post is marked archived before persisting")
		return "", &domain.PersistenceFailure{Path: "/archive/_posts/x.md", Err: fmt.Errorf("disk full")}
	})
	m.runs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	m.telegram.EXPECT().SendMessageToDefaultChannel(gomock.Any())

	summary, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, errors.CodePersistence, summary.Failures[0].Code)
	assert.Nil(t, post.ArchiveDate)
}

func TestRunIntegrityFaultIsScopedToPost(t *testing.T) {
	a, m := newMockedArchiver(t)
	broken, healthy := remotePost(1), remotePost(2)
	m.expectReconcile([]*domain.Post{broken, healthy}, nil)

	m.archive.EXPECT().PostMediaDir(broken).Return("/archive/media/P1", nil)
	m.fetcher.EXPECT().EnsureDownloaded(gomock.Any(), broken.Media[0], gomock.Any()).
		Return(&domain.IntegrityFault{MediaID: 1, Path: "/archive/media/P1/1.jpg"})

	m.archive.EXPECT().PostMediaDir(healthy).Return("/archive/media/P2", nil)
	m.fetcher.EXPECT().EnsureDownloaded(gomock.Any(), gomock.Any(), "/archive/media/P2").Return(nil).Times(2)
	m.archive.EXPECT().SavePost(healthy).Return("/archive/_posts/2024-01-01-P2.md", nil)

	m.runs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(7), nil)
	m.telegram.EXPECT().SendMessageToDefaultChannel(gomock.Any())

	summary, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Archived)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, errors.CodeIntegrity, summary.Failures[0].Code)
	assert.Equal(t, int64(1), summary.Failures[0].PostID)
}

func TestRunSkipsPostsAlreadyArchived(t *testing.T) {
	a, m := newMockedArchiver(t)
	post := remotePost(1)
	archivedAt := fixedNow
	post.ArchiveDate = &archivedAt
	m.expectReconcile([]*domain.Post{post}, nil)
	m.runs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	summary, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.ToArchive)
	assert.Equal(t, 0, summary.Archived)
	assert.Equal(t, 0, summary.Failed)
}

func TestRunRemoteFailureIsFatal(t *testing.T) {
	a, m := newMockedArchiver(t)
	m.archive.EXPECT().CheckStructure().Return(nil)
	m.remote.EXPECT().ListRemotePosts(gomock.Any()).Return(nil, fmt.Errorf("login: challenge required"))

	summary, err := a.Run(context.Background())

	assert.Nil(t, summary)
	assert.ErrorContains(t, err, "challenge required")
	assert.Equal(t, errors.CodeRemote, errors.GetCode(err))
}

func TestRunCancelledMidRunRecordsPartialSummary(t *testing.T) {
	a, m := newMockedArchiver(t)
	first, second, third := remotePost(1), remotePost(2), remotePost(3)
	m.expectReconcile([]*domain.Post{first, second, third}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.archive.EXPECT().PostMediaDir(first).Return("/archive/media/P1", nil)
	m.fetcher.EXPECT().EnsureDownloaded(gomock.Any(), gomock.Any(), "/archive/media/P1").Return(nil).Times(2)
	m.archive.EXPECT().SavePost(first).Return("/archive/_posts/2024-01-01-P1.md", nil)

	// The second post's download is cut short by the cancellation.
	m.archive.EXPECT().PostMediaDir(second).Return("/archive/media/P2", nil)
	m.fetcher.EXPECT().EnsureDownloaded(gomock.Any(), gomock.Any(), "/archive/media/P2").
		DoAndReturn(func(_ context.Context, asset *domain.PostMedia, _ string) error {
			cancel()
			return &domain.DownloadFailure{MediaID: asset.ID, Err: context.Canceled}
		})

	m.runs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *domain.RunSummary) (int64, error) {
			require.NoError(t, ctx.Err(), "the ledger write outlives the cancelled run")
			s.ID = 7
			return 7, nil
		})
	m.telegram.EXPECT().SendMessageToDefaultChannel(gomock.Any()).
		Do(func(text string) { assert.Contains(t, text, "interrupted") })

	summary, err := a.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.CodeInterrupted, errors.GetCode(err))

	require.NotNil(t, summary)
	assert.True(t, summary.Interrupted)
	assert.Equal(t, int64(7), summary.ID)
	assert.Equal(t, 3, summary.ToArchive)
	assert.Equal(t, 1, summary.Archived)
	assert.Equal(t, 0, summary.Failed)
	assert.Empty(t, summary.Failures)
	assert.False(t, second.IsArchived())
	assert.False(t, third.IsArchived())

	last, err := a.LastRun(context.Background())
	require.NoError(t, err)
	assert.Same(t, summary, last)
}

func TestRunLedgerFailureDoesNotFailRun(t *testing.T) {
	a, m := newMockedArchiver(t)
	m.expectReconcile(nil, nil)
	m.runs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), fmt.Errorf("ledger closed"))

	summary, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Discovered)
}

func TestLastRunFallsBackToLedger(t *testing.T) {
	a, m := newMockedArchiver(t)
	stored := &domain.RunSummary{ID: 42}
	m.runs.EXPECT().Latest(gomock.Any()).Return(stored, nil)

	last, err := a.LastRun(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), last.ID)
}

func TestFormatSummary(t *testing.T) {
	s := &domain.RunSummary{
		ID:              3,
		StartedAt:       fixedNow,
		FinishedAt:      fixedNow.Add(90 * time.Second),
		Discovered:      1234,
		AlreadyArchived: 1200,
		ToArchive:       34,
		Archived:        33,
		Failed:          1,
		Failures:        []domain.PostFailure{{PostID: 9, Code: errors.CodeDownload, Reason: "status 404"}},
	}

	msg := FormatSummary(s)

	assert.Contains(t, msg, "#3")
	assert.Contains(t, msg, "1m30s")
	assert.Contains(t, msg, "Discovered: 1,234")
	assert.Contains(t, msg, "Already archived: 1,200")
	assert.Contains(t, msg, "Newly archived: 33")
	assert.Contains(t, msg, "9 [download_failure] status 404")
	assert.NotContains(t, msg, "Unreadable")
}

func TestFormatSummaryInterrupted(t *testing.T) {
	msg := FormatSummary(&domain.RunSummary{ID: 4, Archived: 1, Interrupted: true})
	assert.Contains(t, msg, "#4 interrupted")
	assert.Contains(t, msg, "Newly archived: 1")
}

func TestFormatSummaryTruncatesFailures(t *testing.T) {
	s := &domain.RunSummary{Failed: maxReportedFailures + 3}
	for i := 0; i < s.Failed; i++ {
		s.Failures = append(s.Failures, domain.PostFailure{PostID: int64(i), Code: errors.CodeDownload})
	}

	assert.Contains(t, FormatSummary(s), "and 3 more")
}

func TestFormatVerifyReport(t *testing.T) {
	assert.Contains(t, FormatVerifyReport(&domain.VerifyReport{Checked: 2}), "no problems found")

	msg := FormatVerifyReport(&domain.VerifyReport{
		Checked: 2,
		Faults:  []domain.PostFailure{{PostID: 1, Code: errors.CodeIntegrity, Reason: "media 1: gone"}},
	})
	assert.Contains(t, msg, "Missing media: 1")
	assert.Contains(t, msg, "1 [integrity_fault]")
}
