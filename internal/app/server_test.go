package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	mock_archiver "github.com/orgball2608/insta-archiver/internal/archiver/mocks"
	"github.com/orgball2608/insta-archiver/internal/domain"
	mock_remote "github.com/orgball2608/insta-archiver/internal/remote/mocks"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestServerHealthz(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := NewServer(&config.Config{}, logger.NewNop(), mock_archiver.NewMockClient(ctrl), mock_remote.NewMockSource(ctrl))

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServerStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	arch := mock_archiver.NewMockClient(ctrl)
	srv := NewServer(&config.Config{}, logger.NewNop(), arch, mock_remote.NewMockSource(ctrl))

	arch.EXPECT().LastRun(gomock.Any()).Return(nil, errors.ErrNotFound)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	arch.EXPECT().LastRun(gomock.Any()).Return(&domain.RunSummary{ID: 3, Archived: 2}, nil)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.RunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, 2, got.Archived)
}

func TestServerRemoteListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock_remote.NewMockSource(ctrl)
	srv := NewServer(&config.Config{}, logger.NewNop(), mock_archiver.NewMockClient(ctrl), src)

	src.EXPECT().CachedRemotePosts().Return(nil, false)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/remote", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	album := &domain.Post{
		ID:    5,
		Code:  "ALB",
		Title: "Album by tester",
		Media: []*domain.PostMedia{
			domain.NewRemoteMedia(51, domain.MediaTypeImage, "https://cdn/51.jpg"),
			domain.NewRemoteMedia(52, domain.MediaTypeVideo, "https://cdn/52.mp4"),
		},
	}
	src.EXPECT().CachedRemotePosts().Return([]*domain.Post{album}, true)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/remote", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []remotePost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, "ALB", got[0].Code)
	assert.Equal(t, 2, got[0].MediaCount)
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"run", "verify", "schedule"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}

	_, err := ParseMode("serve")
	assert.Error(t, err)
}
