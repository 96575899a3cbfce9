package mediaimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/internal/media"
	"github.com/orgball2608/insta-archiver/internal/ratelimit"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

// chunkSize bounds the memory used while streaming videos.
const chunkSize = 8192

// partialPrefix names in-flight downloads inside a post's media directory.
const partialPrefix = ".download-"

var errNoRemoteURL = errors.New("asset has no remote url")

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Client *http.Client `optional:"true"`
}

type HTTPFetcher struct {
	root    string
	client  *http.Client
	limiter ratelimit.Limiter
	logger  logger.Logger
}

func New(opts Opts) (*HTTPFetcher, error) {
	root, err := filepath.Abs(opts.Config.Archive.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve archive root: %w", err)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Config.Download.Timeout}
	}

	return &HTTPFetcher{
		root:    root,
		client:  client,
		limiter: ratelimit.NewPerSecond(opts.Config.Download.RatePerSecond, 1),
		logger:  opts.Logger.WithComponent("MediaFetcher"),
	}, nil
}

var _ media.Fetcher = (*HTTPFetcher)(nil)

func (f *HTTPFetcher) EnsureDownloaded(ctx context.Context, asset *domain.PostMedia, destDir string) error {
	downloaded, err := asset.IsDownloaded(f.root)
	if err != nil {
		return err
	}
	if downloaded {
		return nil
	}

	dest := filepath.Join(destDir, asset.FileName())
	f.removePartials(destDir, asset.FileName())

	// A complete file left by an earlier, interrupted run is adopted instead of fetched again.
	// Files only ever appear at dest through an atomic rename, so an existing one is complete.
	if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
		f.logger.Debug("Adopting previously downloaded media", "media_id", asset.ID, "path", dest)
		return f.setLocalPath(asset, dest)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.DownloadFailure{MediaID: asset.ID, URL: asset.RemoteURL, Err: err}
	}

	if asset.RemoteURL == "" {
		return &domain.DownloadFailure{MediaID: asset.ID, Err: errNoRemoteURL}
	}

	if err := f.fetch(ctx, asset, dest); err != nil {
		return err
	}

	f.logger.Info("Media downloaded", "media_id", asset.ID, "type", asset.Type, "path", dest)
	return f.setLocalPath(asset, dest)
}

// removePartials deletes temporary files left behind by a process killed mid-download.
func (f *HTTPFetcher) removePartials(destDir, name string) {
	matches, err := filepath.Glob(filepath.Join(destDir, partialPrefix+name+"-*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("Failed to remove partial download", "path", m, "error", err)
			continue
		}
		f.logger.Debug("Removed partial download", "path", m)
	}
}

func (f *HTTPFetcher) setLocalPath(asset *domain.PostMedia, dest string) error {
	rel, err := filepath.Rel(f.root, dest)
	if err != nil {
		return &domain.DownloadFailure{MediaID: asset.ID, URL: asset.RemoteURL, Err: err}
	}
	asset.LocalPath = filepath.ToSlash(rel)
	return nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, asset *domain.PostMedia, dest string) error {
	failure := func(err error) error {
		return &domain.DownloadFailure{MediaID: asset.ID, URL: asset.RemoteURL, Err: err}
	}

	if u, err := url.Parse(asset.RemoteURL); err == nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return failure(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.RemoteURL, nil)
	if err != nil {
		return failure(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.DownloadFailure{MediaID: asset.ID, URL: asset.RemoteURL, StatusCode: resp.StatusCode}
	}

	if asset.Type == domain.MediaTypeVideo {
		err = writeStreamed(dest, resp.Body)
	} else {
		err = writeBuffered(dest, resp.Body)
	}
	if err != nil {
		return failure(err)
	}
	return nil
}

// writeBuffered reads the whole body before touching the filesystem.
func writeBuffered(dest string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	return writeAtomic(dest, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeStreamed copies the body in fixed-size chunks.
func writeStreamed(dest string, body io.Reader) error {
	return writeAtomic(dest, func(w io.Writer) error {
		_, err := copyChunked(w, body)
		return err
	})
}

// copyChunked copies through a chunkSize buffer. Both sides are wrapped so that
// io.ReaderFrom and io.WriterTo cannot bypass the buffer.
func copyChunked(w io.Writer, r io.Reader) (int64, error) {
	return io.CopyBuffer(struct{ io.Writer }{w}, struct{ io.Reader }{r}, make([]byte, chunkSize))
}

// writeAtomic writes into a temporary file next to dest and renames it into place,
// so dest either does not exist or holds a complete download.
func writeAtomic(dest string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), partialPrefix+filepath.Base(dest)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
