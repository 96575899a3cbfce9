package documentimpl

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/orgball2608/insta-archiver/internal/document"
	"github.com/orgball2608/insta-archiver/pkg/logger"
)

type FileStore struct {
	logger logger.Logger
}

func New(log logger.Logger) *FileStore {
	return &FileStore{
		logger: log.WithComponent("DocumentStore"),
	}
}

var _ document.Store = (*FileStore)(nil)

func (s *FileStore) Load(path string, meta any) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, meta)
}

// Save encodes the document in memory first, then creates the file with O_EXCL so the
// existence check and the creation are a single atomic step.
func (s *FileStore) Save(path string, meta any, body string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, meta, body); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, document.ErrExists)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		s.removePartial(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		s.removePartial(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	s.logger.Debug("Document written", "path", path, "bytes", buf.Len())
	return nil
}

func (s *FileStore) List(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *FileStore) removePartial(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("Failed to remove partially written document", "path", path, "error", err)
	}
}
