package domain

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Extension is the file extension used for downloaded assets of this type.
func (t MediaType) Extension() string {
	if t == MediaTypeVideo {
		return "mp4"
	}
	return "jpg"
}

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// PostMedia is one downloadable asset of a post.
type PostMedia struct {
	ID        int64
	Type      MediaType
	RemoteURL string // set when sourced remotely
	LocalPath string // relative to the archive root, set once downloaded
}

func NewRemoteMedia(id int64, typ MediaType, url string) *PostMedia {
	return &PostMedia{ID: id, Type: typ, RemoteURL: url}
}

func NewLocalMedia(id int64, typ MediaType, localPath string) *PostMedia {
	return &PostMedia{ID: id, Type: typ, LocalPath: localPath}
}

func (m *PostMedia) Clone() *PostMedia {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// FileName is the on-disk name of the asset inside its post directory.
func (m *PostMedia) FileName() string {
	return strconv.FormatInt(m.ID, 10) + "." + m.Type.Extension()
}

// IsDownloaded reports the download state of the asset relative to root.
// A local path pointing at a missing file is an *IntegrityFault, never "not downloaded".
func (m *PostMedia) IsDownloaded(root string) (bool, error) {
	if m.LocalPath == "" {
		return false, nil
	}

	abs := filepath.Join(root, filepath.FromSlash(m.LocalPath))
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, &IntegrityFault{MediaID: m.ID, Path: m.LocalPath}
		}
		return false, err
	}
	if info.IsDir() {
		return false, &IntegrityFault{MediaID: m.ID, Path: m.LocalPath}
	}
	return true, nil
}
