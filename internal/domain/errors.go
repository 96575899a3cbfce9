package domain

import (
	"fmt"

	"github.com/orgball2608/insta-archiver/pkg/errors"
)

// StructuralError means a required archive path is missing. It aborts the run.
type StructuralError struct {
	Path string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("missing archive structure: %s", e.Path)
}

func (e *StructuralError) Code() string { return errors.CodeMissingArchiveStructure }

// ParseError is scoped to one malformed archive document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Code() string  { return errors.CodeParse }

// DownloadFailure is scoped to one asset (and therefore its post).
type DownloadFailure struct {
	MediaID    int64
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadFailure) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("download media %d: unexpected status %d", e.MediaID, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("download media %d: %v", e.MediaID, e.Err)
	default:
		return fmt.Sprintf("download media %d failed", e.MediaID)
	}
}

func (e *DownloadFailure) Unwrap() error { return e.Err }
func (e *DownloadFailure) Code() string  { return errors.CodeDownload }

// IntegrityFault means an asset claims a local path whose file does not exist.
type IntegrityFault struct {
	MediaID int64
	Path    string
}

func (e *IntegrityFault) Error() string {
	return fmt.Sprintf("media %d: %s not found", e.MediaID, e.Path)
}

func (e *IntegrityFault) Code() string { return errors.CodeIntegrity }

// PersistenceCollision means the target document already exists.
type PersistenceCollision struct {
	Path string
	Err  error
}

func (e *PersistenceCollision) Error() string {
	return fmt.Sprintf("document %s already exists", e.Path)
}

func (e *PersistenceCollision) Unwrap() error { return e.Err }
func (e *PersistenceCollision) Code() string  { return errors.CodePersistenceCollision }

// PersistenceFailure is an I/O failure while writing a document.
type PersistenceFailure struct {
	Path string
	Err  error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("write document %s: %v", e.Path, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }
func (e *PersistenceFailure) Code() string  { return errors.CodePersistence }
