package errors

import (
	"errors"
	"fmt"
)

// Codes attached to archive errors.
const (
	CodeMissingArchiveStructure = "missing_archive_structure"
	CodeParse                   = "parse_error"
	CodeDownload                = "download_failure"
	CodeIntegrity               = "integrity_fault"
	CodePersistenceCollision    = "persistence_collision"
	CodePersistence             = "persistence_failure"
	CodeRemote                  = "remote_failure"
	CodeInterrupted             = "run_interrupted"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrRunInProgress = errors.New("archive run already in progress")
)

// Error is a coded error wrapping an optional cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the first code found in err's chain. Errors that are not
// *Error but expose a Code() method are honoured too.
func GetCode(err error) string {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Code != "" {
				return e.Code
			}
		case interface{ Code() string }:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRunInProgress(err error) bool {
	return errors.Is(err, ErrRunInProgress)
}
