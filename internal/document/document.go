package document

import "errors"

var (
	// ErrExists is returned by Save when the target document already exists.
	ErrExists = errors.New("document already exists")
	// ErrEncode wraps failures to serialise metadata; these are programming errors, not I/O.
	ErrEncode = errors.New("encode document")
	// ErrMalformed wraps documents without a valid front matter block.
	ErrMalformed = errors.New("malformed document")
)

// Store reads and writes structured documents: a YAML front matter block followed by a body.
//
//go:generate go run go.uber.org/mock/mockgen -source=document.go -destination=mocks/mock.go
type Store interface {
	// Load decodes the front matter of path into meta and returns the body.
	Load(path string, meta any) (string, error)

	// Save writes a new document. It never overwrites: an existing path yields ErrExists.
	Save(path string, meta any, body string) error

	// List returns the paths of the documents in dir with the given extension, sorted by name.
	List(dir, ext string) ([]string, error)
}
