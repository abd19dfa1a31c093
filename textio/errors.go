package textio

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedLine is the kind of every *LineError.
	ErrMalformedLine = errors.New("malformed line")
	// ErrFileNotFound is the kind of a *FileError for a missing path.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnreadableFile is the kind of a *FileError for any other open, read
	// or close failure.
	ErrUnreadableFile = errors.New("unreadable file")
)

// LineError reports a data line whose columns don't fit the grammar of its
// format.  Line is 1-based and counts every physical line, comments included.
type LineError struct {
	Path   string
	Line   int
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %s", e.Path, e.Line, ErrMalformedLine, e.Reason)
}

// Unwrap lets errors.Is(err, ErrMalformedLine) match.
func (e *LineError) Unwrap() error { return ErrMalformedLine }

// FileError reports an I/O failure on Path.  Kind is ErrFileNotFound or
// ErrUnreadableFile; Err is the underlying error.
type FileError struct {
	Path string
	Op   string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Is matches the error kind.
func (e *FileError) Is(target error) bool { return target == e.Kind }

// Unwrap returns the underlying I/O error.
func (e *FileError) Unwrap() error { return e.Err }
