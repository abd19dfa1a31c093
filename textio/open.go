package textio

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// ReadFile opens path, passes its contents to fn, and closes it.  Open and
// close failures are returned as *FileError; an error from fn is returned
// unchanged.
func ReadFile(ctx context.Context, path string, fn func(r io.Reader) error) (err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return classifyOpenError(path, err)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = &FileError{Path: path, Op: "close", Kind: ErrUnreadableFile, Err: cerr}
		}
	}()
	return fn(in.Reader(ctx))
}

func classifyOpenError(path string, err error) error {
	kind := ErrUnreadableFile
	if os.IsNotExist(err) || errors.Is(errors.NotExist, err) {
		kind = ErrFileNotFound
	}
	return &FileError{Path: path, Op: "open", Kind: kind, Err: err}
}
