package xcstrings

import (
	"errors"
	"fmt"
)

// Error kinds. Both are fatal to a directory run.
var (
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	ErrFileUnprocessable   = errors.New("file unprocessable")
)

// DirectoryUnreadableError is returned when the scan root cannot be listed.
type DirectoryUnreadableError struct {
	Path string
	Err  error
}

func (e *DirectoryUnreadableError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryUnreadableError) Unwrap() error { return e.Err }

func (e *DirectoryUnreadableError) Is(target error) bool {
	return target == ErrDirectoryUnreadable
}

// FileUnprocessableError is returned when a catalog cannot be read or does
// not have the expected shape.
type FileUnprocessableError struct {
	Path string
	Err  error
}

func (e *FileUnprocessableError) Error() string {
	return fmt.Sprintf("cannot process %s: %v", e.Path, e.Err)
}

func (e *FileUnprocessableError) Unwrap() error { return e.Err }

func (e *FileUnprocessableError) Is(target error) bool {
	return target == ErrFileUnprocessable
}

// PathOf returns the path carried by a core error, or "" for other errors.
func PathOf(err error) string {
	var dirErr *DirectoryUnreadableError
	if errors.As(err, &dirErr) {
		return dirErr.Path
	}
	var fileErr *FileUnprocessableError
	if errors.As(err, &fileErr) {
		return fileErr.Path
	}
	return ""
}
