package manifest

import "fmt"

// FileAccessError is returned when a manifest file cannot be opened or read.
// It aborts the whole run.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// DocumentParseError records a document chunk that could not be parsed.
// It is never returned to callers; the chunk becomes a null document.
type DocumentParseError struct {
	FileName string
	Index    int
	Err      error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("failed to parse document %d in file %s: %v", e.Index+1, e.FileName, e.Err)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Err
}
