package apperr

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitFetch   = 2
	ExitEmpty   = 3
	ExitFile    = 4
	ExitSchema  = 5
)

// FetchError reports a page that could not be retrieved. It aborts the crawl.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EmptyResultError is returned when a crawl produced no listings at all.
type EmptyResultError struct {
	Pages int
}

func (e *EmptyResultError) Error() string {
	if e.Pages > 0 {
		return fmt.Sprintf("no listings found across %d page(s)", e.Pages)
	}
	return "no listings to write"
}

// SchemaError reports an intermediate table that does not have the expected shape.
type SchemaError struct {
	Path   string
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("schema: %s: missing column %q", e.Path, e.Column)
	case e.Row > 0:
		return fmt.Sprintf("schema: %s: row %d: %s", e.Path, e.Row, e.Reason)
	default:
		return fmt.Sprintf("schema: %s: %s", e.Path, e.Reason)
	}
}

// FileError wraps a failed filesystem operation on one of the output tables.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ExitCode maps an error chain to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		fetchErr  *FetchError
		emptyErr  *EmptyResultError
		schemaErr *SchemaError
		fileErr   *FileError
	)
	switch {
	case errors.As(err, &fetchErr):
		return ExitFetch
	case errors.As(err, &emptyErr):
		return ExitEmpty
	case errors.As(err, &schemaErr):
		return ExitSchema
	case errors.As(err, &fileErr):
		return ExitFile
	default:
		return ExitFailure
	}
}
