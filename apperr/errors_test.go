package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"fetch", &FetchError{Page: 2, Err: errors.New("timeout")}, ExitFetch},
		{"wrapped fetch", fmt.Errorf("crawl: %w", &FetchError{Page: 0, Err: errors.New("x")}), ExitFetch},
		{"empty", &EmptyResultError{Pages: 1}, ExitEmpty},
		{"schema", &SchemaError{Path: "a.csv", Column: "style_4"}, ExitSchema},
		{"file", &FileError{Op: "open", Path: "a.csv", Err: os.ErrNotExist}, ExitFile},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode = %d; want %d", tt.name, got, tt.want)
		}
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("reshape: %w", &FileError{Op: "open", Path: "x.csv", Err: os.ErrNotExist})
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("FileError should unwrap to the underlying os error")
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	got := (&SchemaError{Path: "rental_info.csv", Column: "style_4"}).Error()
	want := `schema: rental_info.csv: missing column "style_4"`
	if got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}

	got = (&SchemaError{Path: "rental_info.csv", Row: 3, Reason: "wrong number of fields"}).Error()
	want = "schema: rental_info.csv: row 3: wrong number of fields"
	if got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
