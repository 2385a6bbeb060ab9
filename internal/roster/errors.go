package roster

// errors.go defines the terminal import errors.
//
// Each of these aborts the whole import: the caller receives one error value
// and no ImportSummary. Per-row problems are not errors; they are reported as
// Invalid outcomes inside the summary.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyFile is returned when the input has no non-blank lines.
var ErrEmptyFile = errors.New("empty file: no lines to import")

// ErrHeaderNotFound is returned when none of the first HeaderScanLines
// non-empty lines matches a header keyword.
var ErrHeaderNotFound = fmt.Errorf("header row not found in the first %d lines", HeaderScanLines)

// MissingColumnsError is returned when a header line was found but lacks one
// or more mandatory columns.
type MissingColumnsError struct {
	Missing []Field
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "missing required columns: " + strings.Join(names, ", ")
}

// MissingBirthdayError is returned when a named row has no birthday cell.
// RowNumbers are 1-based source line numbers, ascending and unique.
type MissingBirthdayError struct {
	RowNumbers []int
}

func (e *MissingBirthdayError) Error() string {
	rows := make([]string, len(e.RowNumbers))
	for i, n := range e.RowNumbers {
		rows[i] = strconv.Itoa(n)
	}
	return "missing birthday on rows: " + strings.Join(rows, ", ")
}

// IsTerminal reports whether err belongs to the terminal import taxonomy.
func IsTerminal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrHeaderNotFound) {
		return true
	}
	var mc *MissingColumnsError
	if errors.As(err, &mc) {
		return true
	}
	var mb *MissingBirthdayError
	return errors.As(err, &mb)
}
