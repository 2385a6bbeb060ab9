package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/roster/internal/roster"
	"github.com/google/go-cmp/cmp"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:        "empty file",
			err:         roster.ErrEmptyFile,
			wantCode:    "ROS001",
			wantMessage: "The uploaded file is empty",
		},
		{
			name:        "wrapped header not found",
			err:         fmt.Errorf("reconcile roster.csv: %w", roster.ErrHeaderNotFound),
			wantCode:    "ROS002",
			wantMessage: "No header row found in the first 5 lines",
		},
		{
			name:        "missing columns",
			err:         &roster.MissingColumnsError{Missing: []roster.Field{roster.FieldFirstName, roster.FieldBirthday}},
			wantCode:    "ROS003",
			wantMessage: "Required columns are missing: Prénom, Date de naissance",
		},
		{
			name:        "missing birthday",
			err:         &roster.MissingBirthdayError{RowNumbers: []int{3, 8}},
			wantCode:    "ROS004",
			wantMessage: "Birthday is missing on line(s) 3, 8",
		},
		{
			name:        "busy",
			err:         ErrTooManyImports,
			wantCode:    "IMP001",
			wantMessage: "Too many imports in progress",
		},
		{
			name:        "file too large",
			err:         errors.New("file too large: 3MB exceeds limit"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum size limit",
		},
		{
			name:        "directory query failure",
			err:         errors.New("load snapshot: query members: connection reset"),
			wantCode:    "DIR001",
			wantMessage: "Member directory is unavailable",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("something odd"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapError_Details(t *testing.T) {
	got := MapError(&roster.MissingBirthdayError{RowNumbers: []int{4}})
	want := map[string]any{"rows": []int{4}}
	if diff := cmp.Diff(want, got.Details); diff != "" {
		t.Errorf("Details mismatch (-want +got):\n%s", diff)
	}

	got = MapError(&roster.MissingColumnsError{Missing: []roster.Field{roster.FieldBirthday}})
	want = map[string]any{"missing": []string{"birthday"}}
	if diff := cmp.Diff(want, got.Details); diff != "" {
		t.Errorf("Details mismatch (-want +got):\n%s", diff)
	}
}
