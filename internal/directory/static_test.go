package directory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/roster/internal/roster"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "members.yaml", `
members:
  - id: 7
    first_name: Alice
    last_name: Martin
    birthday: "2010-04-12"
    email: a@x.com
  - id: 8
    first_name: Hugo
    last_name: Blanc
`)

	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := []roster.MemberRecord{
		{ID: 7, FirstName: "Alice", LastName: "Martin", Birthday: "2010-04-12", Email: "a@x.com"},
		{ID: 8, FirstName: "Hugo", LastName: "Blanc"},
	}
	got, err := src.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "members.json",
		`{"members": [{"id": 1, "first_name": "Zoé", "last_name": "Roux", "birthday": "2011-05-06"}]}`)

	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(src.Members) != 1 || src.Members[0].FirstName != "Zoé" {
		t.Errorf("Members = %v, want one member named Zoé", src.Members)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "members:\n  - id: 1\n    firstname: Alice\n",
			wantErr: "firstname",
		},
		{
			name:    "duplicate id",
			content: "members:\n  - id: 1\n    first_name: A\n  - id: 1\n    first_name: B\n",
			wantErr: "duplicate id 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, "members.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestStatic_SnapshotIsACopy(t *testing.T) {
	src := &Static{Members: []roster.MemberRecord{{ID: 1, FirstName: "A"}}}

	got, _ := src.Snapshot(context.Background(), 1)
	got[0].FirstName = "changed"

	if src.Members[0].FirstName != "A" {
		t.Errorf("Members[0].FirstName = %q, want unchanged", src.Members[0].FirstName)
	}
}
