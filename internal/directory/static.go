package directory

import (
	"context"
	"fmt"
	"os"

	"github.com/JonMunkholm/roster/internal/roster"
	"gopkg.in/yaml.v3"
)

// Static is a fixed, in-memory member list. It serves every organization
// the same snapshot.
type Static struct {
	Members []roster.MemberRecord
}

// Snapshot returns a copy of the member list.
func (s *Static) Snapshot(_ context.Context, _ int64) ([]roster.MemberRecord, error) {
	out := make([]roster.MemberRecord, len(s.Members))
	copy(out, s.Members)
	return out, nil
}

// snapshotFile is the on-disk layout read by LoadFile.
type snapshotFile struct {
	Members []roster.MemberRecord `yaml:"members"`
}

// LoadFile reads a member snapshot from a YAML or JSON file of the form
//
//	members:
//	  - id: 7
//	    first_name: Alice
//	    last_name: Martin
//	    birthday: 2010-04-12
//	    email: a@x.com
//
// Unknown fields are rejected.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open member snapshot: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var sf snapshotFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode member snapshot %s: %w", path, err)
	}

	seen := make(map[int64]bool, len(sf.Members))
	for _, m := range sf.Members {
		if seen[m.ID] {
			return nil, fmt.Errorf("member snapshot %s: duplicate id %d", path, m.ID)
		}
		seen[m.ID] = true
	}

	return &Static{Members: sf.Members}, nil
}
