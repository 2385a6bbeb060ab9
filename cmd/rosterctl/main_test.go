package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const membersYAML = `members:
  - id: 7
    first_name: Alice
    last_name: Martin
    birthday: 2010-04-12
  - id: 9
    first_name: Bob
    last_name: Durand
    email: bob@example.com
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReconcile_Table(t *testing.T) {
	members := writeTemp(t, "members.yaml", membersYAML)
	rosterFile := writeTemp(t, "roster.csv",
		"Prénom;Nom;Adresse e-mail;Date de naissance\n"+
			"Alice;Martin;;12/04/2010\n"+
			"Robert;Bobby;BOB@example.com;1/1/2011\n"+
			"Tom;Petit;;3/3/12\n"+
			";;;1/1/2000\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"reconcile", "--members", members, rosterFile}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want 0; stderr = %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"member    #7",
		"member    #9",
		"new       Tom Petit, 2012-03-03",
		"rejected  missing name",
		"4 rows: 2 members, 1 new, 1 rejected (roster.csv, utf-8)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReconcile_JSON(t *testing.T) {
	members := writeTemp(t, "members.yaml", membersYAML)
	rosterFile := writeTemp(t, "roster.csv", "Prénom,Nom,Date de naissance\nAlice,Martin,12/04/2010\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"reconcile", "--json", "--members", members, rosterFile}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code = %d, want 0; stderr = %s", code, stderr.String())
	}

	var res struct {
		Members int `json:"members"`
		Summary struct {
			MatchedMemberIDs []int64 `json:"matchedMemberIds"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if res.Members != 2 || len(res.Summary.MatchedMemberIDs) != 1 || res.Summary.MatchedMemberIDs[0] != 7 {
		t.Errorf("result = %+v, want member 7 matched out of 2", res)
	}
}

func TestReconcile_RejectedRoster(t *testing.T) {
	members := writeTemp(t, "members.yaml", membersYAML)
	rosterFile := writeTemp(t, "roster.csv", "Prénom,Nom,Date de naissance\nAlice,Martin,\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"reconcile", "--members", members, rosterFile}, &stdout, &stderr)
	if code != exitRejected {
		t.Fatalf("exit code = %d, want %d", code, exitRejected)
	}
	if !strings.Contains(stderr.String(), "ROS004") {
		t.Errorf("stderr = %q, want ROS004", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}
}

func TestReconcile_UsageErrors(t *testing.T) {
	members := writeTemp(t, "members.yaml", membersYAML)

	tests := []struct {
		name string
		args []string
	}{
		{"missing members flag", []string{"reconcile", "roster.csv"}},
		{"missing roster", []string{"reconcile", "--members", members}},
		{"unreadable roster", []string{"reconcile", "--members", members, filepath.Join(t.TempDir(), "nope.csv")}},
		{"bad snapshot", []string{"reconcile", "--members", filepath.Join(t.TempDir(), "nope.yaml"), "roster.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != exitFailure {
				t.Errorf("exit code = %d, want %d", code, exitFailure)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"normalize-date", "3/3/12", "31.12.1999", "soon"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}

	want := "3/3/12\t2012-03-03\n31.12.1999\t1999-12-31\nsoon\tsoon\n"
	if got := stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
