package roster

import "testing"

func TestMatcher_Match(t *testing.T) {
	snapshot := []MemberRecord{
		{ID: 1, FirstName: "Alice", LastName: "Martin", Birthday: "2010-04-12", Email: "a@x.com"},
		{ID: 2, FirstName: "Hugo", LastName: "Blanc", Email: "hugo@x.com"},
		{ID: 3, FirstName: "Inès", LastName: "Roux", Birthday: "2012-06-01"},
	}

	tests := []struct {
		name string
		row  NormalizedRow
		want MatchOutcome
	}{
		{
			name: "name and birthday",
			row:  NormalizedRow{RowNumber: 2, FirstName: "ALICE", LastName: "martin", Birthday: "2010-04-12"},
			want: ExistingMember{RowNumber: 2, MemberID: 1},
		},
		{
			name: "member without birthday only matches by email",
			row:  NormalizedRow{RowNumber: 3, FirstName: "Hugo", LastName: "Blanc", Birthday: "2011-01-01", Email: "HUGO@x.com"},
			want: ExistingMember{RowNumber: 3, MemberID: 2},
		},
		{
			name: "birthday mismatch without email is new",
			row:  NormalizedRow{RowNumber: 4, FirstName: "Inès", LastName: "Roux", Birthday: "2012-06-02"},
			want: NewCandidate{RowNumber: 4, FirstName: "Inès", LastName: "Roux", Birthday: "2012-06-02", TempID: "tmp-1"},
		},
		{
			name: "missing last name",
			row:  NormalizedRow{RowNumber: 5, FirstName: "Inès", Birthday: "2012-06-01"},
			want: Invalid{RowNumber: 5, Reason: ReasonMissingName},
		},
	}

	m := NewMatcher(snapshot, sequentialIDs())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.row); got != tt.want {
				t.Errorf("Match() = %#v, want %#v", got, tt.want)
			}
		})
	}

	if got := m.Unclaimed(); got != 1 {
		t.Errorf("Unclaimed() = %d, want 1", got)
	}
}

func TestMatcher_EmailDoesNotMatchEmptyMemberEmail(t *testing.T) {
	m := NewMatcher([]MemberRecord{{ID: 1, FirstName: "A", LastName: "B"}}, sequentialIDs())

	got := m.Match(NormalizedRow{RowNumber: 2, FirstName: "C", LastName: "D", Birthday: "2000-01-01"})
	if _, ok := got.(NewCandidate); !ok {
		t.Errorf("Match() = %#v, want NewCandidate", got)
	}
}

func TestParseRows(t *testing.T) {
	lines := []string{
		"title",
		"Prénom;Nom;Date de naissance",
		` "Alice" ; Martin ;"12/04/2010"`,
		"",
		"   ",
		`"Bob";"Du;rand"`,
		`"";x`,
	}
	h := Header{Line: 1, Delimiter: ";"}

	rows := ParseRows(lines, h)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	tests := []struct {
		idx       int
		wantLine  int
		wantCells []string
	}{
		{idx: 0, wantLine: 3, wantCells: []string{"Alice", "Martin", "12/04/2010"}},
		{idx: 1, wantLine: 6, wantCells: []string{"Bob", `"Du`, `rand"`}},
		{idx: 2, wantLine: 7, wantCells: []string{"", "x"}},
	}
	for _, tt := range tests {
		row := rows[tt.idx]
		if row.Line != tt.wantLine {
			t.Errorf("rows[%d].Line = %d, want %d", tt.idx, row.Line, tt.wantLine)
		}
		if len(row.Cells) != len(tt.wantCells) {
			t.Errorf("rows[%d].Cells = %q, want %q", tt.idx, row.Cells, tt.wantCells)
			continue
		}
		for i := range row.Cells {
			if row.Cells[i] != tt.wantCells[i] {
				t.Errorf("rows[%d].Cells[%d] = %q, want %q", tt.idx, i, row.Cells[i], tt.wantCells[i])
			}
		}
	}

	if got := rows[1].Cell(5); got != "" {
		t.Errorf("Cell(5) on short row = %q, want empty", got)
	}
}
