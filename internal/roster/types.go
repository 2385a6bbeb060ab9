// Package roster reconciles an uploaded participant roster (loosely structured
// CSV text) against a snapshot of known organization members.
//
// The package performs no I/O. Callers hand it already-read text and an
// already-fetched member list and get back an ImportSummary or one terminal
// error value.
package roster

// Field is a semantic roster column.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldBirthday  Field = "birthday"
)

// mandatoryFields lists the columns an import cannot proceed without, in
// reporting order.
var mandatoryFields = []Field{FieldFirstName, FieldLastName, FieldBirthday}

// ColumnMap maps a semantic field to its column index in the roster.
type ColumnMap map[Field]int

// Index returns the column index of f and whether the column is present.
func (m ColumnMap) Index(f Field) (int, bool) {
	i, ok := m[f]
	return i, ok
}

// Header describes the detected roster layout.
type Header struct {
	Line      int       `json:"line"`      // 0-based index of the header line
	Delimiter string    `json:"delimiter"` // "," or ";"
	Columns   ColumnMap `json:"columns"`
}

// RawRow holds the cleaned cells of one data line.
type RawRow struct {
	Line  int // 1-based source line number
	Cells []string
}

// Cell returns the cell at index i, or "" if the row is short.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// MemberRecord is one entry of the caller's member directory snapshot.
// An empty Birthday means the member has no known birthday.
type MemberRecord struct {
	ID        int64  `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"first_name"`
	LastName  string `json:"lastName" yaml:"last_name"`
	Birthday  string `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
}

// NormalizedRow is a data row with its birthday run through NormalizeDate.
// Birthday is ISO when parseable, the raw cell otherwise, and "" when empty.
type NormalizedRow struct {
	RowNumber int
	FirstName string
	LastName  string
	Email     string
	Birthday  string
}

func (r NormalizedRow) hasName() bool {
	return r.FirstName != "" && r.LastName != ""
}

// MatchOutcome is the result of resolving one row. It is implemented only by
// ExistingMember, NewCandidate and Invalid.
type MatchOutcome interface {
	Row() int
	matchOutcome()
}

// ExistingMember means the row resolved to a directory member.
type ExistingMember struct {
	RowNumber int   `json:"rowNumber"`
	MemberID  int64 `json:"memberId"`
}

// NewCandidate is a participant with no directory match.
type NewCandidate struct {
	RowNumber int    `json:"rowNumber"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Birthday  string `json:"birthday,omitempty"`
	TempID    string `json:"tempId"`
}

// Invalid is a row that could not be processed.
type Invalid struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

func (o ExistingMember) Row() int { return o.RowNumber }
func (o NewCandidate) Row() int   { return o.RowNumber }
func (o Invalid) Row() int        { return o.RowNumber }

func (ExistingMember) matchOutcome() {}
func (NewCandidate) matchOutcome()   {}
func (Invalid) matchOutcome()        {}

// RejectedRow is a non-terminal per-row failure.
type RejectedRow struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

// ImportSummary is the result of one reconciliation pass.
type ImportSummary struct {
	MatchedMemberIDs []int64        `json:"matchedMemberIds"`
	NewCandidates    []NewCandidate `json:"newCandidates"`
	RejectedRows     []RejectedRow  `json:"rejectedRows"`

	// Outcomes holds every row's outcome in file order.
	Outcomes []MatchOutcome `json:"-"`
	Header   Header         `json:"header"`
}

// RowCount returns the number of data rows that were classified.
func (s *ImportSummary) RowCount() int {
	return len(s.Outcomes)
}
