package roster

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix prefixes generated identifiers of new candidates.
const TempIDPrefix = "tmp-"

// Reconciler runs reconciliation passes. The zero value is ready to use and
// generates random temporary ids.
type Reconciler struct {
	// NewTempID returns an identifier for a new candidate. It must return
	// distinct values within one pass. Ids never influence matching.
	NewTempID func() string
}

// Reconcile runs one pass with a default Reconciler.
func Reconcile(csvText string, snapshot []MemberRecord) (*ImportSummary, error) {
	var r Reconciler
	return r.Reconcile(csvText, snapshot)
}

// Reconcile locates the header, parses and normalizes every row, enforces
// the birthday completeness rule and matches rows against snapshot in file
// order. A terminal error means no summary was produced. snapshot is not
// modified.
func (r *Reconciler) Reconcile(csvText string, snapshot []MemberRecord) (*ImportSummary, error) {
	if strings.TrimSpace(strings.TrimPrefix(csvText, "\uFEFF")) == "" {
		return nil, ErrEmptyFile
	}

	lines := splitLines(csvText)
	header, err := LocateHeader(lines)
	if err != nil {
		return nil, err
	}

	rows := normalizeRows(ParseRows(lines, header), header.Columns)
	if err := checkBirthdays(rows); err != nil {
		return nil, err
	}

	matcher := NewMatcher(snapshot, r.tempIDFunc())
	summary := &ImportSummary{
		MatchedMemberIDs: []int64{},
		NewCandidates:    []NewCandidate{},
		RejectedRows:     []RejectedRow{},
		Outcomes:         make([]MatchOutcome, 0, len(rows)),
		Header:           header,
	}
	for _, row := range rows {
		outcome := matcher.Match(row)
		summary.Outcomes = append(summary.Outcomes, outcome)

		switch o := outcome.(type) {
		case ExistingMember:
			summary.MatchedMemberIDs = append(summary.MatchedMemberIDs, o.MemberID)
		case NewCandidate:
			summary.NewCandidates = append(summary.NewCandidates, o)
		case Invalid:
			summary.RejectedRows = append(summary.RejectedRows, RejectedRow{
				RowNumber: o.RowNumber,
				Reason:    o.Reason,
			})
		}
	}

	return summary, nil
}

func (r *Reconciler) tempIDFunc() func() string {
	if r.NewTempID != nil {
		return r.NewTempID
	}
	return func() string {
		return TempIDPrefix + uuid.NewString()
	}
}

// normalizeRows extracts the semantic fields of every row.
func normalizeRows(raw []RawRow, cols ColumnMap) []NormalizedRow {
	cell := func(row RawRow, f Field) string {
		i, ok := cols.Index(f)
		if !ok {
			return ""
		}
		return row.Cell(i)
	}

	rows := make([]NormalizedRow, len(raw))
	for i, row := range raw {
		rows[i] = NormalizedRow{
			RowNumber: row.Line,
			FirstName: cell(row, FieldFirstName),
			LastName:  cell(row, FieldLastName),
			Email:     cell(row, FieldEmail),
			Birthday:  NormalizeDate(cell(row, FieldBirthday)),
		}
	}
	return rows
}

// checkBirthdays rejects the import if any named row lacks a birthday.
func checkBirthdays(rows []NormalizedRow) error {
	seen := make(map[int]bool)
	var missing []int
	for _, row := range rows {
		if !row.hasName() || row.Birthday != "" {
			continue
		}
		if !seen[row.RowNumber] {
			seen[row.RowNumber] = true
			missing = append(missing, row.RowNumber)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Ints(missing)
	return &MissingBirthdayError{RowNumbers: missing}
}
