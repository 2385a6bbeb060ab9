package roster

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ReasonMissingName is the rejection reason for rows without a full name.
const ReasonMissingName = "missing name"

// member is a directory entry reduced to its comparable form.
type member struct {
	id        int64
	firstName string
	lastName  string
	birthday  string
	email     string
}

// Matcher resolves rows against a member snapshot. Members are held in an
// arena indexed like the snapshot; a claimed member is never matched again
// by the same Matcher. A Matcher is not safe for concurrent use.
type Matcher struct {
	members   []member
	claimed   []bool
	newTempID func() string
}

// NewMatcher builds a Matcher over a private copy of snapshot. newTempID
// supplies identifiers for new candidates.
func NewMatcher(snapshot []MemberRecord, newTempID func() string) *Matcher {
	members := make([]member, len(snapshot))
	for i, rec := range snapshot {
		members[i] = member{
			id:        rec.ID,
			firstName: foldName(rec.FirstName),
			lastName:  foldName(rec.LastName),
			birthday:  memberBirthday(rec.Birthday),
			email:     strings.TrimSpace(rec.Email),
		}
	}
	return &Matcher{
		members:   members,
		claimed:   make([]bool, len(members)),
		newTempID: newTempID,
	}
}

// Match resolves one row. Candidates are tried in snapshot order and the
// first structural match wins: name and birthday first, then email.
func (m *Matcher) Match(row NormalizedRow) MatchOutcome {
	if i, ok := m.findByNameAndBirthday(row); ok {
		return m.claim(row, i)
	}
	if i, ok := m.findByEmail(row.Email); ok {
		return m.claim(row, i)
	}
	if !row.hasName() {
		return Invalid{RowNumber: row.RowNumber, Reason: ReasonMissingName}
	}
	return NewCandidate{
		RowNumber: row.RowNumber,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Birthday:  row.Birthday,
		TempID:    m.newTempID(),
	}
}

// Unclaimed returns how many members are still available.
func (m *Matcher) Unclaimed() int {
	n := 0
	for _, c := range m.claimed {
		if !c {
			n++
		}
	}
	return n
}

// claim marks every entry sharing the member's id, so a snapshot listing an
// id twice still yields it at most once.
func (m *Matcher) claim(row NormalizedRow, i int) MatchOutcome {
	id := m.members[i].id
	for j, mem := range m.members {
		if mem.id == id {
			m.claimed[j] = true
		}
	}
	return ExistingMember{RowNumber: row.RowNumber, MemberID: id}
}

func (m *Matcher) findByNameAndBirthday(row NormalizedRow) (int, bool) {
	if !row.hasName() || row.Birthday == "" {
		return 0, false
	}
	first, last := foldName(row.FirstName), foldName(row.LastName)
	for i, mem := range m.members {
		if m.claimed[i] || mem.birthday == "" {
			continue
		}
		if strings.EqualFold(mem.firstName, first) &&
			strings.EqualFold(mem.lastName, last) &&
			mem.birthday == row.Birthday {
			return i, true
		}
	}
	return 0, false
}

func (m *Matcher) findByEmail(email string) (int, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, false
	}
	for i, mem := range m.members {
		if m.claimed[i] {
			continue
		}
		if strings.EqualFold(mem.email, email) {
			return i, true
		}
	}
	return 0, false
}

// foldName puts a name in NFC form so composed and decomposed accents
// compare equal.
func foldName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
