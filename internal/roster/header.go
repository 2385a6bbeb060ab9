package roster

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HeaderScanLines is how many non-empty lines are inspected for a header.
const HeaderScanLines = 5

// keywordSet decides whether a lower-cased header cell names a field.
type keywordSet struct {
	field Field
	match func(cell string) bool
}

// headerKeywords are tested against every cell of a candidate line. A field
// maps to the first cell that matches its set.
var headerKeywords = []keywordSet{
	{field: FieldEmail, match: func(c string) bool {
		return containsAny(c, "email", "e-mail", "adresse e-mail")
	}},
	{field: FieldFirstName, match: func(c string) bool {
		return containsAny(c, "prénom", "prenom", "first", "firstname")
	}},
	{field: FieldLastName, match: func(c string) bool {
		if strings.Contains(c, "nom") && !containsAny(c, "prénom", "prenom") {
			return true
		}
		if containsAny(c, "last", "lastname") {
			return true
		}
		return strings.Contains(c, "name") && !strings.Contains(c, "first")
	}},
	{field: FieldBirthday, match: func(c string) bool {
		return containsAny(c, "naissance", "birthday", "birth", "date")
	}},
}

// LocateHeader finds the header row among the first HeaderScanLines non-empty
// lines. The first line on which any keyword set matches is the header, even
// if that line is a title that merely mentions a keyword.
func LocateHeader(lines []string) (Header, error) {
	scanned := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if scanned == HeaderScanLines {
			break
		}
		scanned++

		delim := detectDelimiter(line)
		cols := matchColumns(splitCells(line, delim))
		if len(cols) == 0 {
			continue
		}

		var missing []Field
		for _, f := range mandatoryFields {
			if _, ok := cols[f]; !ok {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return Header{}, &MissingColumnsError{Missing: missing}
		}

		return Header{Line: i, Delimiter: delim, Columns: cols}, nil
	}

	return Header{}, ErrHeaderNotFound
}

// detectDelimiter returns "," if the line contains a comma, ";" otherwise.
func detectDelimiter(line string) string {
	if strings.Contains(line, ",") {
		return ","
	}
	return ";"
}

// matchColumns maps every field whose keyword set matches a cell. Cells are
// NFC-folded first so decomposed accents still hit the keywords.
func matchColumns(cells []string) ColumnMap {
	lowered := make([]string, len(cells))
	for i, c := range cells {
		lowered[i] = strings.ToLower(norm.NFC.String(c))
	}

	cols := make(ColumnMap)
	for _, kw := range headerKeywords {
		for i, c := range lowered {
			if kw.match(c) {
				cols[kw.field] = i
				break
			}
		}
	}
	return cols
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
