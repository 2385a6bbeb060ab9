package roster

import "strings"

// ParseRows splits every non-blank line after the header into cleaned cells
// using the header's delimiter. Content is not validated here.
func ParseRows(lines []string, h Header) []RawRow {
	var rows []RawRow
	for i := h.Line + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		rows = append(rows, RawRow{
			Line:  i + 1,
			Cells: splitCells(lines[i], h.Delimiter),
		})
	}
	return rows
}

// splitCells splits line on delim and cleans each cell.
func splitCells(line, delim string) []string {
	parts := strings.Split(line, delim)
	for i, p := range parts {
		parts[i] = cleanCell(p)
	}
	return parts
}

// cleanCell strips one pair of surrounding double quotes and trims
// whitespace.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// splitLines splits text on newlines and drops carriage returns. A leading
// UTF-8 byte order mark is removed.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
