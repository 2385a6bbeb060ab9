// Package views renders the HTMX fragments returned by the roster endpoints.
package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/roster/internal/importer"
	"github.com/a-h/templ"
)

// ImportSummary renders a reconciliation result: counters, the new
// participants to create and the rows that could not be imported.
func ImportSummary(res *importer.Result) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		sum := res.Summary

		fmt.Fprintf(&b, `<div id="roster-summary" class="roster-summary" data-import-id="%s">`, templ.EscapeString(res.ImportID))
		b.WriteString(`<ul class="roster-counts">`)
		counter(&b, "matched", "Existing members", len(sum.MatchedMemberIDs))
		counter(&b, "new", "New participants", len(sum.NewCandidates))
		counter(&b, "rejected", "Rejected rows", len(sum.RejectedRows))
		b.WriteString(`</ul>`)

		if len(sum.NewCandidates) > 0 {
			b.WriteString(`<table class="roster-new"><thead><tr>`)
			b.WriteString(`<th>Line</th><th>Prénom</th><th>Nom</th><th>Adresse e-mail</th><th>Date de naissance</th>`)
			b.WriteString(`</tr></thead><tbody>`)
			for _, c := range sum.NewCandidates {
				fmt.Fprintf(&b, `<tr data-temp-id="%s"><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
					templ.EscapeString(c.TempID),
					c.RowNumber,
					templ.EscapeString(c.FirstName),
					templ.EscapeString(c.LastName),
					templ.EscapeString(c.Email),
					templ.EscapeString(c.Birthday),
				)
			}
			b.WriteString(`</tbody></table>`)
		}

		if len(sum.RejectedRows) > 0 {
			b.WriteString(`<ul class="roster-rejected">`)
			for _, r := range sum.RejectedRows {
				fmt.Fprintf(&b, `<li>Line %d: %s</li>`, r.RowNumber, templ.EscapeString(r.Reason))
			}
			b.WriteString(`</ul>`)
		}

		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func counter(b *strings.Builder, class, label string, n int) {
	fmt.Fprintf(b, `<li class="%s"><span>%s</span> <strong>%s</strong></li>`, class, label, strconv.Itoa(n))
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(msg importer.UserMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		fmt.Fprintf(&b, `<div class="alert alert-error" role="alert" data-code="%s">`, templ.EscapeString(msg.Code))
		fmt.Fprintf(&b, `<p class="alert-message">%s</p>`, templ.EscapeString(msg.Message))
		if msg.Action != "" {
			fmt.Fprintf(&b, `<p class="alert-action">%s</p>`, templ.EscapeString(msg.Action))
		}
		fmt.Fprintf(&b, `<p class="alert-code">Code: %s</p>`, templ.EscapeString(msg.Code))
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
