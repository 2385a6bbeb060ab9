package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/directory"
	"github.com/JonMunkholm/roster/internal/importer"
	"github.com/JonMunkholm/roster/internal/roster"
	"github.com/spf13/cobra"
)

type reconcileOptions struct {
	members string
	asJSON  bool
	maxSize int64
	timeout time.Duration
}

func newReconcileCmd() *cobra.Command {
	var opts reconcileOptions

	cmd := &cobra.Command{
		Use:   "reconcile --members FILE ROSTER.csv",
		Short: "Reconcile a roster file against a member snapshot",
		Long: `Reconcile a participant roster against the members listed in a YAML or
JSON snapshot file and print which rows are existing members, which are new
participants and which were rejected.

Exit status is 2 when the roster itself is rejected (empty file, no header,
missing columns or missing birthdays).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.members, "members", "", "Member snapshot file, YAML or JSON (required)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().Int64Var(&opts.maxSize, "max-size", 5<<20, "Maximum roster size in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Reconciliation timeout")
	_ = cmd.MarkFlagRequired("members")

	return cmd
}

func runReconcile(cmd *cobra.Command, opts reconcileOptions, rosterPath string) error {
	members, err := directory.LoadFile(opts.members)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(rosterPath)
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}

	svc := importer.NewService(members, nil, config.ImportConfig{
		MaxFileSize:   opts.maxSize,
		MaxConcurrent: 1,
		MaxWaitTime:   time.Second,
		Timeout:       opts.timeout,
	})

	res, err := svc.Reconcile(cmd.Context(), importer.Request{
		FileName: filepath.Base(rosterPath),
		Data:     data,
	})
	if err != nil {
		if roster.IsTerminal(err) {
			msg := importer.MapError(err)
			return withCode(exitRejected, fmt.Errorf("%s [%s]: %s", msg.Message, msg.Code, msg.Action))
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printSummary(out, res)
}

// printSummary writes one line per roster row in file order.
func printSummary(w io.Writer, res *importer.Result) error {
	sum := res.Summary

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tOUTCOME\tDETAIL")
	for _, o := range sum.Outcomes {
		switch o := o.(type) {
		case roster.ExistingMember:
			fmt.Fprintf(tw, "%d\tmember\t#%d\n", o.RowNumber, o.MemberID)
		case roster.NewCandidate:
			fmt.Fprintf(tw, "%d\tnew\t%s\n", o.RowNumber, candidateLabel(o))
		case roster.Invalid:
			fmt.Fprintf(tw, "%d\trejected\t%s\n", o.RowNumber, o.Reason)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d rows: %d members, %d new, %d rejected (%s, %s)\n",
		sum.RowCount(),
		len(sum.MatchedMemberIDs),
		len(sum.NewCandidates),
		len(sum.RejectedRows),
		res.FileName,
		res.Encoding,
	)
	return err
}

func candidateLabel(c roster.NewCandidate) string {
	parts := []string{strings.TrimSpace(c.FirstName + " " + c.LastName)}
	if c.Birthday != "" {
		parts = append(parts, c.Birthday)
	}
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	return strings.Join(parts, ", ")
}
