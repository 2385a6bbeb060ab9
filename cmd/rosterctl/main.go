// Command rosterctl reconciles roster files offline against a member
// snapshot file, without a database or the HTTP server.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 2 // the roster itself was rejected
)

// exitError carries the process exit status for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, "error:", err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Reconcile participant rosters against a member snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), logLevel, "text")
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")

	root.AddCommand(newReconcileCmd())
	root.AddCommand(newNormalizeDateCmd())

	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
