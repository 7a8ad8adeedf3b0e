// settle reconciles a personnel roster with a work-activity log and writes
// per-person settlement reports.
//
// Usage:
//
//	settle reconcile --roster SRC --activity SRC [flags]
//	settle hash-passphrase < passphrase.txt
//	settle unseal [VALUE...]
//	settle runs --archive DB
//
// SRC is a local .xlsx/.csv path, a Google Sheets URL or ID (public xlsx
// export), or sheets:ID to read through the Sheets API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/cobby8/allowance-manager-web/pkg/logging"
)

// env is the process environment a command runs in.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func main() {
	logging.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, getenv: os.Getenv}
	if err := run(ctx, os.Args[1:], e); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, e env) error {
	if len(args) == 0 {
		printUsage(e.stderr)
		return errors.New("no command given")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "reconcile":
		return runReconcile(ctx, rest, e)
	case "hash-passphrase":
		return runHashPassphrase(rest, e)
	case "unseal":
		return runUnseal(rest, e)
	case "runs":
		return runListRuns(ctx, rest, e)
	case "help", "-h", "--help":
		printUsage(e.stdout)
		return nil
	default:
		printUsage(e.stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `settle reconciles a roster with a work-activity log.

Usage:
  settle reconcile --roster SRC --activity SRC [flags]
  settle hash-passphrase          read a passphrase on stdin, print its bcrypt hash
  settle unseal [VALUE...]        open archived sealed values (SETTLE_PASSPHRASE)
  settle runs --archive DB        list archived runs

SRC is a local .xlsx or .csv file, a Google Sheets URL or ID, or sheets:ID
to read through the Sheets API.

Run "settle reconcile --help" for reconcile flags.
`)
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, e env) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}
