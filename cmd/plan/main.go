package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/allancalix/plan/pkg/logutils"
	"github.com/allancalix/plan/pkg/planfile"
)

// usageError prints as "plan: msg" on stderr and exits 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return "plan: " + e.msg
}

func usageErr(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// silentExit carries an exit code with no output, used to pass editor
// exit codes through and for show on a missing file.
type silentExit struct {
	code int
}

func (e *silentExit) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

type rootFlags struct {
	Init     bool
	Dir      string
	Path     bool
	Last     bool
	LogLevel string
	LogFile  string
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &rootFlags{}
	app := &appState{flags: flags, clock: planfile.SystemClock{}}

	cmd := &cli.Command{
		Name:  "plan",
		Usage: "A standalone tool for writing and managing daily plan files",
		UsageText: `plan [DATE]            open a day's plan in $EDITOR
plan log <text> [DATE] add a task to the inbox
plan [command]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "init",
				Usage:       "initialize a new plan directory and save to config",
				Destination: &flags.Init,
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "override config with a new directory",
				Destination: &flags.Dir,
			},
			&cli.BoolFlag{
				Name:        "path",
				Usage:       "print the resolved file path to stdout (creates template if needed)",
				Destination: &flags.Path,
			},
			&cli.BoolFlag{
				Name:        "last",
				Usage:       "open the most recent plan file chronologically",
				Destination: &flags.Last,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PLAN_LOG_LEVEL"),
				Value:       "error",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("PLAN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		Commands: []*cli.Command{
			app.logCmd(),
			app.jotCmd(),
			app.lsCmd(),
			app.showCmd(),
			app.searchCmd(),
			app.tuiCmd(),
		},
		Action: app.runDefault,
	}

	err := cmd.Run(ctx, os.Args)
	if logCloser != nil {
		logCloser()
	}
	exitWith(err)
}

func exitWith(err error) {
	if err == nil {
		return
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(os.Stderr, uerr.Error())
		os.Exit(2)
	}

	var serr *silentExit
	if errors.As(err, &serr) {
		os.Exit(serr.code)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
