package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/allancalix/plan/pkg/config"
	"github.com/allancalix/plan/pkg/executil"
	"github.com/allancalix/plan/pkg/iofmt"
	"github.com/allancalix/plan/pkg/planfile"
	"github.com/allancalix/plan/pkg/tui"
)

// appState holds the per-invocation wiring shared by all commands.
type appState struct {
	flags *rootFlags
	clock planfile.Clock

	cfg config.Config
}

// resolve loads the plan directory from the environment, config file,
// --dir override, or a first-run prompt, in that order of precedence.
func (a *appState) resolve() error {
	cfg, found, err := config.Load()
	if err != nil {
		return err
	}

	if a.flags.Dir != "" {
		cfg.Dir = config.ExpandTilde(a.flags.Dir)
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", cfg.Dir, err)
		}
		found = true
	}

	if !found {
		dir, err := promptForDir()
		if err != nil {
			return err
		}
		if err := config.Init(dir); err != nil {
			return err
		}
		cfg.Dir = config.ExpandTilde(dir)
		cfg.WarnUnexpected = true
	}

	a.cfg = cfg
	return nil
}

func promptForDir() (string, error) {
	fmt.Println("No plan directory configured.")
	fmt.Print("Enter path [~/plan]: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading plan directory: %w", err)
	}
	dir := strings.TrimSpace(line)
	if dir == "" {
		dir = "~/plan"
	}
	return dir, nil
}

// scan reads the plan directory once per invocation, warning about
// stray files when configured to.
func (a *appState) scan() (planfile.ScanResult, error) {
	if _, err := os.Stat(a.cfg.Dir); os.IsNotExist(err) {
		return planfile.ScanResult{}, nil
	}

	result, err := planfile.Scan(a.cfg.Dir, a.cfg.IgnorePatterns)
	if err != nil {
		return planfile.ScanResult{}, err
	}
	if a.cfg.WarnUnexpected {
		planfile.WarnUnexpected(os.Stderr, result.Unexpected)
	}
	return result, nil
}

// resolveDate parses the date argument, defaulting to today.
func (a *appState) resolveDate(arg string) (time.Time, error) {
	date, err := planfile.ParseRelative(arg, a.clock.Today())
	if err != nil {
		return time.Time{}, &usageError{msg: err.Error()}
	}
	return date, nil
}

// ensurePlan creates the plan file for date if appropriate, mapping a
// refused past date to the usage error contract.
func (a *appState) ensurePlan(date time.Time) (string, error) {
	path, err := planfile.EnsureExists(a.cfg.Dir, date, a.clock.Today())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", usageErr("No plan file for that date: %s", planfile.Filename(date))
		}
		return "", err
	}
	return path, nil
}

// latestPlan returns the newest plan file or an error naming the
// directory, matching the --last contract.
func (a *appState) latestPlan() (string, error) {
	entry, ok, err := planfile.FindLatest(a.cfg.Dir, a.cfg.IgnorePatterns)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("No plan files found in %s", a.cfg.Dir)
	}
	return entry.Path, nil
}

// runDefault opens a day's plan in the editor, or prints its path.
func (a *appState) runDefault(ctx context.Context, c *cli.Command) error {
	if a.flags.Init {
		return a.runInit()
	}

	if err := a.resolve(); err != nil {
		return err
	}
	if _, err := a.scan(); err != nil {
		return err
	}

	dateArg := c.Args().First()
	if dateArg != "" && a.flags.Last {
		return usageErr("Cannot use --last with a specific date.")
	}

	var path string
	if a.flags.Last {
		p, err := a.latestPlan()
		if err != nil {
			return err
		}
		path = p
	} else {
		date, err := a.resolveDate(dateArg)
		if err != nil {
			return err
		}
		p, err := a.ensurePlan(date)
		if err != nil {
			return err
		}
		path = p
	}

	if a.flags.Path {
		fmt.Println(path)
		return nil
	}
	return openEditor(ctx, path)
}

func (a *appState) runInit() error {
	if a.flags.Dir == "" {
		return usageErr("--init requires --dir=<path>")
	}

	expanded := config.ExpandTilde(a.flags.Dir)
	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", expanded, err)
	}
	if err := config.Init(a.flags.Dir); err != nil {
		return err
	}
	fmt.Printf("Configured plan directory: %s\n", a.flags.Dir)
	return nil
}

func (a *appState) logCmd() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Insert '* <text>' into today's inbox (reads stdin if '-')",
		UsageText: "plan log <text> [DATE]",
		Action: func(ctx context.Context, c *cli.Command) error {
			return a.runInsert(c, true)
		},
	}
}

func (a *appState) jotCmd() *cli.Command {
	return &cli.Command{
		Name:      "jot",
		Usage:     "Insert raw note into today's inbox (reads stdin if '-')",
		UsageText: "plan jot <text> [DATE]",
		Action: func(ctx context.Context, c *cli.Command) error {
			return a.runInsert(c, false)
		},
	}
}

func (a *appState) runInsert(c *cli.Command, asTask bool) error {
	if err := a.resolve(); err != nil {
		return err
	}
	if _, err := a.scan(); err != nil {
		return err
	}

	text := c.Args().First()
	if text == "" {
		return usageErr("usage: plan %s <text> [DATE]", c.Name)
	}
	if text == "-" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = line
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return usageErr("Message cannot be empty.")
	}

	dateArg := c.Args().Get(1)
	if dateArg != "" && a.flags.Last {
		return usageErr("Cannot use --last with a specific date.")
	}

	var path string
	if a.flags.Last {
		p, err := a.latestPlan()
		if err != nil {
			return err
		}
		path = p
	} else {
		date, err := a.resolveDate(dateArg)
		if err != nil {
			return err
		}
		p, err := a.ensurePlan(date)
		if err != nil {
			return err
		}
		path = p
	}

	if asTask {
		text = "* " + text
	}
	return planfile.InsertIntoInbox(path, text)
}

type listingRow struct {
	Date  string `json:"date" yaml:"date"`
	Day   string `json:"day" yaml:"day"`
	Lines int    `json:"lines" yaml:"lines"`
}

func (a *appState) lsCmd() *cli.Command {
	var format string
	return &cli.Command{
		Name:  "ls",
		Usage: "List recent plan files with dates and line counts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, yaml)",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if a.flags.Last {
				return usageErr("--last is not supported with the 'ls' command.")
			}
			if err := a.resolve(); err != nil {
				return err
			}
			result, err := a.scan()
			if err != nil {
				return err
			}

			entries := result.Plans
			if len(entries) > 30 {
				entries = entries[:30]
			}

			rows := make([]listingRow, 0, len(entries))
			for _, entry := range entries {
				if entry.Date.IsZero() {
					continue
				}
				lines, err := planfile.ReadLines(entry.Path)
				if err != nil {
					log.Warn().Err(err).Str("file", entry.Name).Msg("skipping unreadable plan")
					continue
				}
				rows = append(rows, listingRow{
					Date:  entry.Date.Format(planfile.DateLayout),
					Day:   entry.Date.Format("Mon"),
					Lines: len(lines),
				})
			}

			if format != "" {
				return iofmt.Write(os.Stdout, format, rows)
			}
			for _, row := range rows {
				fmt.Printf("%s  %s  %2d lines\n", row.Date, row.Day, row.Lines)
			}
			return nil
		},
	}
}

func (a *appState) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a plan file to stdout (exit code 2 if not found)",
		UsageText: "plan show [DATE]",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := a.resolve(); err != nil {
				return err
			}
			if _, err := a.scan(); err != nil {
				return err
			}

			dateArg := c.Args().First()
			if dateArg != "" && a.flags.Last {
				return usageErr("Cannot use --last with a specific date.")
			}

			var path string
			if a.flags.Last {
				p, err := a.latestPlan()
				if err != nil {
					return err
				}
				path = p
			} else {
				date, err := a.resolveDate(dateArg)
				if err != nil {
					return err
				}
				path = planfile.Path(a.cfg.Dir, date)
			}

			if _, err := os.Stat(path); err != nil {
				return &silentExit{code: 2}
			}

			lock, err := planfile.AcquireSharedLock(path)
			if err != nil {
				return err
			}
			defer lock.Release()

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func (a *appState) searchCmd() *cli.Command {
	var format string
	return &cli.Command{
		Name:      "search",
		Usage:     "Search across all plan files (substring match, case-insensitive)",
		UsageText: "plan search <query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, yaml)",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if a.flags.Last {
				return usageErr("--last is not supported with the 'search' command.")
			}
			query := c.Args().First()
			if query == "" {
				return usageErr("usage: plan search <query>")
			}

			if err := a.resolve(); err != nil {
				return err
			}
			result, err := a.scan()
			if err != nil {
				return err
			}

			hits, err := searchPlans(result.Plans, query)
			if err != nil {
				return err
			}

			if format != "" {
				return iofmt.Write(os.Stdout, format, hits)
			}
			for _, hit := range hits {
				fmt.Printf("%s:%d: %s\n", hit.File, hit.Line, hit.Display)
			}
			return nil
		},
	}
}

func (a *appState) tuiCmd() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive plan viewer",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := a.resolve(); err != nil {
				return err
			}
			if _, err := a.scan(); err != nil {
				return err
			}

			today := a.clock.Today()
			if _, err := a.ensurePlan(today); err != nil {
				return err
			}

			// Subprocess report commands resolve the same directory
			// through the environment, --dir overrides included.
			os.Setenv("PLAN_DIR", a.cfg.Dir)

			bin, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolving executable: %w", err)
			}
			svc := &tui.Service{Bin: bin, Exec: &executil.RealExecutor{}}

			m := tui.NewModel(a.cfg.Dir, today, a.clock, svc)
			p := tea.NewProgram(m, tea.WithAltScreen())

			cleanup, err := tui.StartWatcher(a.cfg.Dir, p)
			if err != nil {
				log.Warn().Err(err).Msg("file watcher failed")
			} else {
				defer cleanup()
			}

			_, err = p.Run()
			return err
		},
	}
}

func openEditor(ctx context.Context, path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "nano"
	}

	parts, err := shlex.Split(editor)
	if err != nil || len(parts) == 0 {
		return fmt.Errorf("Invalid editor specified: %s", editor)
	}

	args := append(parts[1:], path)
	return executil.RunInteractive(ctx, parts[0], args...)
}
