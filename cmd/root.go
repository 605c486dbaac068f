// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/render"
	"github.com/nibzard/todo-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	root := newRootCmd(afero.NewOsFs())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app is the state shared by every command of one invocation.
type app struct {
	fs      afero.Fs
	cfg     *config.Config
	logger  *log.Logger
	repo    *todo.Repository
	printer *render.Printer
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys, logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "todo",
		Short: "Simple command-line todo list",
		Long: `todo keeps a prioritized list of tasks in a JSON file.

Tasks have a stable id, a name, a priority from 1 (lowest) to 5 (highest)
and a creation time. The file defaults to ./todos.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsConfig(cmd) {
				return nil
			}
			return a.init(cmd)
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newClearCmd(a),
		newPrioritizeCmd(a),
		newScheduleCmd(a),
		newEditCmd(a),
		newPriorityCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// skipsConfig reports whether cmd runs without loading configuration.
func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// init loads configuration and builds the logger, repository and printer.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.NewFromConfig(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	a.repo = todo.NewRepository(a.fs, cfg.TodoFile)
	a.printer = render.NewPrinter(cmd.OutOrStdout(), render.Options{
		Color:      cfg.Color,
		TimeFormat: cfg.TimeFormat,
	})
	for _, f := range cfg.Files {
		a.logger.Debug("config file applied", "path", f)
	}
	return nil
}

// load reads the task file into a fresh store.
func (a *app) load() (*todo.Store, error) {
	s, warnings, err := a.repo.Load()
	for _, w := range warnings {
		a.logger.Warn(w)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	a.logger.Debug("tasks loaded", "path", a.repo.Path(), "count", s.Len())
	return s, nil
}

// update loads the store, applies fn and saves the result.
// Nothing is written when fn fails.
func (a *app) update(fn func(*todo.Store) error) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := a.repo.Save(s); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	a.logger.Debug("tasks saved", "path", a.repo.Path(), "count", s.Len(), "next_id", s.NextID())
	return nil
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func parsePriority(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid priority %q", s)
	}
	return p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "todo %s\n", Version)
			return err
		},
	}
}
