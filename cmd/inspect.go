package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/ui"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the task file against its schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.repo.Validate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !result.UsedSchema {
				a.logger.Warn("JSON Schema validation skipped")
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(out, "error: %v\n", e)
			}
			if !result.Valid {
				return fmt.Errorf("%s: %d validation error(s)", a.repo.Path(), len(result.Errors))
			}
			_, err = fmt.Fprintf(out, "%s is valid\n", a.repo.Path())
			return err
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, f := range a.cfg.Files {
				fmt.Fprintf(out, "# from %s\n", f)
			}
			return toml.NewEncoder(out).Encode(a.cfg)
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.RunTUI(cmd.Context(), a.repo,
				ui.WithWatch(!noWatch),
				ui.WithTimeFormat(a.cfg.TimeFormat),
				ui.WithLogger(a.logger),
			)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the task file changes")
	return cmd
}
