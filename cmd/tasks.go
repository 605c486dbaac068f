package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/todo"
)

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <task-name> <priority>",
		Short: "Add a task with a priority from 1 to 5",
		Example: `  todo add "buy milk" 3
  todo add laundry 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, err := parsePriority(args[1])
			if err != nil {
				return err
			}
			var id uint64
			err = a.update(func(s *todo.Store) error {
				id, err = s.Add(args[0], priority)
				return err
			})
			if err != nil {
				return err
			}
			a.logger.Info("task added", "id", id, "priority", priority)
			return a.printer.Messagef("Added task %d", id)
		},
	}
	// Negative numbers are arguments, not shorthand flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <task-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.update(func(s *todo.Store) error {
				return s.Remove(id)
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in id order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show((*todo.Store).List)
		},
	}
}

func newPrioritizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prioritize",
		Short: "List tasks from highest to lowest priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show((*todo.Store).Prioritize)
		},
	}
}

func newScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "List tasks from oldest to newest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show((*todo.Store).Schedule)
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(func(s *todo.Store) error {
				a.logger.Info("clearing tasks", "count", s.Len())
				s.Clear()
				return nil
			})
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <task-id> <new-name>...",
		Short:   "Rename a task",
		Example: `  todo edit 3 buy more milk`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			return a.update(func(s *todo.Store) error {
				return s.Edit(id, name)
			})
		},
	}
	// Negative numbers are arguments, not shorthand flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newPriorityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority <task-id> <priority>",
		Short: "Change the priority of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			priority, err := parsePriority(args[1])
			if err != nil {
				return err
			}
			return a.update(func(s *todo.Store) error {
				return s.SetPriority(id, priority)
			})
		},
	}
	// Negative numbers are arguments, not shorthand flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// show loads the store and prints the tasks returned by view.
func (a *app) show(view func(*todo.Store) []todo.Task) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	return a.printer.Tasks(view(s))
}
