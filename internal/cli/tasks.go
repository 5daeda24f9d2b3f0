package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todue/internal/clierr"
	"todue/internal/output"
	"todue/internal/task"
)

func newAddCmd(a *app) *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add TEXT... --due YYYY-MM-DD",
		Short: "Add a task",
		Example: `  todue add Buy milk --due 2025-03-14
  todue add "Pay rent" -d 2025-04-01`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, day, err := task.ValidateNew(strings.Join(args, " "), due)
			if err != nil {
				return clierr.Wrap(clierr.InvalidInput, err)
			}
			id, err := a.store.Add(text, day)
			if err != nil {
				return storageErr(err)
			}
			if a.jsonOut {
				return output.JSON(cmd.OutOrStdout(), map[string]string{"id": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (due %s)\n", id, day)
			return nil
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date, YYYY-MM-DD")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks with their urgency",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonOut && html {
				return clierr.New(clierr.InvalidInput, "--json and --html cannot be combined")
			}
			tasks := a.store.List()
			records := output.Records(tasks, a.today())
			pending := task.Pending(tasks)
			w := cmd.OutOrStdout()

			switch output.Detect(a.jsonOut, html) {
			case output.FormatJSON:
				return output.JSON(w, output.Listing{Tasks: records, Pending: pending})
			case output.FormatHTML:
				return output.HTML(w, records, pending, output.Palette{
					High:   a.cfg.Colors.High,
					Medium: a.cfg.Colors.Medium,
					Low:    a.cfg.Colors.Low,
				})
			default:
				output.Table(w, records, pending)
				return nil
			}
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "output as an HTML fragment")
	return cmd
}

// newCompleteCmd builds "done" and "undo", which differ only in the state
// they set.
func newCompleteCmd(a *app, name string, completed bool) *cobra.Command {
	short, verb := "Mark tasks completed", "Completed"
	if !completed {
		short, verb = "Mark tasks pending again", "Reopened"
	}
	return &cobra.Command{
		Use:   name + " ID...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eachTask(cmd, args, func(id string) error {
				if err := a.store.SetCompleted(id, completed); err != nil {
					return storageErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, id)
				return nil
			})
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var text, due string
	cmd := &cobra.Command{
		Use:   "edit ID [--text TEXT] [--due YYYY-MM-DD]",
		Short: "Change a task's text and due date",
		Long: `Change a task's text and due date. A flag left out keeps the stored value;
both values must be non-empty after the change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eachTask(cmd, args, func(id string) error {
				current, _ := a.store.Get(id)
				newText, newDue := current.Text, current.Date.String()
				if cmd.Flags().Changed("text") {
					newText = text
				}
				if cmd.Flags().Changed("due") {
					newDue = due
				}
				t, d, err := task.ValidateEdit(newText, newDue)
				if err != nil {
					return clierr.Wrap(clierr.InvalidInput, err)
				}
				if err := a.store.Update(id, t, d); err != nil {
					return storageErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "new task text")
	cmd.Flags().StringVarP(&due, "due", "d", "", "new due date, YYYY-MM-DD")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eachTask(cmd, args, func(id string) error {
				if err := a.store.Remove(id); err != nil {
					return storageErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
				return nil
			})
		},
	}
}

// eachTask resolves every argument and applies fn. Ids that match nothing
// are skipped with a warning.
func (a *app) eachTask(cmd *cobra.Command, args []string, fn func(id string) error) error {
	for _, arg := range args {
		id, ok, err := a.resolveID(arg)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: no task matches %q\n", arg)
			continue
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}
