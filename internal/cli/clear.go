package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"todue/internal/clierr"
)

var errNotInteractive = errors.New("stdin is not a terminal")

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := a.confirm("Delete all tasks")
				if errors.Is(err, errNotInteractive) {
					return clierr.New(clierr.ConfirmationReq, "clear needs confirmation; pass --yes")
				}
				if err != nil {
					return clierr.Wrap(clierr.InternalError, err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared.")
					return nil
				}
			}
			if err := a.store.ClearAll(); err != nil {
				return storageErr(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All tasks deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirm asks a y/N question on the terminal. Declining or
// interrupting counts as no.
func promptConfirm(label string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, errNotInteractive
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, nil
	default:
		return false, err
	}
}
