package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClear(cmd, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) runClear(cmd *cobra.Command, yes bool) error {
	out := cmd.OutOrStdout()
	count := a.store.Len()
	if count == 0 {
		fmt.Fprintln(out, "No timers to clear")
		return nil
	}

	if !yes {
		fmt.Fprintf(out, "Are you sure you want to delete all %d timers? [y/N]: ", count)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	if err := a.store.Clear(commandContext(cmd)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %d timers\n", count)
	return nil
}
