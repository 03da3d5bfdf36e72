package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <start> <end>",
		Short: "Add a timer",
		Long: `Add a timer running from start to end.

Times are RFC 3339 (2025-01-01T10:00:00Z) or local date and time
(2025-01-01T10:00 or "2025-01-01 10:00").`,
		Args: cobra.ExactArgs(3),
		RunE: a.runAdd,
	}
}

func (a *app) runAdd(cmd *cobra.Command, args []string) error {
	added, err := a.store.AddFromStrings(commandContext(cmd), args[0], args[1], args[2])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added timer %d: %s (%s - %s)\n",
		a.store.Len(),
		added.Title,
		added.StartTime.Local().Format("2006-01-02 15:04"),
		added.EndTime.Local().Format("2006-01-02 15:04"))
	return nil
}
