package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <position>",
		Aliases: []string{"rm"},
		Short:   "Delete the timer at a position shown by list",
		Args:    cobra.ExactArgs(1),
		RunE:    a.runDelete,
	}
}

func (a *app) runDelete(cmd *cobra.Command, args []string) error {
	position, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position %q: expected a number", args[0])
	}

	list := a.store.Timers()
	removed, err := a.store.DeleteAt(commandContext(cmd), position-1)
	if err != nil {
		return err
	}

	if !removed {
		fmt.Fprintf(cmd.OutOrStdout(), "No timer at position %d\n", position)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted timer %d: %s\n", position, list[position-1].Title)
	return nil
}
