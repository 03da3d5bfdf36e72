package commands

import (
	"fmt"
	"io"

	"github.com/HamzaEzziymy/timers/internal/clock"
	"github.com/HamzaEzziymy/timers/pkg/models"
	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "show"},
		Short:   "Show timers without the TUI",
		Args:    cobra.NoArgs,
		RunE:    a.runList,
	}
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	list := a.store.Timers()
	out := cmd.OutOrStdout()

	if len(list) == 0 {
		fmt.Fprintln(out, "No timers yet. Add one to get started!")
		return nil
	}

	fmt.Fprintln(out, "Timers:")
	fmt.Fprintln(out, "=======")
	now := a.clock.Now()
	for i, t := range list {
		printTimer(out, i, t, clock.EvaluateTimer(t, now))
	}
	return nil
}

func printTimer(out io.Writer, i int, t models.Timer, state models.DisplayState) {
	fmt.Fprintf(out, "%d. %s\n", i+1, t.Title)
	fmt.Fprintf(out, "   Start: %s\n", t.StartTime.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "   End:   %s\n", t.EndTime.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "   %s\n", state)
	fmt.Fprintln(out)
}
