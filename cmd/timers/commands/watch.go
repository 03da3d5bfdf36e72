package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/HamzaEzziymy/timers/internal/clock"
	"github.com/HamzaEzziymy/timers/internal/scheduler"
	"github.com/HamzaEzziymy/timers/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCommand(a *app) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print every timer on each tick without the TUI",
		Long: `Print every timer on each tick without the TUI.

A timer stops being printed once it has completed; watch exits when
every timer has completed or on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, once)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Print a single refresh and exit")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, once bool) error {
	list := a.store.Timers()
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No timers yet. Add one to get started!")
		return nil
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(a.interval, a.clock, a.logger)
	defer sched.Close()

	for i, t := range list {
		watchTimer(sched, out, i, t, cancel)
	}

	// show the current state right away instead of after the first interval
	sched.Tick()
	if once || sched.Len() == 0 {
		return nil
	}

	a.logger.Debug("Watching timers", zap.Int("count", sched.Len()), zap.Duration("interval", a.interval))
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchTimer registers a tick callback for one timer. The callback releases
// itself once the timer completes and calls done when nothing is left to watch.
func watchTimer(sched *scheduler.Scheduler, out io.Writer, i int, t models.Timer, done context.CancelFunc) {
	var id string
	id = sched.Register(func(now time.Time) {
		state := clock.EvaluateTimer(t, now)
		fmt.Fprintf(out, "[%s] %d. %s: %s\n", now.Local().Format("15:04:05"), i+1, t.Title, state)

		if state.Phase == models.Completed {
			sched.Unregister(id)
			if sched.Len() == 0 {
				done()
			}
		}
	})
}
