package commands

import (
	"fmt"

	"github.com/HamzaEzziymy/timers/internal/timers"
	"github.com/spf13/cobra"
)

func newDebugCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug-storage",
		Short: "Show the raw persisted timer payload",
		Args:  cobra.NoArgs,
		RunE:  a.runDebugStorage,
	}
}

func (a *app) runDebugStorage(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	key := a.cfg.Storage.Key

	fmt.Fprintf(out, "Backend: %s\n", a.cfg.Storage.Backend)
	fmt.Fprintf(out, "Key:     %s\n", key)
	fmt.Fprintln(out, "==========================================")

	payload, ok, err := a.storage.Get(commandContext(cmd), key)
	if err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "Nothing stored under this key")
		return nil
	}

	fmt.Fprintln(out, payload)
	fmt.Fprintln(out)

	list, err := timers.Decode(payload)
	if err != nil {
		fmt.Fprintf(out, "Payload does not decode, it will be treated as empty: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "Decodes to %d timers\n", len(list))
	return nil
}
