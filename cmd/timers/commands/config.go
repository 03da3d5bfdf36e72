package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfig(cmd, write)
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Save the effective configuration to the config file")
	return cmd
}

func (a *app) runConfig(cmd *cobra.Command, write bool) error {
	data, err := yaml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))

	if write {
		if err := a.cfg.Save(a.configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", a.configPath)
	}
	return nil
}
