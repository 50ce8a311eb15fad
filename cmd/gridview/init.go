// Init command for the gridview CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the gridview config and data directories",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// loadConfig has already created the config dir and config.yaml.
			store, err := c.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			dataDir, err := c.resolveDataDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "gridview initialized successfully")
			fmt.Fprintln(out, "  config:", c.configDir)
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
