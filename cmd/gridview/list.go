// List command prints the datasets in the data directory.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type datasetInfo struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List datasets with their record counts",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			names, err := store.Datasets()
			if err != nil {
				return fmt.Errorf("list datasets: %w", err)
			}
			infos := make([]datasetInfo, 0, len(names))
			for _, name := range names {
				n, err := store.Count(cmd.Context(), name)
				if err != nil {
					return datasetError(name, err)
				}
				infos = append(infos, datasetInfo{Name: name, Records: n})
			}

			out := cmd.OutOrStdout()
			if c.flagJSON {
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal datasets: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			if len(infos) == 0 {
				fmt.Fprintln(out, "No datasets found")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(out, "%s\t%d\n", info.Name, info.Records)
			}
			return nil
		},
	}
}
