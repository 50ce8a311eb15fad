// Delete command removes the selected records from a dataset.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gridview/pkg/grid"
	"github.com/mesh-intelligence/gridview/pkg/types"
)

const deleteActionID = "delete"

type deleteResult struct {
	Dataset string   `json:"dataset"`
	IDs     []string `json:"ids"`
	Deleted int      `json:"deleted"`
}

func newDeleteCmd(c *cli) *cobra.Command {
	var f rowFlags
	cmd := &cobra.Command{
		Use:   "delete <dataset>",
		Short: "Remove the selected records from a dataset",
		Long: `Delete selects records the way view does and removes them with a bulk
action. The dataset file is rewritten atomically.

Example:
  gridview delete users --select u1 --select u3
  gridview delete users --filter role=viewer --select-all`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, c, args[0], &f)
		},
	}
	f.register(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, c *cli, name string, f *rowFlags) error {
	if len(f.selects) == 0 && !f.selectAll {
		return userErrorf("nothing to delete: use --select or --select-all")
	}

	store, err := c.attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	ctx := cmd.Context()
	opts, err := c.gridOptions(ctx, store, name, nil, f)
	if err != nil {
		return err
	}

	identify := opts.Identify
	var (
		result  = deleteResult{Dataset: name}
		bulkErr error
	)
	opts.BulkActions = []types.BulkAction[grid.Record]{{
		ID:      deleteActionID,
		Label:   "Delete",
		Variant: types.VariantDestructive,
		OnClick: func(rows []grid.Record) {
			ids := make([]string, len(rows))
			for i, row := range rows {
				ids[i] = identify(row)
			}
			result.IDs = ids
			result.Deleted, bulkErr = store.Delete(ctx, name, ids)
		},
	}}

	g, err := newGrid(opts)
	if err != nil {
		return err
	}
	if err := applyRowFlags(g, f, true); err != nil {
		return err
	}

	if !g.InvokeBulk(deleteActionID) {
		return userErrorf("no records selected in %q", name)
	}
	if bulkErr != nil {
		return fmt.Errorf("delete from %q: %w", name, bulkErr)
	}

	out := cmd.OutOrStdout()
	if c.flagJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintf(out, "Deleted %d record(s) from %s\n", result.Deleted, name)
	return nil
}
