// Shared helpers for gridview CLI commands.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gridview/internal/rowstore"
)

// attachStore resolves the data directory and attaches a row store to it.
// The caller must defer store.Detach().
func (c *cli) attachStore() (*rowstore.Store, error) {
	dataDir, err := c.resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	store := rowstore.New()
	if err := store.Attach(rowstore.Config{
		DataDir: dataDir,
		IDField: c.cfg.GetString(cfgKeyIDField),
		Logger:  c.logger,
	}); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return store, nil
}

// datasetError marks store errors caused by the dataset argument as user
// errors.
func datasetError(name string, err error) error {
	if errors.Is(err, rowstore.ErrDatasetNotFound) || errors.Is(err, rowstore.ErrInvalidDataset) {
		return &userError{err: fmt.Errorf("dataset %q: %w", name, err)}
	}
	return fmt.Errorf("dataset %q: %w", name, err)
}

// parseKeyValues parses repeated key=value flags. Later keys win.
func parseKeyValues(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, userErrorf("invalid --%s %q (expected key=value)", flag, p)
		}
		out[k] = v
	}
	return out, nil
}

// noArgs and exactArgs wrap cobra's validators so argument mistakes exit
// as user errors.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &userError{err: err}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &userError{err: err}
		}
		return nil
	}
}
