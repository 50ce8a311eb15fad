// View command renders a dataset through the grid engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gridview/internal/rowstore"
	"github.com/mesh-intelligence/gridview/pkg/grid"
	"github.com/mesh-intelligence/gridview/pkg/types"
)

// rowFlags are the flags that pick and narrow rows. They are shared by
// view and delete.
type rowFlags struct {
	query     string
	filters   []string
	where     []string
	fuzzy     int
	selects   []string
	selectAll bool
}

func (f *rowFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.query, "query", "q", "", "free-text search across all columns")
	fs.StringArrayVar(&f.filters, "filter", nil, "filter-bar value field=value (\"all\" disables); repeatable")
	fs.StringArrayVar(&f.where, "where", nil, "narrow the fetch to records with field=value; repeatable")
	fs.IntVar(&f.fuzzy, "fuzzy", 0, "allow up to n typos per search word")
	fs.StringArrayVar(&f.selects, "select", nil, "select the row with this id; repeatable")
	fs.BoolVar(&f.selectAll, "select-all", false, "select every row that passes search and filters")
	cmd.MarkFlagsMutuallyExclusive("select", "select-all")
}

// viewFlags are the presentation flags of the view command.
type viewFlags struct {
	rowFlags
	columns   []string
	hide      []string
	sort      string
	desc      bool
	mode      string
	density   string
	highlight bool
	rules     []string
}

func newViewCmd(c *cli) *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "view <dataset>",
		Short: "Render a dataset as a sortable, filterable table",
		Long: `View loads <dataset>.jsonl from the data directory and renders it.

Flags are applied as user events in this order: sort, search and
filters, selection, view mode and density, then column visibility.

Example:
  gridview view users --sort name --desc
  gridview view users -q ann --filter role=admin --mode card
  gridview view users --highlight-rule status=failed:danger`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, c, args[0], &f)
		},
	}
	f.register(cmd)
	fs := cmd.Flags()
	fs.StringSliceVar(&f.columns, "columns", nil, "comma-separated columns to show, in order (default: all)")
	fs.StringArrayVar(&f.hide, "hide", nil, "hide a column; repeatable")
	fs.StringVar(&f.sort, "sort", "", "sort by this column")
	fs.BoolVar(&f.desc, "desc", false, "sort descending")
	fs.StringVar(&f.mode, "mode", "", "view mode: table, card, or compact (default from config)")
	fs.StringVar(&f.density, "density", "", "density: comfortable or dense (default from config)")
	fs.BoolVar(&f.highlight, "highlight", false, "show row highlighting")
	fs.StringArrayVar(&f.rules, "highlight-rule", nil, "highlight rows with field=value:class; repeatable")
	return cmd
}

func runView(cmd *cobra.Command, c *cli, name string, f *viewFlags) error {
	store, err := c.attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	opts, err := c.gridOptions(cmd.Context(), store, name, f.columns, &f.rowFlags)
	if err != nil {
		return err
	}
	if f.sort != "" {
		opts.InitialSort = types.SortState{ColumnID: f.sort, Direction: types.Asc}
		if f.desc {
			opts.InitialSort.Direction = types.Desc
		}
	}
	if len(f.rules) > 0 {
		var classifier grid.RuleClassifier[grid.Record]
		for _, s := range f.rules {
			rule, err := grid.ParseRecordRule(s)
			if err != nil {
				return &userError{err: err}
			}
			classifier = append(classifier, rule)
		}
		opts.Classifier = classifier
		opts.Config.ShowHighlight = true
	}
	if f.highlight {
		opts.Config.ShowHighlight = true
	}

	g, err := newGrid(opts)
	if err != nil {
		return err
	}
	if err := applyRowFlags(g, &f.rowFlags, false); err != nil {
		return err
	}

	if f.mode != "" {
		mode, err := types.ParseViewMode(f.mode)
		if err != nil {
			return &userError{err: err}
		}
		g.SetViewMode(mode)
	}
	if f.density != "" {
		density, err := types.ParseDensity(f.density)
		if err != nil {
			return &userError{err: err}
		}
		g.SetDensity(density)
	}
	for _, id := range f.hide {
		if !slices.Contains(opts.columnIDs(), id) {
			return userErrorf("unknown column %q", id)
		}
		g.HideColumn(id)
	}

	snap := g.Snapshot()
	if c.flagJSON {
		return renderJSON(cmd.OutOrStdout(), snap)
	}
	newPrinter(cmd.OutOrStdout()).render(snap)
	return nil
}

// recordOptions are the grid options for one dataset.
type recordOptions struct {
	types.Options[grid.Record]
}

func (o recordOptions) columnIDs() []string {
	ids := make([]string, len(o.Columns))
	for i, col := range o.Columns {
		ids[i] = col.ID
	}
	return ids
}

// gridOptions loads dataset name and builds the engine options for it.
// Listed columns come first and are the only visible ones; the rest stay
// registered but hidden.
func (c *cli) gridOptions(ctx context.Context, store *rowstore.Store, name string, columns []string, f *rowFlags) (recordOptions, error) {
	where, err := parseKeyValues("where", f.where)
	if err != nil {
		return recordOptions{}, err
	}
	fields, err := store.Fields(ctx, name)
	if err != nil {
		return recordOptions{}, datasetError(name, err)
	}
	records, err := store.Fetch(ctx, name, where)
	if err != nil {
		return recordOptions{}, datasetError(name, err)
	}
	cfg, err := engineConfig(c.cfg)
	if err != nil {
		return recordOptions{}, &userError{err: err}
	}

	for _, col := range columns {
		if !slices.Contains(fields, col) {
			return recordOptions{}, userErrorf("unknown column %q", col)
		}
	}
	ordered := fields
	if len(columns) > 0 {
		ordered = append([]string(nil), columns...)
		for _, field := range fields {
			if !slices.Contains(columns, field) {
				ordered = append(ordered, field)
			}
		}
	}

	opts := types.Options[grid.Record]{
		Columns:          grid.RecordColumns(ordered),
		Identify:         grid.RecordID(store.IDField()),
		Rows:             records,
		Filter:           grid.RecordFilter(),
		Selectable:       true,
		InitialVisible:   columns,
		Config:           cfg,
		Logger:           c.logger,
		EmptyTitle:       "No records found",
		EmptyDescription: fmt.Sprintf("Dataset %q has no records to display.", name),
	}
	if f.fuzzy < 0 {
		return recordOptions{}, userErrorf("--fuzzy must not be negative")
	}
	if f.fuzzy > 0 {
		opts.Matcher = grid.FuzzyMatcher[grid.Record]{Text: recordText(fields), MaxDistance: f.fuzzy}
	}
	return recordOptions{Options: opts}, nil
}

// recordText joins every field value of a record for fuzzy search.
func recordText(fields []string) func(grid.Record) string {
	return func(r grid.Record) string {
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			if v, ok := r[field]; ok && v != nil {
				parts = append(parts, fmt.Sprint(v))
			}
		}
		return strings.Join(parts, "\n")
	}
}

func newGrid(opts recordOptions) (*grid.Grid[grid.Record], error) {
	g, err := grid.New(opts.Options)
	if err != nil {
		if errors.Is(err, types.ErrUnknownColumn) {
			return nil, &userError{err: err}
		}
		return nil, fmt.Errorf("build grid: %w", err)
	}
	return g, nil
}

// applyRowFlags feeds search, filter, and selection flags to g as user
// events. With strict set, every --select id must exist.
func applyRowFlags(g *grid.Grid[grid.Record], f *rowFlags, strict bool) error {
	filters, err := parseKeyValues("filter", f.filters)
	if err != nil {
		return err
	}
	g.SetQuery(f.query)
	for k, v := range filters {
		g.SetFilter(k, v)
	}

	if f.selectAll {
		g.ToggleAll()
		return nil
	}
	for _, id := range f.selects {
		if g.IsSelected(id) {
			continue
		}
		if !g.ToggleRow(id) && strict {
			return userErrorf("no record with id %q", id)
		}
	}
	return nil
}
