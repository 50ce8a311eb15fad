// Text and JSON rendering of grid snapshots.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mesh-intelligence/gridview/pkg/grid"
	"github.com/mesh-intelligence/gridview/pkg/types"
)

const maxColumnWidth = 40

type snapshot = types.Snapshot[grid.Record]

// highlightColors maps row classes to ANSI colors. Plain writers get no
// color because the renderer detects a non-terminal.
var highlightColors = map[types.Highlight]lipgloss.Color{
	types.HighlightWarning: lipgloss.Color("3"),
	types.HighlightDanger:  lipgloss.Color("1"),
	types.HighlightSuccess: lipgloss.Color("2"),
	types.HighlightInfo:    lipgloss.Color("4"),
	types.HighlightNew:     lipgloss.Color("5"),
}

type printer struct {
	out    io.Writer
	header lipgloss.Style
	rows   map[types.Highlight]lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	r := lipgloss.NewRenderer(out)
	p := &printer{
		out:    out,
		header: r.NewStyle().Bold(true),
		rows:   make(map[types.Highlight]lipgloss.Style, len(highlightColors)),
	}
	for h, c := range highlightColors {
		p.rows[h] = r.NewStyle().Foreground(c)
	}
	return p
}

// renderJSON writes the snapshot as indented JSON.
func renderJSON(out io.Writer, snap snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// render writes the snapshot in its view mode.
func (p *printer) render(snap snapshot) {
	switch snap.Mode {
	case types.RenderLoading:
		fmt.Fprintln(p.out, "Loading…")
		return
	case types.RenderEmpty:
		fmt.Fprintln(p.out, p.header.Render(snap.EmptyTitle))
		fmt.Fprintln(p.out, snap.EmptyDescription)
		p.footer(snap)
		return
	}

	switch snap.View.Mode {
	case types.ModeCard:
		p.cards(snap)
	case types.ModeCompact:
		p.compact(snap)
	default:
		p.table(snap)
	}
	p.footer(snap)
}

func (p *printer) line(h types.Highlight, s string) {
	if style, ok := p.rows[h]; ok {
		s = style.Render(s)
	}
	fmt.Fprintln(p.out, s)
}

func (p *printer) table(snap snapshot) {
	dense := snap.Density == types.DensityDense
	gap := "  "
	if dense {
		gap = " "
	}

	headers := make([]string, 0, len(snap.Columns)+2)
	if snap.Selectable {
		headers = append(headers, checkbox(snap.Selection.AllSelected, snap.Selection.SomeSelected))
	}
	for _, c := range snap.Columns {
		headers = append(headers, c.Header+sortIndicator(c.Sorted))
	}
	if snap.Highlighting {
		headers = append(headers, "HL")
	}

	cells := make([][]string, len(snap.Rows))
	for i, row := range snap.Rows {
		line := make([]string, 0, len(headers))
		if snap.Selectable {
			line = append(line, checkbox(row.Selected, false))
		}
		for _, c := range row.Cells {
			line = append(line, cellText(c.Display))
		}
		if snap.Highlighting {
			line = append(line, highlightLabel(row.Highlight))
		}
		cells[i] = line
	}

	widths := columnWidths(headers, cells)
	head := joinPadded(headers, widths, gap)
	fmt.Fprintln(p.out, p.header.Render(head))
	if !dense {
		fmt.Fprintln(p.out, strings.Repeat("─", runewidth.StringWidth(head)))
	}
	for i, row := range snap.Rows {
		p.line(row.Highlight, joinPadded(cells[i], widths, gap))
	}
}

func (p *printer) cards(snap snapshot) {
	dense := snap.Density == types.DensityDense
	labelWidth := 0
	for _, c := range snap.Columns {
		labelWidth = max(labelWidth, runewidth.StringWidth(c.Header))
	}

	for i, row := range snap.Rows {
		if i > 0 && !dense {
			fmt.Fprintln(p.out)
		}
		title := row.ID
		if snap.Selectable {
			title = checkbox(row.Selected, false) + " " + title
		}
		if snap.Highlighting && row.Highlight != types.HighlightNone {
			title += " (" + highlightLabel(row.Highlight) + ")"
		}
		p.line(row.Highlight, p.header.Render(title))
		for j, c := range row.Cells {
			label := runewidth.FillRight(snap.Columns[j].Header+":", labelWidth+1)
			fmt.Fprintf(p.out, "  %s %s\n", label, truncate(cellText(c.Display)))
		}
	}
}

func (p *printer) compact(snap snapshot) {
	for _, row := range snap.Rows {
		parts := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			if s := cellText(c.Display); s != "" {
				parts = append(parts, truncate(s))
			}
		}
		line := strings.Join(parts, " · ")
		if snap.Selectable {
			line = checkbox(row.Selected, false) + " " + line
		}
		p.line(row.Highlight, line)
	}
}

func (p *printer) footer(snap snapshot) {
	if snap.Query != "" || snap.ActiveFilters > 0 {
		fmt.Fprintf(p.out, "Showing %d of %d row(s)\n", len(snap.Rows), snap.TotalRows)
	} else {
		fmt.Fprintf(p.out, "Total: %d row(s)\n", snap.TotalRows)
	}
	if snap.Selectable && snap.Selection.Count > 0 {
		fmt.Fprintf(p.out, "Selected: %d\n", snap.Selection.Count)
	}
	if len(snap.DuplicateIDs) > 0 {
		fmt.Fprintf(p.out, "Duplicate ids: %s\n", strings.Join(snap.DuplicateIDs, ", "))
	}
}

func checkbox(on, partial bool) string {
	switch {
	case on:
		return "[x]"
	case partial:
		return "[-]"
	default:
		return "[ ]"
	}
}

func sortIndicator(d types.Direction) string {
	switch d {
	case types.Asc:
		return " ▲"
	case types.Desc:
		return " ▼"
	default:
		return ""
	}
}

func highlightLabel(h types.Highlight) string {
	if h == types.HighlightNone {
		return ""
	}
	return h.String()
}

// cellText is the single-line string form of a cell value.
func cellText(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprint(v)
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	return runewidth.Truncate(s, maxColumnWidth, "…")
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
		for _, row := range rows {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

func joinPadded(cells []string, widths []int, gap string) string {
	parts := make([]string, len(cells))
	for i, s := range cells {
		s = runewidth.Truncate(s, widths[i], "…")
		if i == len(cells)-1 {
			parts[i] = s
			continue
		}
		parts[i] = runewidth.FillRight(s, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, gap), " ")
}
