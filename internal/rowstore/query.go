package rowstore

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Record is one decoded dataset row. Numbers decode as json.Number.
type Record = map[string]any

func (s *Store) pathLocked(name string) string {
	return filepath.Join(s.dataDir, name+datasetExt)
}

// Fields returns the top-level fields of dataset name in order of first
// appearance.
func (s *Store) Fields(ctx context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return slices.Clone(ds.fields), nil
}

// Count returns the number of records in dataset name.
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx, name)
	if err != nil {
		return 0, err
	}
	return ds.count, nil
}

// Fetch returns the records of dataset name in file order. Each where entry
// keeps records whose field equals the value, ignoring case; the match runs
// in SQLite over the stored JSON.
func (s *Store) Fetch(ctx context.Context, name string, where map[string]string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.load(ctx, name); err != nil {
		return nil, err
	}

	query, args := fetchQuery(name, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", name, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", name, err)
		}
		rec, err := decodeRecord([]byte(body))
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	s.log.Debug("fetched records", "dataset", name, "where", len(where), "records", len(out))
	return out, nil
}

// fetchQuery builds the SELECT for Fetch. Conditions are emitted in key
// order so the statement is deterministic.
func fetchQuery(name string, where map[string]string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT body FROM records WHERE dataset = ?")
	args := []any{name}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		sb.WriteString(" AND LOWER(CAST(json_extract(body, ?) AS TEXT)) = LOWER(?)")
		args = append(args, jsonPath(k), where[k])
	}
	sb.WriteString(" ORDER BY seq")
	return sb.String(), args
}

// jsonPath quotes a field name as a top-level JSON path.
func jsonPath(field string) string {
	return "$." + strconv.Quote(field)
}

// Delete removes the records of dataset name whose identity is in ids and
// rewrites the JSONL file atomically. It returns the number removed.
func (s *Store) Delete(ctx context.Context, name string, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx, name)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, 0, len(ids)+1)
	args = append(args, name)
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM records WHERE dataset = ? AND record_id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", name, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	if removed == 0 {
		return 0, nil
	}

	rows, err := tx.QueryContext(ctx, "SELECT seq, body FROM records WHERE dataset = ? ORDER BY seq", name)
	if err != nil {
		return 0, fmt.Errorf("reading remaining records: %w", err)
	}
	kept := maps.Clone(ds.unparsed)
	if kept == nil {
		kept = make(map[int][]byte)
	}
	remaining := 0
	for rows.Next() {
		var (
			seq  int
			body string
		)
		if err := rows.Scan(&seq, &body); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning remaining records: %w", err)
		}
		kept[seq] = []byte(body)
		remaining++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("reading remaining records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing delete: %w", err)
	}

	lines := make([][]byte, 0, len(kept))
	for _, seq := range slices.Sorted(maps.Keys(kept)) {
		lines = append(lines, kept[seq])
	}
	if err := writeJSONL(ds.path, lines); err != nil {
		s.evict(ctx, name)
		return 0, fmt.Errorf("persisting %s: %w", name, err)
	}

	ds.count = remaining
	s.log.Info("records deleted", "dataset", name, "removed", removed, "remaining", ds.count)
	return int(removed), nil
}

// evict drops dataset name from the cache so the next access reloads it
// from its JSONL file.
func (s *Store) evict(ctx context.Context, name string) {
	delete(s.loaded, name)
	if _, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE dataset = ?", name); err != nil {
		s.log.Warn("evicting dataset", "dataset", name, "error", err)
	}
}
