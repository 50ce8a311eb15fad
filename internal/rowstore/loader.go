// This file implements loading a dataset's JSONL file into SQLite.
package rowstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
)

// load makes sure dataset name is in the cache and returns its entry.
// The caller must hold s.mu for writing.
func (s *Store) load(ctx context.Context, name string) (*dataset, error) {
	if !s.attached {
		return nil, ErrDetached
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if ds, ok := s.loaded[name]; ok {
		return ds, nil
	}

	path := s.pathLocked(name)
	lines, err := readJSONL(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	if assigned := s.assignIDs(lines); assigned > 0 {
		if err := writeJSONL(path, rawLines(lines)); err != nil {
			return nil, fmt.Errorf("persisting assigned ids: %w", err)
		}
		s.log.Info("assigned ids to records", "dataset", name, "count", assigned)
	}

	ds := &dataset{path: path, unparsed: make(map[int][]byte)}
	var records []json.RawMessage
	for i, l := range lines {
		if l.record {
			records = append(records, l.raw)
			continue
		}
		ds.unparsed[i] = l.raw
	}
	ds.count = len(records)
	ds.fields = fieldsOf(records)
	if len(ds.unparsed) > 0 {
		s.log.Warn("skipped lines that are not JSON objects", "dataset", name, "count", len(ds.unparsed))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertRecords(ctx, tx, name, lines); err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load transaction: %w", err)
	}

	s.loaded[name] = ds
	s.log.Debug("dataset loaded", "dataset", name, "records", ds.count, "fields", len(ds.fields))
	return ds, nil
}

// insertRecords stores each record with its line position and identity.
func (s *Store) insertRecords(ctx context.Context, tx *sql.Tx, name string, lines []jsonlLine) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (dataset, seq, record_id, body) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		if !l.record {
			continue
		}
		id, _ := s.recordID(l.raw)
		if _, err := stmt.ExecContext(ctx, name, i, id, string(l.raw)); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}
	return nil
}

// recordID returns the identity of rec in the same string form the engine
// sees after decoding. The second result is false when the field is absent
// or null.
func (s *Store) recordID(rec json.RawMessage) (string, bool) {
	obj, err := decodeRecord(rec)
	if err != nil {
		return "", false
	}
	v, ok := obj[s.idField]
	if !ok || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

// assignIDs gives every record lacking an identity a fresh UUID v7, placed
// as the first field so the rest of the line is untouched. It returns the
// number of records changed.
func (s *Store) assignIDs(lines []jsonlLine) int {
	n := 0
	for i, l := range lines {
		if !l.record {
			continue
		}
		if _, ok := s.recordID(l.raw); ok {
			continue
		}
		lines[i].raw = withField(l.raw, s.idField, generateID())
		n++
	}
	return n
}

// rawLines returns the bytes of every line in order.
func rawLines(lines []jsonlLine) [][]byte {
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = l.raw
	}
	return out
}

// withField prepends "field": value to a JSON object, dropping an existing
// null entry for field.
func withField(rec json.RawMessage, field, value string) json.RawMessage {
	if obj, err := decodeRecord(rec); err == nil {
		if _, present := obj[field]; present {
			delete(obj, field)
			if b, err := json.Marshal(obj); err == nil {
				rec = b
			}
		}
	}

	rest := bytes.TrimSpace(rec[1:])
	var b bytes.Buffer
	b.WriteByte('{')
	b.WriteString(strconv.Quote(field))
	b.WriteByte(':')
	b.WriteString(strconv.Quote(value))
	if len(rest) > 0 && rest[0] != '}' {
		b.WriteByte(',')
	}
	b.Write(rest)
	return b.Bytes()
}

// fieldsOf returns every top-level key across records in order of first
// appearance.
func fieldsOf(records []json.RawMessage) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, rec := range records {
		keys, err := objectKeys(rec)
		if err != nil {
			continue
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	return fields
}
