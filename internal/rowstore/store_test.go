// Tests for the row store.
package rowstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersJSONL = `{"id":"u1","name":"Bob","role":"admin","age":40}
{"id":"u2","name":"ana","role":"viewer","age":null}
{"id":"u3","name":"Ann","role":"Admin","age":25,"team":"dev"}
`

func attachStore(t *testing.T, files map[string]string) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	s := New()
	require.NoError(t, s.Attach(Config{DataDir: dir}))
	t.Cleanup(func() { s.Detach() })
	return s, dir
}

func recordIDs(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r["id"].(string)
	}
	return out
}

func TestStore_AttachDetach(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s := New()
	require.NoError(t, s.Attach(Config{DataDir: dir}))
	assert.FileExists(t, filepath.Join(dir, dbFile))
	assert.Equal(t, DefaultIDField, s.IDField())

	assert.ErrorIs(t, s.Attach(Config{DataDir: dir}), ErrAlreadyAttached)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach(), "detach is idempotent")

	_, err := s.Datasets()
	assert.ErrorIs(t, err, ErrDetached)
	_, err = s.Fetch(context.Background(), "users", nil)
	assert.ErrorIs(t, err, ErrDetached)
}

func TestStore_Datasets(t *testing.T) {
	s, _ := attachStore(t, map[string]string{
		"users.jsonl":  usersJSONL,
		"events.jsonl": "",
		"notes.txt":    "ignored",
	})
	names, err := s.Datasets()
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "users"}, names)
}

func TestStore_Fetch(t *testing.T) {
	s, _ := attachStore(t, map[string]string{"users.jsonl": usersJSONL})
	ctx := context.Background()

	tests := []struct {
		name  string
		where map[string]string
		want  []string
	}{
		{"all records in file order", nil, []string{"u1", "u2", "u3"}},
		{"case-insensitive match", map[string]string{"role": "ADMIN"}, []string{"u1", "u3"}},
		{"numbers compare as text", map[string]string{"age": "25"}, []string{"u3"}},
		{"conditions combine", map[string]string{"role": "admin", "team": "dev"}, []string{"u3"}},
		{"missing field matches nothing", map[string]string{"team": "ops"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.Fetch(ctx, "users", tt.where)
			require.NoError(t, err)
			got := recordIDs(recs)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	recs, err := s.Fetch(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, json.Number("40"), recs[0]["age"])
	assert.Nil(t, recs[1]["age"])
}

func TestStore_FetchErrors(t *testing.T) {
	s, _ := attachStore(t, nil)
	ctx := context.Background()

	_, err := s.Fetch(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	for _, bad := range []string{"", "..", "../etc/passwd", `a\b`} {
		_, err := s.Fetch(ctx, bad, nil)
		assert.ErrorIs(t, err, ErrInvalidDataset, "name %q", bad)
	}
}

func TestStore_FieldsAndCount(t *testing.T) {
	s, _ := attachStore(t, map[string]string{"users.jsonl": usersJSONL})
	ctx := context.Background()

	fields, err := s.Fields(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "role", "age", "team"}, fields)

	n, err := s.Count(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_AssignsMissingIDs(t *testing.T) {
	s, dir := attachStore(t, map[string]string{
		"notes.jsonl": "{\"title\":\"first\"}\n{\"id\":\"n2\",\"title\":\"second\"}\n",
	})
	ctx := context.Background()

	recs, err := s.Fetch(ctx, "notes", nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assigned, ok := recs[0]["id"].(string)
	require.True(t, ok)
	assert.Len(t, assigned, 36)
	assert.Equal(t, "n2", recs[1]["id"])

	data, err := os.ReadFile(filepath.Join(dir, "notes.jsonl"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"id":"`+assigned+`","title":"first"}`),
		"assigned ids are persisted")
}

func TestStore_CustomIDField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.jsonl"),
		[]byte("{\"sku\":101,\"name\":\"a\"}\n{\"sku\":102,\"name\":\"b\"}\n"), 0o644))

	s := New()
	require.NoError(t, s.Attach(Config{DataDir: dir, IDField: "sku"}))
	defer s.Detach()

	n, err := s.Delete(context.Background(), "items", []string{"101"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(dir, "items.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "{\"sku\":102,\"name\":\"b\"}\n", string(data))
}

func TestStore_Delete(t *testing.T) {
	s, dir := attachStore(t, map[string]string{"users.jsonl": usersJSONL})
	ctx := context.Background()

	n, err := s.Delete(ctx, "users", []string{"u1", "u3", "u9"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs, err := s.Fetch(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, recordIDs(recs))

	data, err := os.ReadFile(filepath.Join(dir, "users.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"u2\",\"name\":\"ana\",\"role\":\"viewer\",\"age\":null}\n", string(data),
		"untouched lines are written back verbatim")

	count, err := s.Count(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	n, err = s.Delete(ctx, "users", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Delete(ctx, "users", []string{"u9"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_DeleteKeepsUnparsedLines(t *testing.T) {
	content := "{\"id\":\"a\"}\n# note\n{\"id\":\"b\"}\n{\"id\":\"c\", broken\n"
	s, dir := attachStore(t, map[string]string{"mixed.jsonl": content})
	ctx := context.Background()

	n, err := s.Count(ctx, "mixed")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Delete(ctx, "mixed", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(dir, "mixed.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "# note\n{\"id\":\"b\"}\n{\"id\":\"c\", broken\n", string(data))

	recs, err := s.Fetch(ctx, "mixed", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, recordIDs(recs))
}

func TestStore_AssignIDsKeepsUnparsedLines(t *testing.T) {
	s, dir := attachStore(t, map[string]string{
		"notes.jsonl": "{\"title\":\"first\"}\nnot json\n{\"id\":\"n2\",\"title\":\"second\"}\n",
	})

	recs, err := s.Fetch(context.Background(), "notes", nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assigned := recs[0]["id"].(string)

	data, err := os.ReadFile(filepath.Join(dir, "notes.jsonl"))
	require.NoError(t, err)
	want := "{\"id\":\"" + assigned + "\",\"title\":\"first\"}\nnot json\n{\"id\":\"n2\",\"title\":\"second\"}\n"
	assert.Equal(t, want, string(data))
}

func TestStore_DeleteEvictsWhenRewriteFails(t *testing.T) {
	s, dir := attachStore(t, map[string]string{"users.jsonl": usersJSONL})
	ctx := context.Background()
	path := filepath.Join(dir, "users.jsonl")

	_, err := s.Count(ctx, "users")
	require.NoError(t, err)

	// A non-empty directory in place of the file makes the rename fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o644))

	_, err = s.Delete(ctx, "users", []string{"u1"})
	require.Error(t, err)

	require.NoError(t, os.RemoveAll(path))
	require.NoError(t, os.WriteFile(path, []byte(usersJSONL), 0o644))

	recs, err := s.Fetch(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, recordIDs(recs),
		"the dataset reloads from the file after a failed rewrite")
}

func TestStore_ReloadsAfterReattach(t *testing.T) {
	s, dir := attachStore(t, map[string]string{"users.jsonl": usersJSONL})
	ctx := context.Background()

	_, err := s.Delete(ctx, "users", []string{"u2"})
	require.NoError(t, err)
	require.NoError(t, s.Detach())

	require.NoError(t, s.Attach(Config{DataDir: dir}))
	recs, err := s.Fetch(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, recordIDs(recs))
}
