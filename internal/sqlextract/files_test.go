package sqlextract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFromFiles_MergesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sql"), "CREATE TABLE marts.x AS SELECT * FROM raw.a")
	writeFile(t, filepath.Join(dir, "b.sql"), "CREATE VIEW marts.y AS SELECT * FROM marts.x")

	tables, err := FromFiles(context.Background(), filepath.Join(dir, "*.sql"), discardLogger())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "marts.x", tables[0].ID)
	assert.Equal(t, "marts.y", tables[1].ID)
}

func TestFromFiles_LaterPathWinsOnDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sql"), "CREATE TABLE marts.x AS SELECT * FROM raw.old")
	writeFile(t, filepath.Join(dir, "b.sql"), "CREATE TABLE marts.x AS SELECT * FROM raw.new")

	tables, err := FromFiles(context.Background(), filepath.Join(dir, "*.sql"), discardLogger())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"raw.new"}, tables[0].SelectFrom)
}

func TestFromFiles_NoMatches(t *testing.T) {
	_, err := FromFiles(context.Background(), filepath.Join(t.TempDir(), "*.sql"), discardLogger())
	assert.Error(t, err)
}

func TestFromFiles_RecursivePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.sql"), "CREATE TABLE marts.top AS SELECT * FROM raw.a")
	writeFile(t, filepath.Join(dir, "sub", "deep.sql"), "CREATE TABLE marts.deep AS SELECT * FROM raw.b")
	writeFile(t, filepath.Join(dir, "sub", "notes.txt"), "not sql")

	tables, err := FromFiles(context.Background(), filepath.Join(dir, "**", "*.sql"), discardLogger())
	require.NoError(t, err)
	require.Len(t, tables, 2)

	ids := []string{tables[0].ID, tables[1].ID}
	assert.Contains(t, ids, "marts.top")
	assert.Contains(t, ids, "marts.deep")
}

func TestExpandGlob_PlainPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.sql"), "")
	writeFile(t, filepath.Join(dir, "two.txt"), "")

	paths, err := expandGlob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "one.sql"), paths[0])
}
