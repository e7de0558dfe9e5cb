package staging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go-analytics-pipeline/internal/staging"
)

func backends(t *testing.T) map[string]staging.Store {
	t.Helper()
	fs, err := staging.NewFSStore(t.TempDir())
	require.NoError(t, err)
	return map[string]staging.Store{
		"fs":     fs,
		"memory": staging.NewMemStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, staging.DocRawInput)
			require.ErrorIs(t, err, staging.ErrNotFound)

			require.NoError(t, store.Put(ctx, staging.DocRawInput, []byte(`{"a":1}`)))
			got, err := store.Get(ctx, staging.DocRawInput)
			require.NoError(t, err)
			require.Equal(t, `{"a":1}`, string(got))

			// A second write fully supersedes the first.
			require.NoError(t, store.Put(ctx, staging.DocRawInput, []byte(`{"b":2}`)))
			got, err = store.Get(ctx, staging.DocRawInput)
			require.NoError(t, err)
			require.Equal(t, `{"b":2}`, string(got))

			require.NoError(t, store.Delete(ctx, staging.DocRawInput))
			_, err = store.Get(ctx, staging.DocRawInput)
			require.ErrorIs(t, err, staging.ErrNotFound)

			// Deleting a missing document is not an error.
			require.NoError(t, store.Delete(ctx, staging.DocRawInput))
		})
	}
}

func TestFSStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := staging.NewFSStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, staging.DocReport, []byte("x")))
	require.NoError(t, store.Put(ctx, staging.DocReport, []byte("y")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, staging.DocReport, entries[0].Name())
}

func TestFSStoreIgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := staging.NewFSStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "../escape.json", []byte("x")))

	// The document lands inside the staging dir under its base name.
	_, err = os.Stat(filepath.Join(dir, "escape.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	require.True(t, os.IsNotExist(err))
}

func TestJSONHelpers(t *testing.T) {
	store := staging.NewMemStore()
	ctx := context.Background()

	type doc struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	require.NoError(t, staging.PutJSON(ctx, store, staging.DocAnalytics, doc{Name: "x", Value: 1.5}))

	var got doc
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocAnalytics, &got))
	require.Equal(t, doc{Name: "x", Value: 1.5}, got)

	require.Error(t, staging.GetJSON(ctx, store, staging.DocReport, &got))
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	fs, err := staging.Open("fs", dir)
	require.NoError(t, err)
	require.IsType(t, &staging.FSStore{}, fs)

	mem, err := staging.Open("memory", dir)
	require.NoError(t, err)
	require.IsType(t, &staging.MemStore{}, mem)

	_, err = staging.Open("redis", dir)
	require.Error(t, err)
}

func TestIsKnownDocument(t *testing.T) {
	require.True(t, staging.IsKnownDocument("raw_input.json"))
	require.True(t, staging.IsKnownDocument("report_summary.txt"))
	require.False(t, staging.IsKnownDocument("secrets.json"))
	require.False(t, staging.IsKnownDocument(""))
}
