package file_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuasibox/box-register/internal/storage/file"
)

func TestWriteJSON(t *testing.T) {
	t.Run("Should write indented json with non-ASCII text kept verbatim", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.json")

		require.NoError(t, file.WriteJSON(path, []map[string]string{{"category": "Películas Estirables & Co"}}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Películas Estirables & Co")
		assert.Contains(t, string(data), "\n        \"category\"")
	})

	t.Run("Should keep the previous file when the write fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.json")
		require.NoError(t, file.WriteJSON(path, []string{"first"}))

		err := file.WriteAtomic(path, 0o644, func(w io.Writer) error {
			_, _ = w.Write([]byte(`["half`))
			return errors.New("crash")
		})
		require.Error(t, err)

		var got []string
		require.NoError(t, file.ReadJSON(path, &got))
		assert.Equal(t, []string{"first"}, got)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must be cleaned up")
	})
}

func TestReadJSON(t *testing.T) {
	t.Run("Should report a missing file as not exist", func(t *testing.T) {
		var got []string
		err := file.ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &got)

		require.Error(t, err)
		assert.True(t, file.IsNotExist(err))
	})

	t.Run("Should treat an empty file as an empty document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

		var got []string
		require.NoError(t, file.ReadJSON(path, &got))
		assert.Empty(t, got)
	})

	t.Run("Should fail on invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		var got []string
		err := file.ReadJSON(path, &got)
		require.Error(t, err)
		assert.False(t, file.IsNotExist(err))
	})
}
