package assets

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeAsset(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestEmbeddedWoodProperty(t *testing.T) {
	s, err := New("", discardLogger())
	require.NoError(t, err)

	wp, err := s.WorldProperty(WoodProperty)
	require.NoError(t, err)
	assert.Equal(t, "wood", wp.Code)
	assert.Contains(t, wp.Codes(), "oak")
	assert.Contains(t, wp.Codes(), "pine")
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, WoodProperty, `{"code":"wood","variants":[{"code":"ebony"},{"code":"kapok"}]}`)

	s, err := New(dir, discardLogger())
	require.NoError(t, err)

	wp, err := s.WorldProperty(WoodProperty)
	require.NoError(t, err)
	assert.Equal(t, []string{"ebony", "kapok"}, wp.Codes())
}

func TestWorldPropertyValidation(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "not json", content: `{`},
		{name: "missing variants", content: `{"code":"wood"}`},
		{name: "empty variants", content: `{"code":"wood","variants":[]}`},
		{name: "bad variant code", content: `{"code":"wood","variants":[{"code":"Oak Tree"}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeAsset(t, dir, "worldproperties/block/custom.json", tc.content)

			s, err := New(dir, discardLogger())
			require.NoError(t, err)

			_, err = s.WorldProperty("worldproperties/block/custom.json")
			require.Error(t, err)
		})
	}
}

func TestMissingAsset(t *testing.T) {
	s, err := New("", discardLogger())
	require.NoError(t, err)

	_, err = s.WorldProperty("worldproperties/block/nope.json")
	require.ErrorIs(t, err, ErrNotFound)

	_, ok := s.TryGet("../secrets.json")
	assert.False(t, ok)
}

func TestMissingAssetDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), discardLogger())
	require.Error(t, err)
}
