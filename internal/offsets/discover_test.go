package offsets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCandidatesOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"2k26_offsets.json", "2K26_Offsets.json", "offsets.json"},
		DiscoverCandidates("NBA2K26.exe"))

	// No generation marker: only the generic fallback.
	assert.Equal(t, []string{"offsets.json"}, DiscoverCandidates("game.exe"))
}

func TestLoadPrefersVersionSpecificBundle(t *testing.T) {
	dir := t.TempDir()

	generic := `{"offsets": [{"category": "Vitals", "name": "First Name", "address": 0, "length": 16, "type": "wstring"}]}`
	specific := `{"offsets": [{"category": "Vitals", "name": "First Name", "address": 8, "length": 20, "type": "wstring"}]}`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "offsets.json"), []byte(generic), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2k26_offsets.json"), []byte(specific), 0o644))

	doc, err := Load([]string{dir}, "NBA2K26.exe")
	require.NoError(t, err)
	assert.Equal(t, int64(8), doc.Fields[0].Offset)
	assert.Equal(t, filepath.Join(dir, "2k26_offsets.json"), doc.Path)
}

func TestLoadFallsPastBrokenBundle(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "2k26_offsets.json"), []byte("not json"), 0o644))

	good := `{"offsets": [{"category": "Vitals", "name": "First Name", "address": 0, "length": 16, "type": "wstring"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "offsets.json"), []byte(good), 0o644))

	doc, err := Load([]string{dir}, "NBA2K26.exe")
	require.NoError(t, err)
	assert.Len(t, doc.Fields, 1)
}

func TestLoadNothingFound(t *testing.T) {
	_, err := Load([]string{t.TempDir()}, "NBA2K26.exe")
	assert.ErrorIs(t, err, ErrEmptySchema)
}
