package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "N38E092.SRTMGL1.hgt"), []byte{0, 0}, 0o644))

	assert.True(t, FileExists(filepath.Join(dir, "N38E092.SRTMGL1.hgt")))
	assert.False(t, FileExists(filepath.Join(dir, "N39E092.SRTMGL1.hgt")))

	assert.Equal(t,
		[]string{"N39E092.SRTMGL1.hgt", "N38E093.SRTMGL1.hgt"},
		MissingFiles(dir, []string{"N38E092.SRTMGL1.hgt", "N39E092.SRTMGL1.hgt", "N38E093.SRTMGL1.hgt"}))

	assert.Empty(t, MissingFiles(dir, nil))
}
