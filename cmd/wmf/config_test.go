package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relfind/wmf/bounds"
)

func TestLoadBounds_ParsesRelationsAndAtoms(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "b.yaml")
	content := "universeSize: 4\n" +
		"intAtoms: [2, 3]\n" +
		"relations:\n" +
		"  Edge:\n" +
		"    arity: 2\n" +
		"    quantitative: false\n" +
		"    lower: []\n" +
		"    upper: [0, 1, 5]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	b, err := loadBounds(path)
	require.NoError(t, err)
	require.Equal(t, 4, b.UniverseSize)
	require.True(t, b.IntAtoms.Contains(2))
	require.True(t, b.IntAtoms.Contains(3))

	rb, ok := b.Relations[bounds.RelationID("Edge")]
	require.True(t, ok)
	require.Equal(t, 2, rb.Arity)
	require.False(t, rb.Quantitative)
	require.True(t, rb.Upper.Contains(5))
	require.False(t, rb.Upper.Contains(2))
}

func TestLoadBounds_MissingFileFails(t *testing.T) {
	t.Parallel()
	_, err := loadBounds(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
