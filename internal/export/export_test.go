package export_test

import (
	"os"
	"path"
	"testing"

	"github.com/courtkeep/courtkeep/internal/export"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "ballers", export.Slugify("Ballers"))
	require.Equal(t, "the-fighting-mongooses", export.Slugify("  The  Fighting\tMongooses "))
	require.Empty(t, export.Slugify("   "))
}

func TestFilename(t *testing.T) {
	require.Equal(t, "ballers-vs-bricks-box-score.png", export.Filename([]string{"Ballers", "Bricks"}))
	require.Equal(t, "ballers-box-score.png", export.Filename([]string{"Ballers", "  "}))
	require.Equal(t, "game-box-score.png", export.Filename(nil))
	require.Equal(t, "game-box-score.png", export.Filename([]string{"", ""}))
}

func TestSave(t *testing.T) {
	dir := path.Join(t.TempDir(), "nested")
	exporter := export.New("", dir)
	require.False(t, exporter.CanShare())

	target, err := exporter.Save([]byte("png bytes"), []string{"Ballers", "Bricks"})
	require.NoError(t, err)
	require.Equal(t, path.Join(dir, "ballers-vs-bricks-box-score.png"), target)

	body, errRead := os.ReadFile(target)
	require.NoError(t, errRead)
	require.Equal(t, "png bytes", string(body))
}

func TestShareRunsCommand(t *testing.T) {
	dir := t.TempDir()
	exporter := export.New("true", dir)
	require.True(t, exporter.CanShare())

	target, err := exporter.Share(t.Context(), "Ballers vs Bricks", []byte("png"), []string{"Ballers", "Bricks"})
	require.NoError(t, err)
	require.FileExists(t, target)
}

func TestShareCommandFailure(t *testing.T) {
	exporter := export.New("false", t.TempDir())

	target, err := exporter.Share(t.Context(), "title", []byte("png"), []string{"x"})
	require.ErrorIs(t, err, export.ErrShare)
	// The file is still saved even when the command bails.
	require.FileExists(t, target)
}
