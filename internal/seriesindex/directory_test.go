package seriesindex

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, fsys afero.Fs, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, name)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte("x"), 0o644))
	}
}

func TestBuildFromDirectory(t *testing.T) {
	require := require.New(t)

	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/series",
		"Chuck/Staffel 01/S01E01 - Episode 01.mkv",
		"Chuck/Staffel 01/S01E02 - Episode 02.MP4",
		"Chuck/Staffel 01/S01E03 - Episode 03.nfo",
		"Chuck/Staffel 02/S02E01 - Episode 01.avi",
		"Chuck/Extras/Making Of.mkv",
		"Criminal Minds/Staffel 01/S01E01 - Episode 01.mkv",
		"Criminal Minds/cover.jpg",
		"S01E05 - stray file.mkv",
	)
	require.NoError(fsys.MkdirAll("/series/Empty Show", 0o755))

	ix := New()
	require.NoError(ix.BuildFromDirectory(fsys, "/series", "de"))

	require.Equal([]string{"Chuck", "Criminal Minds", "Empty Show"}, ix.SeriesNames())

	require.True(ix.EpisodeExisting("Chuck", "Chuck.S01E01.German", "de"))
	require.True(ix.EpisodeExisting("Chuck", "Chuck.S01E02.German", "de"))
	require.False(ix.EpisodeExisting("Chuck", "Chuck.S01E03.German", "de"))
	require.True(ix.EpisodeExisting("Chuck", "Chuck.S02E01.German", "de"))
	require.False(ix.EpisodeExisting("Chuck", "Chuck.S01E01.German", "en"))
	require.True(ix.EpisodeExisting("Criminal Minds", "S01E01", "de"))
	require.False(ix.EpisodeExisting("Criminal Minds", "S01E02", "de"))

	chuck, ok := ix.Series("Chuck")
	require.True(ok)
	require.Equal(3, chuck.RealCount("de"))
	filename, ok := chuck.Entries("de")[0].Entry.Filename()
	require.True(ok)
	require.Equal("S01E01 - Episode 01.mkv", filename)

	require.False(ix.IsSeriesInThisLanguage("Empty Show", "de"))
	require.True(ix.IsSeriesInIndex("Empty Show", true))
}

func TestBuildFromDirectoryExtraExtensions(t *testing.T) {
	require := require.New(t)

	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/series",
		"Chuck/S01E01.rmvb",
		"Chuck/S01E02.mkv",
	)

	ix := New()
	require.NoError(ix.BuildFromDirectory(fsys, "/series", ""))
	require.False(ix.EpisodeExisting("Chuck", "S01E01", "de"))

	ix = New(WithVideoExtensions("rmvb"))
	require.NoError(ix.BuildFromDirectory(fsys, "/series", ""))
	require.True(ix.EpisodeExisting("Chuck", "S01E01", "de"))
	require.True(ix.EpisodeExisting("Chuck", "S01E02", "de"))
}

func TestBuildFromDirectoryReplacesSeries(t *testing.T) {
	require := require.New(t)

	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/series", "chuck/S01E02.mkv")

	ix := New()
	require.NoError(ix.AddNewSeries("Chuck"))
	require.NoError(ix.AddAlias("Chuckie", "Chuck"))
	require.NoError(ix.BuildFromDirectory(fsys, "/series", "de"))

	require.Equal([]string{"chuck"}, ix.SeriesNames())
	require.False(ix.EpisodeExisting("Chuck", "S01E00", "de"))
	require.True(ix.EpisodeExisting("Chuckie", "S01E02", "de"))
}

func TestBuildFromDirectoryInvalid(t *testing.T) {
	require := require.New(t)

	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/", "file.mkv")

	ix := New()
	require.ErrorIs(ix.BuildFromDirectory(fsys, "/missing", "de"), ErrInvalidDirectory)
	require.ErrorIs(ix.BuildFromDirectory(fsys, "/file.mkv", "de"), ErrInvalidDirectory)
	require.True(ix.Empty())
}
