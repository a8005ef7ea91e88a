package seriesindex

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadExample(t *testing.T, opts ...Option) *Index {
	t.Helper()
	f, err := os.Open("testdata/seriesindex_example.xml")
	require.NoError(t, err)
	defer f.Close()

	ix, err := Import(f, opts...)
	require.NoError(t, err)
	return ix
}

func TestNewIndexIsEmpty(t *testing.T) {
	require := require.New(t)

	ix := New()
	require.True(ix.Empty())
	require.Zero(ix.Len())
	require.Equal(DefaultLanguage, ix.DefaultLanguage())
	require.False(ix.IsSeriesInIndex("Community", true))
	require.False(ix.EpisodeExisting("Community", "S01E01", "de"))
}

func TestExampleIndex(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.False(ix.Empty())
	require.Equal([]string{"Alf", "Community", "Shameless US"}, ix.SeriesNames())
	require.Equal(map[string]string{"Comm": "Community"}, ix.Aliases())

	community, ok := ix.Series("Community")
	require.True(ok)
	require.True(community.HasEpisodesInLanguage("de"))
	require.True(community.IsEpisodeExisting("S01E01", "de"))
	require.False(community.IsEpisodeExisting("S11E11", "de"))

	shameless, ok := ix.Series("Shameless US")
	require.True(ok)
	require.Equal([]string{"de", "en"}, shameless.Languages())

	alf, ok := ix.Series("Alf")
	require.True(ok)
	require.False(alf.ReceiveUpdates)
	require.True(alf.HasEpisodesInLanguage("de"))
}

func TestSeriesAliasesTakePlace(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.True(ix.IsSeriesInIndex("Comm", true))
	require.True(ix.IsSeriesInIndex("unity", true))
	require.False(ix.IsSeriesInIndex("NoCommunity", true))
	require.True(ix.IsSeriesInIndex("shameless uS", true))

	require.True(ix.EpisodeExisting("Comm", "Community.S01E02.German.mkv", "de"))
	require.False(ix.EpisodeExisting("Comm", "Community.S01E04.German.mkv", "de"))
}

func TestEpisodeExisting(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.True(ix.EpisodeExisting("Shameless US", "Shameless.US.S01E01.Just.Like.The.Pilgrims.Intended.German", "de"))
	require.False(ix.EpisodeExisting("Shameless US", "Shameless.US.S01E09.Just.Like.The.Pilgrims.Intended.German", "de"))
	require.True(ix.EpisodeExisting("Shameless US", "Shameless.US.S01E09.Just.Like.The.Pilgrims.Intended.German", "en"))
	require.True(ix.EpisodeExisting("Community", "Community.S01E01.Bankgeheimnis.DL.German.HDTV.XviD-GDR", "de"))
	require.False(ix.EpisodeExisting("Community", "Community.S01E31.Bankgeheimnis.DL.German.HDTV.XviD-GDR", "de"))

	// Blank language falls back to the default language.
	require.True(ix.EpisodeExisting("Community", "S01E03", ""))
	require.False(ix.EpisodeExisting("Community", "S01E03", "en"))

	require.True(ix.EpisodeExisting("Alf", "Alf.S04E20.German", "en"))
	require.False(ix.EpisodeExisting("Unknown", "S01E01", "de"))
}

func TestIsSeriesInThisLanguage(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.True(ix.IsSeriesInThisLanguage("Shameless US", "en"))
	require.False(ix.IsSeriesInThisLanguage("Community", "en"))
	require.True(ix.IsSeriesInThisLanguage("Comm", "de"))
	require.False(ix.IsSeriesInThisLanguage("Unknown", "de"))
}

func TestIsSeriesInIndexExtractsName(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.True(ix.IsSeriesInIndex("Community.S01E01.German.HDTV", false))
	require.True(ix.IsSeriesInIndex("Shameless.US.S02E01.German", false))
	require.False(ix.IsSeriesInIndex("Chuck.S01E01.German", false))

	// Without a marker the raw text is used.
	require.True(ix.IsSeriesInIndex("Community", false))
	require.False(ix.IsSeriesInIndex("s01e01 Unknown", false))
}

func TestAddEpisodeToIndex(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.False(ix.AddEpisodeToIndex("Unknown", "S01E01.mkv", "de"))
	require.False(ix.AddEpisodeToIndex("Community", "Community.German.mkv", "de"))

	require.True(ix.AddEpisodeToIndex("Comm", "Community.S02E01.German.mkv", "de"))
	require.True(ix.EpisodeExisting("Community", "S02E01", "de"))
	require.False(ix.EpisodeExisting("Community", "S01E31", "de"))

	require.True(ix.AddEpisodeWithBackfill("Community", "Community.S03E02.English.mkv", "en"))
	require.True(ix.EpisodeExisting("Community", "S02E50", "en"))
	require.True(ix.EpisodeExisting("Community", "S03E01", "en"))
	require.False(ix.EpisodeExisting("Community", "S03E03", "en"))
}

func TestAddNewSeries(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.NoError(ix.AddNewSeries("Chuck"))
	require.True(ix.EpisodeExisting("Chuck", "S01E00", "de"))
	require.False(ix.EpisodeExisting("Chuck", "S01E01", "de"))
	require.True(ix.IsSeriesInThisLanguage("Chuck", "de"))
	require.False(ix.IsSeriesInThisLanguage("Chuck", "en"))

	require.ErrorIs(ix.AddNewSeries("chuck"), ErrDuplicateSeries)
	require.ErrorIs(ix.AddNewSeries("Comm"), ErrDuplicateSeries)
	require.ErrorIs(ix.AddNewSeries("Shameless"), ErrDuplicateSeries)
	require.ErrorIs(ix.AddNewSeries("  "), ErrInvalidName)
	require.Equal(4, ix.Len())
}

func TestAddNewSeriesUsesDefaultLanguage(t *testing.T) {
	require := require.New(t)

	ix := New(WithDefaultLanguage("en"))
	require.NoError(ix.AddNewSeries("Chuck"))
	require.True(ix.IsSeriesInThisLanguage("Chuck", "en"))
	require.False(ix.IsSeriesInThisLanguage("Chuck", "de"))
}

func TestAddAlias(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.NoError(ix.AddNewSeries("Chuck"))

	require.ErrorIs(ix.AddAlias("chuck", "Community"), ErrAliasConflict)
	require.ErrorIs(ix.AddAlias("Gemeinschaft", "Dexter"), ErrSeriesNotFound)
	require.ErrorIs(ix.AddAlias("", "Community"), ErrInvalidName)

	require.NoError(ix.AddAlias("Gemeinschaft", "Community"))
	require.True(ix.IsSeriesInIndex("gemeinschaft", true))
	require.True(ix.EpisodeExisting("Gemeinschaft", "S01E03", "de"))
}

func TestFuzzyResolution(t *testing.T) {
	require := require.New(t)

	ix := loadExample(t)
	require.NoError(ix.AddNewSeries("Criminal Minds"))
	require.True(ix.AddEpisodeToIndex("Criminal Minds", "Criminal.Minds.S01E01.mkv", "de"))

	require.False(ix.EpisodeExisting("crmi", "S01E01", "de"))
	require.True(ix.EpisodeExistingFuzzy("crmi", "S01E01", "de"))
	require.True(ix.EpisodeExistingFuzzy("Shameless Nothing US", "S01E01", "de"))
	require.False(ix.EpisodeExistingFuzzy("xyz", "S01E01", "de"))

	name, ok := ix.ResolveFuzzy("crmi")
	require.True(ok)
	require.Equal("Criminal Minds", name)
}

func TestMerge(t *testing.T) {
	require := require.New(t)

	a := New()
	require.NoError(a.AddNewSeries("Chuck"))
	require.True(a.AddEpisodeToIndex("Chuck", "S01E01", "de"))

	b := New()
	require.NoError(b.AddNewSeries("chuck"))
	require.True(b.AddEpisodeToIndex("chuck", "S01E05", "de"))
	require.NoError(b.AddNewSeries("Dexter"))
	require.NoError(b.AddAlias("Dex", "Dexter"))

	a.Merge(b)
	require.Equal([]string{"Dexter", "chuck"}, a.SeriesNames())
	require.True(a.EpisodeExisting("Chuck", "S01E05", "de"))
	require.False(a.EpisodeExisting("Chuck", "S01E01", "de"))
	require.True(a.EpisodeExisting("Dex", "S01E00", "de"))

	a.Merge(nil)
	require.Equal(2, a.Len())
}
