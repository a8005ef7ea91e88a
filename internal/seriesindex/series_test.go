package seriesindex

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"sindex/internal/episode"
)

func TestSeriesAddEpisode(t *testing.T) {
	require := require.New(t)

	s := NewSeries("Chuck")
	require.True(s.ReceiveUpdates)
	require.False(s.HasEpisodesInLanguage("de"))

	require.False(s.AddEpisode("no identifier.mkv", "de", false))
	require.False(s.HasEpisodesInLanguage("de"))

	require.True(s.AddEpisode("Chuck.S02E03.German.mkv", "de", false))
	require.True(s.HasEpisodesInLanguage("de"))
	require.False(s.HasEpisodesInLanguage("en"))

	require.True(s.IsEpisodeExisting("chuck.s2e3", "de"))
	require.True(s.IsEpisodeExisting("S02E003", "de"))
	require.False(s.IsEpisodeExisting("S02E03", "en"))
	require.False(s.IsEpisodeExisting("S02E04", "de"))
	require.False(s.IsEpisodeExisting("no identifier", "de"))
}

func TestSeriesBackfill(t *testing.T) {
	require := require.New(t)

	s := NewSeries("Community")
	require.True(s.AddEpisode("S01E31", "de", true))

	for ep := 1; ep <= 30; ep++ {
		require.True(s.IsEpisodeExisting(fmt.Sprintf("S01E%02d", ep), "de"), ep)
	}
	require.True(s.IsEpisodeExisting("S01E31", "de"))
	require.True(s.IsEpisodeExisting("S01E05", "de"))
	require.False(s.IsEpisodeExisting("S01E32", "de"))
	require.Equal(31, s.Count("de"))
	require.Equal(1, s.RealCount("de"))
}

func TestSeriesBackfillAcrossSeasons(t *testing.T) {
	require := require.New(t)

	s := NewSeries("Chuck")
	s.AddEpisode("S03E02", "de", true)

	require.True(s.IsEpisodeExisting("S01E50", "de"))
	require.False(s.IsEpisodeExisting("S01E51", "de"))
	require.True(s.IsEpisodeExisting("S02E50", "de"))
	require.True(s.IsEpisodeExisting("S03E01", "de"))
	require.False(s.IsEpisodeExisting("S03E03", "de"))
	require.Equal(102, s.Count("de"))
}

func TestSeriesBackfillNeverDowngradesRealEntries(t *testing.T) {
	require := require.New(t)

	s := NewSeries("Chuck")
	s.AddEpisode("S01E02 - Helicopter.mkv", "de", false)
	s.AddEpisode("S01E05 - Tango.mkv", "de", true)

	entries := s.Entries("de")
	require.Len(entries, 5)
	filename, ok := entries[1].Entry.Filename()
	require.True(ok)
	require.Equal("S01E02 - Helicopter.mkv", filename)
	require.True(entries[0].Entry.IsVirtual())

	// A real entry replaces a virtual one.
	s.AddEpisode("S01E01 - Pilot.mkv", "de", false)
	filename, ok = s.Entries("de")[0].Entry.Filename()
	require.True(ok)
	require.Equal("S01E01 - Pilot.mkv", filename)
	require.Equal(3, s.RealCount("de"))
}

func TestSeriesWithoutUpdates(t *testing.T) {
	require := require.New(t)

	s := NewSeries("Alf")
	s.ReceiveUpdates = false

	require.True(s.IsEpisodeExisting("S09E99", "de"))
	require.True(s.IsEpisodeExisting("S01E01", "fr"))
	require.True(s.IsEpisodeExisting("anything", "de"))
}

func TestSeriesEntriesOrder(t *testing.T) {
	require := require.New(t)

	s := NewSeries("Chuck")
	for _, name := range []string{"S02E01", "S01E10", "S01E02", "S10E01"} {
		s.AddEpisode(name, "en", false)
	}
	s.AddEpisode("S01E01", "de", false)

	var ids []episode.ID
	for _, item := range s.Entries("en") {
		ids = append(ids, item.ID)
	}
	require.Equal([]episode.ID{{Season: 1, Episode: 2}, {Season: 1, Episode: 10}, {Season: 2, Episode: 1}, {Season: 10, Episode: 1}}, ids)
	require.Equal([]string{"de", "en"}, s.Languages())
	require.Empty(s.Entries("fr"))
}

func TestEntry(t *testing.T) {
	require := require.New(t)

	_, ok := Virtual().Filename()
	require.False(ok)
	require.True(Virtual().IsVirtual())

	name, ok := Real("S01E01.mkv").Filename()
	require.True(ok)
	require.Equal("S01E01.mkv", name)
	require.False(Real("S01E01.mkv").IsVirtual())
}
