package seriesindex

import (
	"maps"
	"slices"

	"sindex/internal/episode"
)

// Entry is the watched state recorded for one episode identifier: either a
// real file that was observed or a virtual placeholder left by a backfill.
type Entry struct {
	filename string
	virtual  bool
}

// Real records an observed episode file or release name.
func Real(filename string) Entry {
	return Entry{filename: filename}
}

// Virtual records an episode marked as watched by a backfill.
func Virtual() Entry {
	return Entry{virtual: true}
}

// IsVirtual reports whether the entry is a backfill placeholder.
func (e Entry) IsVirtual() bool {
	return e.virtual
}

// Filename returns the recorded file name. Virtual entries have none.
func (e Entry) Filename() (string, bool) {
	if e.virtual {
		return "", false
	}
	return e.filename, true
}

// EpisodeEntry pairs an identifier with its entry.
type EpisodeEntry struct {
	ID    episode.ID
	Entry Entry
}

// Series owns the watched sets of one series, one per language.
type Series struct {
	Name string
	// ReceiveUpdates false makes every existence query report true.
	ReceiveUpdates bool

	episodes map[string]map[episode.ID]Entry
}

// NewSeries creates a series that receives updates and has no languages yet.
func NewSeries(name string) *Series {
	return &Series{
		Name:           name,
		ReceiveUpdates: true,
		episodes:       make(map[string]map[episode.ID]Entry),
	}
}

// HasEpisodesInLanguage reports whether the language has been initialized,
// even if every entry in it is virtual.
func (s *Series) HasEpisodesInLanguage(lang string) bool {
	_, ok := s.episodes[lang]
	return ok
}

func (s *Series) language(lang string) map[episode.ID]Entry {
	set, ok := s.episodes[lang]
	if !ok {
		set = make(map[episode.ID]Entry)
		s.episodes[lang] = set
	}
	return set
}

// AddEpisode records filename as watched in lang. Texts without an
// identifier are ignored and false is returned. With backfill, every earlier
// episode is marked virtual unless something is already recorded for it. The
// real entry always replaces whatever was stored for its identifier.
func (s *Series) AddEpisode(filename, lang string, backfill bool) bool {
	id, ok := episode.Extract(filename)
	if !ok {
		return false
	}
	set := s.language(lang)
	if backfill {
		for _, prior := range episode.Backfill(id) {
			if _, exists := set[prior]; !exists {
				set[prior] = Virtual()
			}
		}
	}
	set[id] = Real(filename)
	return true
}

// IsEpisodeExisting reports whether the episode named in text was watched in
// lang. Virtual entries count as watched.
func (s *Series) IsEpisodeExisting(text, lang string) bool {
	if !s.ReceiveUpdates {
		return true
	}
	id, ok := episode.Extract(text)
	if !ok {
		return false
	}
	set, ok := s.episodes[lang]
	if !ok {
		return false
	}
	_, ok = set[id]
	return ok
}

// Languages returns the initialized languages in sorted order.
func (s *Series) Languages() []string {
	return slices.Sorted(maps.Keys(s.episodes))
}

// Entries returns the watched set of lang in episode order.
func (s *Series) Entries(lang string) []EpisodeEntry {
	set := s.episodes[lang]
	ids := slices.SortedFunc(maps.Keys(set), episode.ID.Compare)
	out := make([]EpisodeEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, EpisodeEntry{ID: id, Entry: set[id]})
	}
	return out
}

// Count returns the number of entries in lang, virtual ones included.
func (s *Series) Count(lang string) int {
	return len(s.episodes[lang])
}

// RealCount returns the number of real entries in lang.
func (s *Series) RealCount(lang string) int {
	count := 0
	for _, entry := range s.episodes[lang] {
		if !entry.virtual {
			count++
		}
	}
	return count
}
