package episode

// MaxEpisodesPerSeason is the number of episodes assumed for every season
// before the target season when backfilling.
const MaxEpisodesPerSeason = 50

// Backfill lists every identifier strictly before target, in ascending order.
// Seasons before the target season contribute episodes 1..MaxEpisodesPerSeason,
// the target season contributes 1..target.Episode-1. Season 0 is never filled.
func Backfill(target ID) []ID {
	if target.Season < 1 {
		return nil
	}
	size := (target.Season-1)*MaxEpisodesPerSeason + max(target.Episode-1, 0)
	ids := make([]ID, 0, size)
	for season := 1; season <= target.Season; season++ {
		last := MaxEpisodesPerSeason
		if season == target.Season {
			last = target.Episode - 1
		}
		for ep := 1; ep <= last; ep++ {
			ids = append(ids, ID{Season: season, Episode: ep})
		}
	}
	return ids
}
