// Package seriesindex holds the watched-episode state of every tracked series.
//
// An Index maps canonical series names to Series values and keeps an alias
// table on the side. Each Series stores one watched set per language, keyed by
// episode.ID, whose entries are either real files or virtual placeholders
// produced by backfilling. Queries resolve free-form series names through
// seriesmatch before touching the watched state.
//
// The package also seeds an index from a directory tree (BuildFromDirectory)
// and converts it to and from the seriesindex XML document (Import, Export).
// An Index is not safe for concurrent use; indexstore serializes access.
package seriesindex
