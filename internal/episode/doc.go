// Package episode extracts episode identifiers and series names from loosely
// formatted episode strings such as file names and release names.
//
// An identifier is a (season, episode) pair written as "S<digits>E<digits>"
// anywhere in the text. Extraction never fails loudly: text without a marker
// simply yields no identifier, and callers decide whether that means "skip"
// or "not watched".
//
// The package also owns the backfill rule used when an episode is marked
// together with everything before it, and the set of file extensions that
// count as video files when seeding an index from a directory tree.
package episode
