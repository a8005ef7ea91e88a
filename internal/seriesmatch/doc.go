// Package seriesmatch resolves free-form series names to the canonical keys
// of an index.
//
// Resolution is a plain, case-insensitive text comparison: an exact name wins,
// otherwise the first canonical name (then alias) containing the query does.
// Queries are never compiled into patterns, so characters such as "." or "("
// match themselves.
//
// FuzzyMatch implements the looser word-dropping matcher used when callers
// explicitly ask for it. It tries the query words joined by "anything",
// drops leading words one at a time, and finally retries the last word as an
// ordered sequence of characters so compressed queries like "crmi" still
// find "Criminal Minds".
package seriesmatch
