// Package main hosts the sindex CLI entrypoint and command graph.
//
// The Cobra-based command tree answers "was this episode already watched?"
// queries against the series index, records new episodes, seeds the index
// from a directory tree and scaffolds configuration. It centralizes
// configuration resolution, logger setup and access to the locked index file
// so subcommands only deal with their own arguments and output.
//
// Keep this package lean: add behavior to the internal packages first, then
// surface it through dedicated commands or flags here.
package main
