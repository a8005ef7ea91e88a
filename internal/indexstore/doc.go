// Package indexstore persists a seriesindex.Index as an XML document on disk.
//
// A Store serializes access to one index file: a mutex covers goroutines in
// the same process and a gofrs/flock lock on "<path>.lock" covers other
// processes. Load takes the lock shared, Update and Save take it exclusively
// and replace the file atomically.
package indexstore
