package seriesindex

import "errors"

var (
	// ErrInvalidDirectory is returned when a seeding root is missing or not a directory.
	ErrInvalidDirectory = errors.New("invalid directory")
	// ErrDuplicateSeries is returned when a new series name already resolves.
	ErrDuplicateSeries = errors.New("series already exists")
	// ErrSeriesNotFound is returned when an alias target does not resolve.
	ErrSeriesNotFound = errors.New("series not found")
	// ErrAliasConflict is returned when an alias would shadow a canonical name.
	ErrAliasConflict = errors.New("alias conflicts with series name")
	// ErrInvalidName is returned for blank series or alias names.
	ErrInvalidName = errors.New("invalid name")
)
