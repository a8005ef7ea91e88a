package episode

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// markerPattern matches S01E04, s1e4, S001E0004 anywhere in the text.
	markerPattern = regexp.MustCompile(`(?i)S(\d+)E(\d+)`)

	// nameMarkerPattern only accepts uppercase S and E.
	nameMarkerPattern = regexp.MustCompile(`S\d+E\d+`)
)

// ID identifies one episode of a series.
type ID struct {
	Season  int
	Episode int
}

// String returns the canonical "<season>_<episode>" form without leading zeros.
func (id ID) String() string {
	return strconv.Itoa(id.Season) + "_" + strconv.Itoa(id.Episode)
}

// Marker renders the identifier the way release names carry it, e.g. "S01E04".
func (id ID) Marker() string {
	return fmt.Sprintf("S%02dE%02d", id.Season, id.Episode)
}

// Compare orders identifiers by season, then episode.
func (id ID) Compare(other ID) int {
	if c := cmp.Compare(id.Season, other.Season); c != 0 {
		return c
	}
	return cmp.Compare(id.Episode, other.Episode)
}

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool {
	return id.Compare(other) < 0
}

// Extract returns the identifier of the first case-insensitive S<digits>E<digits>
// marker in text. Leading zeros are ignored.
func Extract(text string) (ID, bool) {
	match := markerPattern.FindStringSubmatch(text)
	if match == nil {
		return ID{}, false
	}
	season, ok := parseNumber(match[1])
	if !ok {
		return ID{}, false
	}
	episode, ok := parseNumber(match[2])
	if !ok {
		return ID{}, false
	}
	return ID{Season: season, Episode: episode}, true
}

// ExtractSeriesName returns the text in front of the first S<digits>E<digits>
// marker with dots turned into spaces. It reports false when there is no
// marker or nothing but whitespace precedes it.
func ExtractSeriesName(text string) (string, bool) {
	loc := nameMarkerPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	name := strings.TrimSpace(strings.ReplaceAll(text[:loc[0]], ".", " "))
	if name == "" {
		return "", false
	}
	return name, true
}

// AfterMarker returns the text following the first case-insensitive
// S<digits>E<digits> marker, where release names carry episode title, language
// and source tags.
func AfterMarker(text string) (string, bool) {
	loc := markerPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[1]:], true
}

// parseNumber converts a run of ASCII digits; overflow counts as no number.
func parseNumber(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
