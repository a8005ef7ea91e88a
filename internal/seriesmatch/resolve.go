package seriesmatch

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// fold applies full Unicode case folding. A Caser keeps state, so one is built
// per call.
func fold(value string) string {
	return cases.Fold().String(value)
}

// Resolve maps query to a canonical series name. Exact (case-insensitive)
// matches against canonical names and then aliases are tried first; after
// that the first canonical name, then alias, containing query as a substring
// wins. Candidates are scanned in lexicographic order. Alias hits return the
// alias target. Blank queries never resolve.
func Resolve(names []string, aliases map[string]string, query string) (string, bool) {
	if strings.TrimSpace(query) == "" {
		return "", false
	}
	folded := fold(query)
	sortedNames := slices.Sorted(slices.Values(names))
	aliasNames := slices.Sorted(maps.Keys(aliases))

	if name, ok := firstMatch(sortedNames, func(c string) bool { return c == folded }); ok {
		return name, true
	}
	if alias, ok := firstMatch(aliasNames, func(c string) bool { return c == folded }); ok {
		return aliases[alias], true
	}
	if name, ok := firstMatch(sortedNames, func(c string) bool { return strings.Contains(c, folded) }); ok {
		return name, true
	}
	if alias, ok := firstMatch(aliasNames, func(c string) bool { return strings.Contains(c, folded) }); ok {
		return aliases[alias], true
	}
	return "", false
}

// ResolveFuzzy behaves like Resolve and falls back to FuzzyMatch over the
// canonical names and then the aliases.
func ResolveFuzzy(names []string, aliases map[string]string, query string) (string, bool) {
	if name, ok := Resolve(names, aliases, query); ok {
		return name, true
	}
	if strings.TrimSpace(query) == "" {
		return "", false
	}
	for _, name := range slices.Sorted(slices.Values(names)) {
		if FuzzyMatch(name, query) {
			return name, true
		}
	}
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		if FuzzyMatch(alias, query) {
			return aliases[alias], true
		}
	}
	return "", false
}

func firstMatch(candidates []string, match func(folded string) bool) (string, bool) {
	for _, candidate := range candidates {
		if match(fold(candidate)) {
			return candidate, true
		}
	}
	return "", false
}
