package seriesmatch

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyMatch reports whether pattern loosely names seriesName.
//
// A plain substring match succeeds immediately. Otherwise the whitespace
// separated words of pattern are joined by a match-anything wildcard and
// tested; on failure the leftmost word is dropped and the rest retried. When
// only one word is left and it still fails, its characters are tried once as an
// ordered subsequence of seriesName. Blank patterns never match.
func FuzzyMatch(seriesName, pattern string) bool {
	if strings.TrimSpace(pattern) == "" {
		return false
	}
	name := fold(seriesName)
	folded := fold(pattern)
	if strings.Contains(name, folded) {
		return true
	}

	words := strings.Fields(folded)
	for len(words) > 0 {
		if wordsMatch(name, words) {
			return true
		}
		if len(words) == 1 {
			return fuzzy.MatchFold(words[0], seriesName)
		}
		words = words[1:]
	}
	return false
}

// wordsMatch tests the words, in order, with anything in between.
func wordsMatch(name string, words []string) bool {
	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = regexp.QuoteMeta(word)
	}
	re, err := regexp.Compile("(?s)" + strings.Join(quoted, ".*"))
	if err != nil {
		return false
	}
	return re.MatchString(name)
}
