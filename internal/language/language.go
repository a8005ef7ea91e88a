package language

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"sindex/internal/episode"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms, English and German spellings
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english", "englisch"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "spanisch"}},
	{"fr", "fra", "fre", "French", []string{"french", "franzoesisch", "französisch"}},
	{"de", "deu", "ger", "German", []string{"german", "deutsch"}},
	{"it", "ita", "", "Italian", []string{"italian", "italienisch"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese", "japanisch"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian", "russisch"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 && isLetters(code) {
		return code
	}
	return ""
}

// Normalize is ToISO2 for user input: blank stays blank, anything that
// cannot be mapped is an error.
func Normalize(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}
	if iso := ToISO2(code); iso != "" {
		return iso, nil
	}
	return "", fmt.Errorf("unknown language %q", strings.TrimSpace(code))
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Detect looks for a spelled-out language word in a release name such as
// "Show.S01E01.German.DL.720p" and returns its ISO 639-1 code. When the text
// has an SxxEyy marker only the part after it is searched, and the last
// language word there wins.
// Codes like "de" or "ger" are not considered; they collide with ordinary words.
func Detect(text string) (string, bool) {
	if tail, ok := episode.AfterMarker(text); ok {
		text = tail
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range slices.Backward(words) {
		if e, ok := byWord[word]; ok {
			return e.code2, true
		}
	}
	return "", false
}

func isLetters(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
