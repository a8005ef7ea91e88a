// Package language normalizes the language keys used by the series index.
//
// Index documents key watched sets by short codes ("de", "en"). Users and
// release names spell languages many ways (ISO 639-2 codes, English or German
// words); this package maps them onto ISO 639-1 codes.
package language
