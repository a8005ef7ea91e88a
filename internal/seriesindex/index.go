package seriesindex

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"sindex/internal/episode"
	"sindex/internal/logging"
	"sindex/internal/seriesmatch"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "de"

// newSeriesSentinel seeds series created with AddNewSeries.
const newSeriesSentinel = "S01E00"

// Index aggregates all series by canonical name plus an alias table.
type Index struct {
	logger          *slog.Logger
	defaultLanguage string
	extensions      episode.Extensions

	series  map[string]*Series
	aliases map[string]string
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger used for debug and warning output.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// WithDefaultLanguage sets the language used for blank language arguments and
// for the sentinel episode of new series.
func WithDefaultLanguage(lang string) Option {
	return func(ix *Index) {
		if lang = strings.TrimSpace(lang); lang != "" {
			ix.defaultLanguage = lang
		}
	}
}

// WithVideoExtensions adds extensions accepted by BuildFromDirectory.
func WithVideoExtensions(extra ...string) Option {
	return func(ix *Index) {
		ix.extensions = episode.VideoExtensions(extra...)
	}
}

// New creates an empty index.
func New(opts ...Option) *Index {
	ix := &Index{
		logger:          logging.NewNop(),
		defaultLanguage: DefaultLanguage,
		extensions:      episode.VideoExtensions(),
		series:          make(map[string]*Series),
		aliases:         make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ix)
		}
	}
	ix.logger = logging.NewComponentLogger(ix.logger, "seriesindex")
	return ix
}

// DefaultLanguage returns the language used when callers pass a blank one.
func (ix *Index) DefaultLanguage() string {
	return ix.defaultLanguage
}

func (ix *Index) lang(lang string) string {
	if lang = strings.TrimSpace(lang); lang != "" {
		return lang
	}
	return ix.defaultLanguage
}

func (ix *Index) names() []string {
	return slices.Collect(maps.Keys(ix.series))
}

// Resolve maps a free-form query to a canonical series name using exact,
// substring and alias matching.
func (ix *Index) Resolve(query string) (string, bool) {
	return seriesmatch.Resolve(ix.names(), ix.aliases, query)
}

// ResolveFuzzy is Resolve with the fuzzy fallback.
func (ix *Index) ResolveFuzzy(query string) (string, bool) {
	return seriesmatch.ResolveFuzzy(ix.names(), ix.aliases, query)
}

func (ix *Index) lookup(query string, fuzzy bool) (*Series, bool) {
	var (
		name string
		ok   bool
	)
	if fuzzy {
		name, ok = ix.ResolveFuzzy(query)
	} else {
		name, ok = ix.Resolve(query)
	}
	if !ok {
		ix.logger.Debug("series not resolved", logging.String(logging.FieldSeries, query), logging.Bool("fuzzy", fuzzy))
		return nil, false
	}
	reason := "name or alias match"
	if fuzzy {
		reason = "fuzzy match allowed"
	}
	attrs := append(logging.DecisionAttrs("series_resolve", name, reason), logging.String(logging.FieldSeries, query))
	ix.logger.Debug("series resolved", logging.Args(attrs...)...)
	return ix.series[name], true
}

// EpisodeExisting reports whether the episode in text was watched in lang for
// the series query resolves to. Unresolved series report false.
func (ix *Index) EpisodeExisting(query, text, lang string) bool {
	series, ok := ix.lookup(query, false)
	if !ok {
		return false
	}
	return series.IsEpisodeExisting(text, ix.lang(lang))
}

// EpisodeExistingFuzzy is EpisodeExisting with fuzzy series resolution.
func (ix *Index) EpisodeExistingFuzzy(query, text, lang string) bool {
	series, ok := ix.lookup(query, true)
	if !ok {
		return false
	}
	return series.IsEpisodeExisting(text, ix.lang(lang))
}

// IsSeriesInThisLanguage reports whether the resolved series has lang initialized.
func (ix *Index) IsSeriesInThisLanguage(query, lang string) bool {
	series, ok := ix.lookup(query, false)
	if !ok {
		return false
	}
	return series.HasEpisodesInLanguage(ix.lang(lang))
}

// IsSeriesInIndex reports whether text names a known series. Unless clean is
// set the series name is first extracted from text; when that fails the raw
// text is used as the query.
func (ix *Index) IsSeriesInIndex(text string, clean bool) bool {
	query := text
	if !clean {
		if name, ok := episode.ExtractSeriesName(text); ok {
			query = name
		}
	}
	_, ok := ix.lookup(query, false)
	return ok
}

// AddEpisodeToIndex records filename for the resolved series. It reports
// whether anything was recorded; unknown series and files without an
// identifier are ignored.
func (ix *Index) AddEpisodeToIndex(query, filename, lang string) bool {
	return ix.addEpisode(query, filename, lang, false)
}

// AddEpisodeWithBackfill records filename and marks every earlier episode as watched.
func (ix *Index) AddEpisodeWithBackfill(query, filename, lang string) bool {
	return ix.addEpisode(query, filename, lang, true)
}

func (ix *Index) addEpisode(query, filename, lang string, backfill bool) bool {
	series, ok := ix.lookup(query, false)
	if !ok {
		return false
	}
	lang = ix.lang(lang)
	if !series.AddEpisode(filename, lang, backfill) {
		ix.logger.Debug("episode without identifier ignored",
			logging.String(logging.FieldSeries, series.Name),
			logging.String(logging.FieldEpisode, filename))
		return false
	}
	ix.logger.Debug("episode recorded",
		logging.String(logging.FieldSeries, series.Name),
		logging.String(logging.FieldEpisode, filename),
		logging.String(logging.FieldLanguage, lang),
		logging.Bool("backfill", backfill))
	return true
}

// AddNewSeries creates a series stored under name verbatim. It fails with
// ErrDuplicateSeries when name already resolves. The series is seeded with a
// S01E00 sentinel in the default language.
func (ix *Index) AddNewSeries(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("add series: %w", ErrInvalidName)
	}
	if existing, ok := ix.Resolve(name); ok {
		return fmt.Errorf("add series %q: %w (resolves to %q)", name, ErrDuplicateSeries, existing)
	}
	series := NewSeries(name)
	series.AddEpisode(newSeriesSentinel, ix.defaultLanguage, false)
	ix.putSeries(series)
	ix.logger.Info("series added",
		logging.String(logging.FieldEventType, "series_added"),
		logging.String(logging.FieldSeries, name))
	return nil
}

// AddAlias redirects alias to the series target resolves to.
func (ix *Index) AddAlias(alias, target string) error {
	if strings.TrimSpace(alias) == "" {
		return fmt.Errorf("add alias: %w", ErrInvalidName)
	}
	canonical, ok := ix.Resolve(target)
	if !ok {
		return fmt.Errorf("add alias %q: %w: %q", alias, ErrSeriesNotFound, target)
	}
	if name, ok := ix.canonicalName(alias); ok {
		return fmt.Errorf("add alias %q: %w %q", alias, ErrAliasConflict, name)
	}
	ix.aliases[alias] = canonical
	return nil
}

// canonicalName returns the stored series name equal to name ignoring case.
func (ix *Index) canonicalName(name string) (string, bool) {
	if _, ok := ix.series[name]; ok {
		return name, true
	}
	folded := cases.Fold().String(name)
	for existing := range ix.series {
		if cases.Fold().String(existing) == folded {
			return existing, true
		}
	}
	return "", false
}

// putSeries stores series, replacing any series whose name differs only in case.
func (ix *Index) putSeries(series *Series) {
	if existing, ok := ix.canonicalName(series.Name); ok && existing != series.Name {
		delete(ix.series, existing)
		ix.retarget(existing, series.Name)
	}
	ix.series[series.Name] = series
	if _, ok := ix.aliases[series.Name]; ok {
		delete(ix.aliases, series.Name)
		logging.WarnWithContext(ix.logger, "alias replaced by series", "alias_dropped",
			logging.String(logging.FieldSeries, series.Name),
			logging.String(logging.FieldImpact, "the alias no longer redirects"))
	}
}

func (ix *Index) retarget(from, to string) {
	for alias, target := range ix.aliases {
		if target == from {
			ix.aliases[alias] = to
		}
	}
}

// Empty reports whether the index holds no series.
func (ix *Index) Empty() bool {
	return len(ix.series) == 0
}

// Len returns the number of series.
func (ix *Index) Len() int {
	return len(ix.series)
}

// SeriesNames returns the canonical names in sorted order.
func (ix *Index) SeriesNames() []string {
	return slices.Sorted(maps.Keys(ix.series))
}

// Series returns the series stored under the exact canonical name.
func (ix *Index) Series(name string) (*Series, bool) {
	series, ok := ix.series[name]
	return series, ok
}

// Aliases returns a copy of the alias table.
func (ix *Index) Aliases() map[string]string {
	return maps.Clone(ix.aliases)
}

// Merge copies every series and alias of other into ix. Series of other
// replace series of ix with the same name ignoring case. The series are
// shared, so other must not be modified afterwards.
func (ix *Index) Merge(other *Index) {
	if other == nil {
		return
	}
	for _, name := range other.SeriesNames() {
		ix.putSeries(other.series[name])
	}
	for _, alias := range slices.Sorted(maps.Keys(other.aliases)) {
		if err := ix.AddAlias(alias, other.aliases[alias]); err != nil {
			logging.WarnWithContext(ix.logger, "alias skipped during merge", "alias_skipped",
				logging.String("alias", alias),
				logging.Error(err),
				logging.String(logging.FieldImpact, "queries using the alias will not resolve"))
		}
	}
}
