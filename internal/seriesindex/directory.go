package seriesindex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"sindex/internal/episode"
	"sindex/internal/logging"
)

// BuildFromDirectory seeds the index from a tree laid out as
// root/<series>/.../<episode file>. Every immediate subdirectory of root
// becomes a fresh series named after the directory; files below it are added
// in lexical order when their name carries an identifier and a video
// extension. Files directly under root are ignored.
func (ix *Index) BuildFromDirectory(fsys afero.Fs, root, lang string) error {
	info, err := fsys.Stat(root)
	if err != nil {
		return fmt.Errorf("build index from %q: %w: %w", root, ErrInvalidDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("build index from %q: %w: not a directory", root, ErrInvalidDirectory)
	}

	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read %q: %w", root, err)
	}
	lang = ix.lang(lang)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		series := NewSeries(entry.Name())
		added, skipped := 0, 0
		walkErr := afero.Walk(fsys, filepath.Join(root, entry.Name()), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			name := info.Name()
			if _, ok := episode.Extract(name); !ok || !ix.extensions.Match(name) {
				skipped++
				return nil
			}
			series.AddEpisode(name, lang, false)
			added++
			return nil
		})
		if walkErr != nil {
			return fmt.Errorf("walk %q: %w", entry.Name(), walkErr)
		}
		ix.putSeries(series)
		ix.logger.Debug("series seeded from directory",
			logging.String(logging.FieldSeries, series.Name),
			logging.String(logging.FieldLanguage, lang),
			logging.Int("episodes", added),
			logging.Int("skipped", skipped))
	}

	ix.logger.Info("index built from directory",
		logging.String(logging.FieldEventType, "index_built"),
		logging.String(logging.FieldPath, root),
		logging.Int("series", ix.Len()))
	return nil
}
