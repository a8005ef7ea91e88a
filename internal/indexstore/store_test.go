package indexstore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"

	"sindex/internal/document"
	"sindex/internal/episode"
	"sindex/internal/seriesindex"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	require := require.New(t)

	store := Open(filepath.Join(t.TempDir(), "index", "seriesindex.xml"))
	ix, err := store.Load(context.Background())
	require.NoError(err)
	require.True(ix.Empty())

	_, err = os.Stat(store.Path())
	require.True(errors.Is(err, os.ErrNotExist))
}

func TestUpdatePersists(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	store := Open(path, WithIndexOptions(seriesindex.WithDefaultLanguage("en")))

	require.NoError(store.Update(ctx, func(ix *seriesindex.Index) error {
		if err := ix.AddNewSeries("Chuck"); err != nil {
			return err
		}
		ix.AddEpisodeWithBackfill("Chuck", "Chuck.S01E05.mkv", "de")
		return nil
	}))

	ix, err := Open(path).Load(ctx)
	require.NoError(err)
	require.True(ix.EpisodeExisting("Chuck", "S01E00", "en"))
	require.True(ix.EpisodeExisting("Chuck", "S01E03", "de"))
	require.False(ix.EpisodeExisting("Chuck", "S01E06", "de"))
}

func TestUpdateErrorLeavesFileUntouched(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	store := Open(path)
	require.NoError(store.Update(ctx, func(ix *seriesindex.Index) error {
		return ix.AddNewSeries("Chuck")
	}))
	before, err := os.ReadFile(path)
	require.NoError(err)

	err = store.Update(ctx, func(ix *seriesindex.Index) error {
		ix.AddEpisodeToIndex("Chuck", "S01E01.mkv", "de")
		return ix.AddNewSeries("chuck")
	})
	require.ErrorIs(err, seriesindex.ErrDuplicateSeries)

	after, err := os.ReadFile(path)
	require.NoError(err)
	require.Equal(string(before), string(after))
}

func TestLoadInvalidDocument(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	require.NoError(os.WriteFile(path, []byte(`<seriesindex><series/></seriesindex>`), 0o644))

	store := Open(path)
	_, err := store.Load(context.Background())
	var verr *document.ValidationError
	require.ErrorAs(err, &verr)

	err = store.Update(context.Background(), func(*seriesindex.Index) error {
		t.Fatal("update callback must not run for an invalid document")
		return nil
	})
	require.ErrorAs(err, &verr)
}

func TestSaveWithBackup(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	store := Open(path, WithBackup(true))

	first := seriesindex.New()
	require.NoError(first.AddNewSeries("Chuck"))
	require.NoError(store.Save(ctx, first))
	_, err := os.Stat(path + ".bak")
	require.True(errors.Is(err, os.ErrNotExist))

	second := seriesindex.New()
	require.NoError(second.AddNewSeries("Dexter"))
	require.NoError(store.Save(ctx, second))

	backup, err := os.Open(path + ".bak")
	require.NoError(err)
	defer backup.Close()
	previous, err := seriesindex.Import(backup)
	require.NoError(err)
	require.Equal([]string{"Chuck"}, previous.SeriesNames())

	current, err := store.Load(ctx)
	require.NoError(err)
	require.Equal([]string{"Dexter"}, current.SeriesNames())
}

func TestSaveFailureIsLogged(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// A non-empty directory where the index file belongs cannot be replaced.
	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	require.NoError(os.MkdirAll(filepath.Join(path, "occupied"), 0o755))

	store := Open(path, WithLogger(logger))
	ix := seriesindex.New()
	require.NoError(ix.AddNewSeries("Chuck"))
	err := store.Save(ctx, ix)
	require.Error(err)
	require.Contains(err.Error(), "save index")

	out := logs.String()
	require.Contains(out, `"msg":"index lock acquired"`)
	require.Contains(out, `"lock_wait":`)
	require.Contains(out, `"level":"ERROR","msg":"index save failed"`)
	require.Contains(out, `"event_type":"index_save_failed"`)
	require.Contains(out, `"error_hint":"check permissions and free space in the index directory"`)
	require.NotContains(out, `"msg":"index saved"`)
}

func TestLockedIndex(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	store := Open(path, WithLockRetry(5*time.Millisecond))

	other := flock.New(path + ".lock")
	locked, err := other.TryLock()
	require.NoError(err)
	require.True(locked)
	defer other.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = store.Load(ctx)
	require.ErrorIs(err, ErrLocked)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel2()
	err = store.Update(ctx2, func(*seriesindex.Index) error { return nil })
	require.ErrorIs(err, ErrLocked)

	require.NoError(other.Unlock())
	_, err = store.Load(context.Background())
	require.NoError(err)
}

func TestConcurrentUpdates(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seriesindex.xml")
	store := Open(path, WithLockRetry(time.Millisecond))
	require.NoError(store.Update(ctx, func(ix *seriesindex.Index) error {
		return ix.AddNewSeries("Chuck")
	}))

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(ep int) {
			defer wg.Done()
			errs <- store.Update(ctx, func(ix *seriesindex.Index) error {
				ix.AddEpisodeToIndex("Chuck", episode.ID{Season: 1, Episode: ep}.Marker()+".mkv", "de")
				return nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(err)
	}

	ix, err := store.Load(ctx)
	require.NoError(err)
	chuck, ok := ix.Series("Chuck")
	require.True(ok)
	require.Equal(workers+1, chuck.RealCount("de"))
}
