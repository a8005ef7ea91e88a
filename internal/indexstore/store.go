package indexstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"sindex/internal/fileutil"
	"sindex/internal/logging"
	"sindex/internal/seriesindex"
)

// ErrLocked is returned when the index lock cannot be acquired before the
// context ends.
var ErrLocked = errors.New("index is locked")

const defaultLockRetry = 100 * time.Millisecond

// Store reads and writes one index file.
type Store struct {
	path      string
	lockPath  string
	base      *slog.Logger
	logger    *slog.Logger
	indexOpts []seriesindex.Option
	retry     time.Duration
	backup    bool

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. The same logger is handed to loaded indexes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.base = logger
		}
	}
}

// WithIndexOptions sets options applied to every loaded index.
func WithIndexOptions(opts ...seriesindex.Option) Option {
	return func(s *Store) {
		s.indexOpts = append(s.indexOpts, opts...)
	}
}

// WithLockRetry sets how often a busy lock is retried.
func WithLockRetry(delay time.Duration) Option {
	return func(s *Store) {
		if delay > 0 {
			s.retry = delay
		}
	}
}

// WithBackup keeps a verified copy of the previous file at "<path>.bak" on every save.
func WithBackup(enabled bool) Option {
	return func(s *Store) {
		s.backup = enabled
	}
}

// Open returns a store for the index file at path. The file is not touched
// until Load, Update or Save is called.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		lockPath: path + ".lock",
		base:     logging.NewNop(),
		retry:    defaultLockRetry,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.NewComponentLogger(s.base, "indexstore")
	return s
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the index under a shared lock. A missing file yields an empty index.
func (s *Store) Load(ctx context.Context) (*seriesindex.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.read()
}

// Update loads the index under an exclusive lock, runs fn and saves the
// result. Nothing is written when fn returns an error.
func (s *Store) Update(ctx context.Context, fn func(*seriesindex.Index) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	ix, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(ix); err != nil {
		return err
	}
	return s.write(ix)
}

// Save replaces the stored index with ix.
func (s *Store) Save(ctx context.Context, ix *seriesindex.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(ix)
}

func (s *Store) lock(ctx context.Context, exclusive bool) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}
	fl := flock.New(s.lockPath)
	start := time.Now()

	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = fl.TryLockContext(ctx, s.retry)
	} else {
		ok, err = fl.TryRLockContext(ctx, s.retry)
	}
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil, fmt.Errorf("%w: %s: %w", ErrLocked, s.lockPath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.lockPath)
	}
	s.logger.Debug("index lock acquired",
		logging.String(logging.FieldPath, s.lockPath),
		logging.Bool("exclusive", exclusive),
		logging.Duration("lock_wait", time.Since(start)))

	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("failed to release index lock",
				logging.String(logging.FieldEventType, "index_unlock_failed"),
				logging.String(logging.FieldPath, s.lockPath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the lock file if no sindex process is running"),
				logging.String(logging.FieldImpact, "other processes may wait for the lock"))
		}
	}, nil
}

func (s *Store) indexOptions() []seriesindex.Option {
	opts := make([]seriesindex.Option, 0, len(s.indexOpts)+1)
	opts = append(opts, seriesindex.WithLogger(s.base))
	return append(opts, s.indexOpts...)
}

func (s *Store) read() (*seriesindex.Index, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("index file missing, starting empty", logging.String(logging.FieldPath, s.path))
		return seriesindex.New(s.indexOptions()...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	ix, err := seriesindex.Import(f, s.indexOptions()...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.logger.Debug("index loaded",
		logging.String(logging.FieldPath, s.path),
		logging.Int("series", ix.Len()))
	return ix, nil
}

func (s *Store) write(ix *seriesindex.Index) error {
	var buf bytes.Buffer
	if err := ix.Export(&buf); err != nil {
		return err
	}
	if s.backup {
		backup, err := fileutil.BackupFile(s.path)
		if err != nil {
			s.saveFailed(err)
			return fmt.Errorf("backup index: %w", err)
		}
		if backup != "" {
			s.logger.Debug("index backed up", logging.String(logging.FieldPath, backup))
		}
	}
	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		s.saveFailed(err)
		return fmt.Errorf("save index: %w", err)
	}
	s.logger.Info("index saved",
		logging.String(logging.FieldEventType, "index_saved"),
		logging.String(logging.FieldPath, s.path),
		logging.Int("series", ix.Len()))
	return nil
}

func (s *Store) saveFailed(err error) {
	logging.ErrorWithContext(s.logger, "index save failed", "index_save_failed",
		logging.String(logging.FieldPath, s.path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check permissions and free space in the index directory"))
}
