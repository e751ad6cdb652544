package repositories

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// Store owns the Badger database and the repositories built on it.
type Store struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool

	Posts    *BadgerPostRepository
	Comments *BadgerCommentRepository
}

// Open opens (or creates) the store at path. An empty path or "test_db"
// opens a throwaway database in a fresh temporary directory.
func Open(path string, logger *slog.Logger) (*Store, error) {
	isTest := false
	if path == "" || path == "test_db" {
		tempPath, err := os.MkdirTemp("", "pressroom_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}

	opts := badger.DefaultOptions(path).WithLogger(newBadgerLogger(logger))
	if isTest {
		opts = opts.WithSyncWrites(false).WithNumVersionsToKeep(1).WithNumGoroutines(1)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return newStore(db, path, isTest), nil
}

// OpenInMemory opens a store that lives only in memory.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return newStore(db, "", false), nil
}

func newStore(db *badger.DB, path string, isTest bool) *Store {
	return &Store{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
	}
}

// DB exposes the underlying Badger handle.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Close closes the database and removes it when it was a temporary one.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}

	// Clean up test database
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}

// Clear drops every key in the store.
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// Backup writes a full backup of the store to w.
func (s *Store) Backup(w io.Writer) (uint64, error) {
	return s.db.Backup(w, 0)
}

// Load restores a backup produced by Backup.
func (s *Store) Load(r io.Reader) error {
	return s.db.Load(r, 4)
}

// SortComments orders comments by creation time, oldest first.
func SortComments(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].Created.Equal(comments[j].Created) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].Created.Before(comments[j].Created)
	})
}

// badgerLogger forwards Badger's internal logging to slog. Info and debug
// chatter is dropped.
type badgerLogger struct {
	logger *slog.Logger
}

func newBadgerLogger(logger *slog.Logger) badger.Logger {
	if logger == nil {
		return nil
	}
	return &badgerLogger{logger: logger.With("component", "badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(string, ...interface{}) {}

func (l *badgerLogger) Debugf(string, ...interface{}) {}
