package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// ErrUnsupportedFormat is returned by import/export for paths whose
// extension maps to no known codec.
var ErrUnsupportedFormat = errors.New(config.ErrBadFormat)

// ErrPathRequired is returned when import/export gets an empty path.
var ErrPathRequired = errors.New(config.ErrPathRequired)

// Store manages the three on-disk representations inside one data
// directory and the import/export commands against arbitrary paths.
type Store struct {
	dir     string
	fetcher Fetcher
}

// NewStore returns a store rooted at dir. The fetcher is optional; when
// nil, URL imports are rejected.
func NewStore(dir string, fetcher Fetcher) *Store {
	return &Store{dir: dir, fetcher: fetcher}
}

func (s *Store) jsonPath() string     { return filepath.Join(s.dir, config.FileJSON) }
func (s *Store) csvPath() string      { return filepath.Join(s.dir, config.FileCSV) }
func (s *Store) snapshotPath() string { return filepath.Join(s.dir, config.FileSnapshot) }

// Load reconstructs the address book from the most trustworthy available
// representation: the binary snapshot first, then the structured-record
// store. It never fails: partial corruption is skipped with warnings and
// total absence yields an empty book.
func (s *Store) Load() *book.AddressBook {
	log := slog.With(config.LogKeyComponent, config.CompStorage)

	b := book.New()
	if err := readSnapshotFile(s.snapshotPath(), b); err == nil {
		log.Info(config.MsgSnapshotHit, config.LogKeyCount, b.Len())
		return b
	} else if !os.IsNotExist(err) {
		log.Warn(config.MsgSnapshotMiss, config.LogKeyError, err)
	}

	b = book.New()
	err := readJSONFile(s.jsonPath(), b)
	switch {
	case err == nil:
		log.Info(config.MsgBookLoaded,
			config.LogKeyFile, config.FileJSON,
			config.LogKeyCount, b.Len(),
		)
	case os.IsNotExist(err):
		log.Info(config.MsgStoreMissing)
	default:
		// Malformed beyond entry-level recovery: keep whatever parsed.
		log.Warn(config.MsgSkippedEntry, config.LogKeyError, err)
	}
	return b
}

// SyncAll writes every representation: the structured-record store, then
// the binary snapshot, then the tabular mirror. A failure in one does
// not prevent attempting the others; the joined error is reported.
func (s *Store) SyncAll(b *book.AddressBook) error {
	log := slog.With(config.LogKeyComponent, config.CompStorage)
	start := time.Now()

	if err := os.MkdirAll(s.dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	var errs []error
	for _, step := range []struct {
		file  string
		write func(string, *book.AddressBook) error
	}{
		{config.FileJSON, writeJSONFile},
		{config.FileSnapshot, writeSnapshotFile},
		{config.FileCSV, writeCSVFile},
	} {
		if err := step.write(filepath.Join(s.dir, step.file), b); err != nil {
			log.Warn(config.MsgSyncPartial,
				config.LogKeyFile, step.file,
				config.LogKeyError, err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", step.file, err))
		}
	}

	if len(errs) == 0 {
		log.Debug(config.MsgSyncDone,
			config.LogKeyCount, b.Len(),
			config.LogKeyDuration, time.Since(start).Milliseconds(),
		)
	}
	return errors.Join(errs...)
}

// Export writes the book to an arbitrary path; the format is chosen by
// the file extension (.json, .csv, .vcf/.vcard).
func (s *Store) Export(b *book.AddressBook, path string) error {
	if path == "" {
		return ErrPathRequired
	}
	var err error
	switch ext(path) {
	case config.ExtJSON:
		err = writeJSONFile(path, b)
	case config.ExtCSV:
		err = writeCSVFile(path, b)
	case config.ExtVCF, config.ExtVCard:
		err = writeVCardFile(path, b)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}
	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, path,
		config.LogKeyFormat, ext(path),
	)
	return nil
}

// Import merges entries from a path or an http(s) URL into the book by
// overwrite-by-name. Invalid individual entries are skipped by the
// codecs, never failing the whole import.
func (s *Store) Import(ctx context.Context, b *book.AddressBook, path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if isURL(path) {
		return s.importRemote(ctx, b, path)
	}

	var err error
	switch ext(path) {
	case config.ExtJSON:
		err = readJSONFile(path, b)
	case config.ExtCSV:
		err = readCSVFile(path, b)
	case config.ExtVCF, config.ExtVCard:
		err = readVCardFile(path, b)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}
	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, path,
		config.LogKeyFormat, ext(path),
		config.LogKeyCount, b.Len(),
	)
	return nil
}

func (s *Store) importRemote(ctx context.Context, b *book.AddressBook, rawURL string) error {
	if s.fetcher == nil {
		return fmt.Errorf("%w: no fetcher configured for %q", ErrUnsupportedFormat, rawURL)
	}

	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	switch ext(rawURL) {
	case config.ExtJSON:
		err = readJSON(body, b)
	case config.ExtCSV:
		err = readCSV(body, b)
	case config.ExtVCF, config.ExtVCard:
		err = readVCard(body, b)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, rawURL)
	}
	if err != nil {
		return err
	}
	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyURL, rawURL,
		config.LogKeyCount, b.Len(),
	)
	return nil
}

// ext resolves the format extension for both filesystem paths and URLs.
func ext(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.ToLower(filepath.Ext(path))
}

func isURL(path string) bool {
	return strings.HasPrefix(path, config.SchemeHTTP+"://") ||
		strings.HasPrefix(path, config.SchemeHTTPS+"://")
}
