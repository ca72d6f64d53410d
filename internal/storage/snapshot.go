package storage

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// snapshot is the binary fast-path representation of the whole book.
// It is a private format: the version field lets an incompatible reader
// detect the mismatch and fall back to the structured store.
type snapshot struct {
	Version int
	Order   []string
	Entries map[string]Entry
}

func writeSnapshot(w io.Writer, b *book.AddressBook) error {
	snap := snapshot{
		Version: config.SnapshotVersion,
		Order:   b.Names(),
		Entries: make(map[string]Entry, b.Len()),
	}
	for _, r := range b.Records() {
		snap.Entries[r.Name()] = entryFromRecord(r)
	}
	return gob.NewEncoder(w).Encode(snap)
}

// readSnapshot rebuilds a book from the binary snapshot. Unlike the
// structured store there is no per-entry recovery: the snapshot is a
// cache, and any inconsistency makes the whole file untrustworthy.
func readSnapshot(r io.Reader, b *book.AddressBook) error {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return err
	}
	if snap.Version != config.SnapshotVersion {
		return fmt.Errorf("%s: got %d, want %d",
			config.ErrSnapshotVersion, snap.Version, config.SnapshotVersion)
	}
	for _, name := range snap.Order {
		e, ok := snap.Entries[name]
		if !ok {
			return fmt.Errorf("%s: order references unknown entry %q",
				config.ErrSnapshotVersion, name)
		}
		rec, err := recordFromEntry(name, e)
		if err != nil {
			return err
		}
		b.AddRecord(rec)
	}
	return nil
}

func writeSnapshotFile(path string, b *book.AddressBook) error {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return err
	}
	if err := writeSnapshot(f, b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readSnapshotFile(path string, b *book.AddressBook) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return readSnapshot(f, b)
}
