package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// writeJSON renders the canonical structured-record store: a top-level
// mapping from contact name to Entry, in the book's insertion order.
func writeJSON(w io.Writer, b *book.AddressBook) error {
	// Encode by hand so the document preserves insertion order;
	// marshaling a Go map would sort the keys.
	records := b.Records()

	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, r := range records {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		key, err := json.Marshal(r.Name())
		if err != nil {
			return err
		}
		val, err := json.MarshalIndent(entryFromRecord(r), "  ", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n  %s: %s", key, val); err != nil {
			return err
		}
	}
	suffix := "}"
	if len(records) > 0 {
		suffix = "\n}"
	}
	_, err := io.WriteString(w, suffix)
	return err
}

// readJSON merges a structured-record store into the book. The document
// is walked token by token so the file's entry order becomes the book's
// insertion order, and a single malformed entry is skipped with a
// warning instead of failing the whole load.
func readJSON(r io.Reader, b *book.AddressBook) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrJSONDecode, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%s: expected top-level object, got %v", config.ErrJSONDecode, tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrJSONDecode, err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%s: non-string key %v", config.ErrJSONDecode, tok)
		}

		var e Entry
		if err := dec.Decode(&e); err != nil {
			// The value is not even valid JSON for an Entry; we cannot
			// resynchronize the stream past it.
			return fmt.Errorf("%s: entry %q: %w", config.ErrJSONDecode, name, err)
		}

		rec, err := recordFromEntry(name, e)
		if err != nil {
			slog.Warn(config.MsgSkippedEntry,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyName, name,
				config.LogKeyError, err,
			)
			continue
		}
		b.AddRecord(rec)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrJSONDecode, err)
	}
	return nil
}

func writeJSONFile(path string, b *book.AddressBook) error {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return err
	}
	if err := writeJSON(f, b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readJSONFile(path string, b *book.AddressBook) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return readJSON(f, b)
}
