package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// writeCSV renders the tabular mirror: one row per contact, multi-valued
// fields joined with the fixed delimiters.
func writeCSV(w io.Writer, b *book.AddressBook) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(config.CSVHeader); err != nil {
		return err
	}
	for _, r := range b.Records() {
		e := entryFromRecord(r)
		row := []string{
			r.Name(),
			strings.Join(e.Phones, config.JoinPhones),
			e.Email,
			e.Birthday,
			strings.Join(e.Notes, config.JoinNotes),
			strings.Join(e.Tags, config.JoinTags),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCSV merges a tabular mirror into the book. Rows without a name and
// rows whose fields fail validation are skipped with a warning.
func readCSV(r io.Reader, b *book.AddressBook) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, we index defensively

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCSVDecode, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	split := func(val, delim string) []string {
		if val == "" {
			return nil
		}
		var out []string
		for _, item := range strings.Split(val, delim) {
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrCSVDecode, err)
		}

		name := field(row, "name")
		if name == "" {
			continue
		}
		e := Entry{
			Phones:   split(field(row, "phones"), config.JoinPhones),
			Email:    field(row, "email"),
			Birthday: field(row, "birthday"),
			Notes:    split(field(row, "notes"), config.JoinNotes),
			Tags:     split(field(row, "tags"), config.JoinTags),
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
}

func writeCSVFile(path string, b *book.AddressBook) error {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return err
	}
	if err := writeCSV(f, b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readCSVFile(path string, b *book.AddressBook) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return readCSV(f, b)
}
