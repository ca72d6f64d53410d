package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// writeVCard exports the book as a vCard 4.0 stream: FN for the name,
// TEL per phone, EMAIL, BDAY, one NOTE per note, CATEGORIES for tags.
func writeVCard(w io.Writer, b *book.AddressBook) error {
	enc := vcard.NewEncoder(w)
	for _, r := range b.Records() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldFormattedName, r.Name())
		for _, p := range r.Phones() {
			card.AddValue(vcard.FieldTelephone, p)
		}
		if email := r.Email(); email != "" {
			card.SetValue(vcard.FieldEmail, email)
		}
		if bday := r.Birthday(); bday != nil {
			card.SetValue(vcard.FieldBirthday, bday.Date.Format(config.DateFormatFullDash))
		}
		for _, n := range r.Notes() {
			card.AddValue(vcard.FieldNote, n)
		}
		if tags := r.Tags(); len(tags) > 0 {
			card.SetValue(vcard.FieldCategories, strings.Join(tags, config.JoinTags))
		}
		vcard.ToV4(card)
		if err := enc.Encode(card); err != nil {
			return err
		}
	}
	return nil
}

// readVCard merges a vCard stream into the book. Malformed cards and
// cards without an FN are skipped with a warning to maximize recovery;
// too many consecutive decode failures mean the stream itself is broken
// and the whole import is rejected.
func readVCard(r io.Reader, b *book.AddressBook) error {
	dec := vcard.NewDecoder(r)
	decodeFailures := 0
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			decodeFailures++
			if decodeFailures > config.MaxCardSkips {
				return fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err,
			)
			continue
		}
		decodeFailures = 0

		name := card.Value(vcard.FieldFormattedName)
		if name == "" {
			name = card.Value(vcard.FieldName)
		}
		if name == "" {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, "card has no FN or N",
			)
			continue
		}

		e := Entry{
			Phones: card.Values(vcard.FieldTelephone),
			Email:  card.Value(vcard.FieldEmail),
			Notes:  card.Values(vcard.FieldNote),
		}
		if cats := card.Value(vcard.FieldCategories); cats != "" {
			e.Tags = strings.Split(cats, config.JoinTags)
		}
		if raw := card.Value(vcard.FieldBirthday); raw != "" {
			if date, err := parseVCardDate(raw); err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyValue, raw,
				)
			} else {
				e.Birthday = date.Format(config.DateFormatBirthday)
			}
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

// parseVCardDate handles the BDAY formats encountered in the wild.
// Truncated dates (--MM-DD) get the leap-safe fallback year.
func parseVCardDate(value string) (time.Time, error) {
	withYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, layout := range withYear {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	withoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, layout := range withoutYear {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}

func writeVCardFile(path string, b *book.AddressBook) error {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return err
	}
	if err := writeVCard(f, b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readVCardFile(path string, b *book.AddressBook) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return readVCard(f, b)
}
