// Package book implements the in-memory address book: one Record per
// contact and an insertion-ordered AddressBook collection with the
// global lookup helpers the command layer relies on.
package book

import (
	"time"

	"github.com/tartampluch/go-assistant/internal/validate"
)

// Birthday couples the original user-entered text with its parsed value.
// The text is what gets persisted and displayed; the date drives the
// lookahead arithmetic.
type Birthday struct {
	Text string
	Date time.Time
}

// Record stores one contact. Fields are unexported so every mutation
// goes through a validating method; accessors return copies to prevent
// aliasing hazards.
type Record struct {
	name     string
	phones   []string
	email    string
	birthday *Birthday
	notes    []string
	tags     []string
}

// NewRecord creates a record for a non-empty name. The name is the
// record's immutable identity inside a book.
func NewRecord(name string) (*Record, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Record{name: name}, nil
}

// Name returns the contact's identity key.
func (r *Record) Name() string { return r.name }

// Phones returns a copy of the normalized phone list in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	copy(out, r.phones)
	return out
}

// Email returns the single email slot, or "" when unset.
func (r *Record) Email() string { return r.email }

// Birthday returns the birthday slot, or nil when unset.
func (r *Record) Birthday() *Birthday {
	if r.birthday == nil {
		return nil
	}
	b := *r.birthday
	return &b
}

// Notes returns a copy of the note list. External indexes are 1-based;
// everything inside this package is 0-based.
func (r *Record) Notes() []string {
	out := make([]string, len(r.notes))
	copy(out, r.notes)
	return out
}

// Tags returns a copy of the normalized tags in insertion order.
func (r *Record) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// --- Phone Management ---

// AddPhone validates and appends a phone. Adding a phone that is already
// present (by normalized equality) is a no-op, not an error.
func (r *Record) AddPhone(raw string) error {
	if !validate.ValidatePhone(raw) {
		return ErrInvalidPhone
	}
	norm := validate.NormalizePhone(raw)
	for _, p := range r.phones {
		if p == norm {
			return nil
		}
	}
	r.phones = append(r.phones, norm)
	return nil
}

// RemovePhone removes entries matching the normalized value. Removing a
// phone that is not present is a silent no-op; the CLI stays forgiving.
func (r *Record) RemovePhone(raw string) {
	norm := validate.NormalizePhone(raw)
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p != norm {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces old with new in place, re-validating new.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	normOld := validate.NormalizePhone(oldRaw)
	for i, p := range r.phones {
		if p == normOld {
			if !validate.ValidatePhone(newRaw) {
				return ErrInvalidPhone
			}
			r.phones[i] = validate.NormalizePhone(newRaw)
			return nil
		}
	}
	return ErrPhoneNotFound
}

// FindPhone reports whether the record holds raw (by normalized equality)
// and returns the stored canonical form.
func (r *Record) FindPhone(raw string) (string, bool) {
	norm := validate.NormalizePhone(raw)
	for _, p := range r.phones {
		if p == norm {
			return p, true
		}
	}
	return "", false
}

// --- Email & Birthday Management ---

// AddEmail validates and overwrites the single email slot.
func (r *Record) AddEmail(raw string) error {
	if !validate.ValidateEmail(raw) {
		return ErrInvalidEmail
	}
	r.email = raw
	return nil
}

// AddBirthday parses DD-MM-YYYY and overwrites the single birthday slot.
func (r *Record) AddBirthday(raw string) error {
	date, err := validate.ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &Birthday{Text: raw, Date: date}
	return nil
}

// DaysToBirthday computes the day delta to the next occurrence of the
// birthday on or after today. Returns ok=false when no birthday is set.
//
// Candidate occurrences are built with time.Date, which normalizes
// Feb 29 to Mar 1 in non-leap years; that is the leap-day rollover
// policy of the whole application.
func (r *Record) DaysToBirthday(today time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}

	// Normalize both sides to UTC midnight so the subtraction is an
	// exact day count regardless of wall-clock time or zone.
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(day.Year(), r.birthday.Date.Month(), r.birthday.Date.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(day) {
		next = time.Date(day.Year()+1, r.birthday.Date.Month(), r.birthday.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(day) / (24 * time.Hour)), true
}

// --- Notes Management ---

// AddNote appends a note; empty text is ignored.
func (r *Record) AddNote(text string) {
	if text == "" {
		return
	}
	r.notes = append(r.notes, text)
}

// EditNote replaces the note at a 0-based index.
func (r *Record) EditNote(index int, text string) error {
	if index < 0 || index >= len(r.notes) {
		return ErrNoteIndex
	}
	r.notes[index] = text
	return nil
}

// RemoveNote deletes the note at a 0-based index.
func (r *Record) RemoveNote(index int) error {
	if index < 0 || index >= len(r.notes) {
		return ErrNoteIndex
	}
	r.notes = append(r.notes[:index], r.notes[index+1:]...)
	return nil
}

// --- Tags Management ---

// AddTag stores a trimmed, case-folded tag. Adding an empty or already
// present tag is a no-op.
func (r *Record) AddTag(raw string) {
	tag := validate.NormalizeTag(raw)
	if tag == "" {
		return
	}
	for _, t := range r.tags {
		if t == tag {
			return
		}
	}
	r.tags = append(r.tags, tag)
}

// RemoveTag removes a tag by normalized equality; absent tags are a no-op.
func (r *Record) RemoveTag(raw string) {
	tag := validate.NormalizeTag(raw)
	kept := r.tags[:0]
	for _, t := range r.tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	r.tags = kept
}

// HasTag is a case-insensitive membership test.
func (r *Record) HasTag(raw string) bool {
	tag := validate.NormalizeTag(raw)
	for _, t := range r.tags {
		if t == tag {
			return true
		}
	}
	return false
}
