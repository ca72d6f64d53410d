// Package storage persists the address book in three representations:
// a canonical JSON structured-record store, a CSV tabular mirror, and a
// gob binary snapshot used as a fast-path cache. It also implements the
// user-invoked import/export commands, which reuse the same codecs
// against arbitrary paths (and, for import, http(s) URLs).
package storage

import (
	"fmt"

	"github.com/tartampluch/go-assistant/internal/book"
)

// Entry is the on-disk shape of one contact. It is shared by the JSON
// store, the snapshot, and (joined/split) by the tabular mirror.
//
// The zero values tolerate the legacy raw-mapping format: absent
// notes/tags decode to nil slices and a null email/birthday to "".
type Entry struct {
	Phones   []string `json:"phones"`
	Email    string   `json:"email"`
	Birthday string   `json:"birthday"`
	Notes    []string `json:"notes"`
	Tags     []string `json:"tags"`
}

// entryFromRecord flattens a record into its persisted shape.
func entryFromRecord(r *book.Record) Entry {
	e := Entry{
		Phones: r.Phones(),
		Email:  r.Email(),
		Notes:  r.Notes(),
		Tags:   r.Tags(),
	}
	if b := r.Birthday(); b != nil {
		e.Birthday = b.Text
	}
	return e
}

// recordFromEntry rebuilds a typed, validated record from persisted
// data. Any field that fails validation fails the whole entry; callers
// decide whether to skip it (load/import policy) or abort.
func recordFromEntry(name string, e Entry) (*book.Record, error) {
	r, err := book.NewRecord(name)
	if err != nil {
		return nil, err
	}
	for _, p := range e.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, fmt.Errorf("phone %q: %w", p, err)
		}
	}
	if e.Email != "" {
		if err := r.AddEmail(e.Email); err != nil {
			return nil, fmt.Errorf("email %q: %w", e.Email, err)
		}
	}
	if e.Birthday != "" {
		if err := r.AddBirthday(e.Birthday); err != nil {
			return nil, fmt.Errorf("birthday %q: %w", e.Birthday, err)
		}
	}
	for _, n := range e.Notes {
		r.AddNote(n)
	}
	for _, t := range e.Tags {
		r.AddTag(t)
	}
	return r, nil
}
