package book

import (
	"sort"
	"time"
)

// AddressBook is the collection of all records for a session, keyed by
// unique contact name. It preserves insertion order, which Go maps do
// not: display and the birthday tie-break both depend on it.
//
// Global phone/email uniqueness is advisory: the book exposes the O(n)
// lookup helpers and command handlers consult them before mutating.
// AddRecord itself never rejects.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// UpcomingBirthday is one row of the birthday lookahead result.
type UpcomingBirthday struct {
	Name      string
	Birthday  string
	DaysUntil int
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// AddRecord inserts or overwrites by name. A name collision keeps the
// original insertion slot (last-write-wins on content, not on order).
func (b *AddressBook) AddRecord(r *Record) {
	if _, exists := b.records[r.name]; !exists {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find returns the record for name, or nil.
func (b *AddressBook) Find(name string) *Record {
	return b.records[name]
}

// Delete removes a record by name; reports whether anything was removed.
func (b *AddressBook) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear wipes every record. Used by the confirmed delete-all flow.
func (b *AddressBook) Clear() {
	b.records = make(map[string]*Record)
	b.order = nil
}

// Names returns the contact names in insertion order.
func (b *AddressBook) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// FindPhoneGlobal scans every record for a phone matching raw (by
// normalized equality) and returns the owner's name. By the uniqueness
// contract there is at most one owner.
func (b *AddressBook) FindPhoneGlobal(raw string) (string, bool) {
	for _, name := range b.order {
		if _, ok := b.records[name].FindPhone(raw); ok {
			return name, true
		}
	}
	return "", false
}

// FindEmailGlobal returns the name of the record holding the exact email.
func (b *AddressBook) FindEmailGlobal(email string) (string, bool) {
	for _, name := range b.order {
		if b.records[name].Email() == email && email != "" {
			return name, true
		}
	}
	return "", false
}

// UpcomingBirthdays lists every contact whose next birthday falls within
// windowDays of today, sorted ascending by days-until. The sort is
// stable, so contacts with equal deltas keep their insertion order.
func (b *AddressBook) UpcomingBirthdays(today time.Time, windowDays int) []UpcomingBirthday {
	var upcoming []UpcomingBirthday
	for _, name := range b.order {
		r := b.records[name]
		days, ok := r.DaysToBirthday(today)
		if !ok || days < 0 || days > windowDays {
			continue
		}
		upcoming = append(upcoming, UpcomingBirthday{
			Name:      name,
			Birthday:  r.Birthday().Text,
			DaysUntil: days,
		})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	return upcoming
}

// FindByTag returns the names of records carrying the tag
// (case-insensitive), in insertion order.
func (b *AddressBook) FindByTag(tag string) []string {
	var names []string
	for _, name := range b.order {
		if b.records[name].HasTag(tag) {
			names = append(names, name)
		}
	}
	return names
}

// UniqueTags returns the set of all tags across the book.
func (b *AddressBook) UniqueTags() map[string]struct{} {
	tags := make(map[string]struct{})
	for _, r := range b.records {
		for _, t := range r.Tags() {
			tags[t] = struct{}{}
		}
	}
	return tags
}

// AllTags maps contact name to tags, restricted to records that have at
// least one tag. Iteration-friendly: pair it with Names() for order.
func (b *AddressBook) AllTags() map[string][]string {
	out := make(map[string][]string)
	for name, r := range b.records {
		if tags := r.Tags(); len(tags) > 0 {
			out[name] = tags
		}
	}
	return out
}
