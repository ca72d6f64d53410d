package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/book"
)

func addContact(t *testing.T, b *book.AddressBook, name, phone string) *book.Record {
	t.Helper()
	r := newRecord(t, name)
	if phone != "" {
		require.NoError(t, r.AddPhone(phone))
	}
	b.AddRecord(r)
	return r
}

func TestAddressBook_AddFindDelete(t *testing.T) {
	b := book.New()
	addContact(t, b, "Alice", "0501234567")

	r := b.Find("Alice")
	require.NotNil(t, r)
	assert.Equal(t, "Alice", r.Name())

	assert.Nil(t, b.Find("Bob"))
	assert.False(t, b.Delete("Bob"))

	assert.True(t, b.Delete("Alice"))
	assert.Nil(t, b.Find("Alice"))
	assert.Zero(t, b.Len())
}

func TestAddressBook_AddRecord_LastWriteWins(t *testing.T) {
	b := book.New()
	addContact(t, b, "Alice", "0501234567")
	addContact(t, b, "Bob", "0502222222")

	// Re-adding Alice overwrites content but keeps her insertion slot.
	replacement := newRecord(t, "Alice")
	require.NoError(t, replacement.AddPhone("0503333333"))
	b.AddRecord(replacement)

	assert.Equal(t, []string{"Alice", "Bob"}, b.Names())
	assert.Equal(t, []string{"+380503333333"}, b.Find("Alice").Phones())
	assert.Equal(t, 2, b.Len())
}

func TestAddressBook_FindPhoneGlobal(t *testing.T) {
	b := book.New()
	addContact(t, b, "Alice", "0501234567")
	addContact(t, b, "Bob", "0507654321")

	// Differently formatted input must still resolve to the owner.
	owner, ok := b.FindPhoneGlobal("050-123-45-67")
	assert.True(t, ok)
	assert.Equal(t, "Alice", owner)

	_, ok = b.FindPhoneGlobal("0509999999")
	assert.False(t, ok)

	// After deletion the phone is free again.
	b.Delete("Alice")
	_, ok = b.FindPhoneGlobal("+380501234567")
	assert.False(t, ok)
}

func TestAddressBook_FindEmailGlobal(t *testing.T) {
	b := book.New()
	r := addContact(t, b, "Alice", "")
	require.NoError(t, r.AddEmail("alice@test.com"))
	addContact(t, b, "Bob", "")

	owner, ok := b.FindEmailGlobal("alice@test.com")
	assert.True(t, ok)
	assert.Equal(t, "Alice", owner)

	_, ok = b.FindEmailGlobal("bob@test.com")
	assert.False(t, ok)
	_, ok = b.FindEmailGlobal("")
	assert.False(t, ok, "records without an email must not match the empty string")
}

func TestAddressBook_UpcomingBirthdays(t *testing.T) {
	today := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	b := book.New()

	soon := addContact(t, b, "Soon", "")
	require.NoError(t, soon.AddBirthday("18-06-1990"))

	tieFirst := addContact(t, b, "TieFirst", "")
	require.NoError(t, tieFirst.AddBirthday("20-06-1991"))

	tieSecond := addContact(t, b, "TieSecond", "")
	require.NoError(t, tieSecond.AddBirthday("20-06-1985"))

	outside := addContact(t, b, "Outside", "")
	require.NoError(t, outside.AddBirthday("01-08-1990"))

	addContact(t, b, "NoBirthday", "")

	got := b.UpcomingBirthdays(today, 7)
	require.Len(t, got, 3)

	assert.Equal(t, "Soon", got[0].Name)
	assert.Equal(t, 3, got[0].DaysUntil)
	assert.Equal(t, "18-06-1990", got[0].Birthday)

	// Equal deltas keep insertion order (stable sort).
	assert.Equal(t, "TieFirst", got[1].Name)
	assert.Equal(t, "TieSecond", got[2].Name)
	assert.Equal(t, got[1].DaysUntil, got[2].DaysUntil)
}

func TestAddressBook_UpcomingBirthdays_TodayIncluded(t *testing.T) {
	today := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	b := book.New()
	r := addContact(t, b, "Birthday Person", "")
	require.NoError(t, r.AddBirthday("15-06-2000"))

	got := b.UpcomingBirthdays(today, 0)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].DaysUntil)
}

func TestAddressBook_TagQueries(t *testing.T) {
	b := book.New()
	alice := addContact(t, b, "Alice", "")
	alice.AddTag("VIP")
	alice.AddTag("family")

	bob := addContact(t, b, "Bob", "")
	bob.AddTag("vip")

	addContact(t, b, "Carol", "")

	// Case-insensitive search, insertion order.
	assert.Equal(t, []string{"Alice", "Bob"}, b.FindByTag("Vip"))
	assert.Empty(t, b.FindByTag("work"))

	unique := b.UniqueTags()
	assert.Len(t, unique, 2)
	assert.Contains(t, unique, "vip")
	assert.Contains(t, unique, "family")

	all := b.AllTags()
	assert.Len(t, all, 2, "records without tags are excluded")
	assert.Equal(t, []string{"vip", "family"}, all["Alice"])
}

func TestAddressBook_Clear(t *testing.T) {
	b := book.New()
	addContact(t, b, "Alice", "0501234567")
	addContact(t, b, "Bob", "")

	b.Clear()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Names())
	_, ok := b.FindPhoneGlobal("0501234567")
	assert.False(t, ok)
}
