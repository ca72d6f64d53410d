package calendar_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/calendar"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func recordWithBirthday(t *testing.T, name, bday string) *book.Record {
	t.Helper()
	r, err := book.NewRecord(name)
	require.NoError(t, err)
	require.NoError(t, r.AddBirthday(bday))
	return r
}

func TestGenerate_BirthdayToday(t *testing.T) {
	// Scenario: one contact whose birthday falls on the mocked "today".
	r := recordWithBirthday(t, "John Doe", "01-01-2000")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
	}

	icsData, today, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, today, "Should identify one birthday today")

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR", "Should start with VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: John Doe (25)", "Born 2000, now 2025 -> 25")
}

func TestGenerate_GeneratesYearRange(t *testing.T) {
	// Events for Prev Year, Current Year, Next Year (Total 3).
	r := recordWithBirthday(t, "Range Test", "31-12-1990")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, _, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231", "Should include previous year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231", "Should include current year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231", "Should include next year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestGenerate_BabyBornThisYear(t *testing.T) {
	// Born 01-05-2025, current date 01-01-2025.
	// Expected: 2024 skipped, 2025 (birth), 2026 (1 year).
	r := recordWithBirthday(t, "Baby", "01-05-2025")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string, age int) string {
			if age == 0 {
				return fmt.Sprintf("Birthday: %s (Birth)", name)
			}
			return fmt.Sprintf("Birthday: %s (%d)", name, age)
		},
	}

	icsData, _, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501", "Should NOT generate event before birth")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (Birth)")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (1)")
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestGenerate_FutureBirth(t *testing.T) {
	// Due date 2027, current date 2025: no events in the 3-year window.
	r := recordWithBirthday(t, "Future Baby", "01-01-2027")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, today, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)
	assert.Zero(t, today)
	assert.NotContains(t, string(icsData), "BEGIN:VEVENT")
	// Still a valid VCALENDAR wrapper.
	assert.Contains(t, string(icsData), "BEGIN:VCALENDAR")
}

func TestGenerate_LeapYear_EdgeCase(t *testing.T) {
	// Leapling born Feb 29th shows up on March 1st in a non-leap year.
	r := recordWithBirthday(t, "Leap Baby", "29-02-2000")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	icsData, today, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, today, "Leapling birthday lands on March 1st in non-leap year")
	assert.Contains(t, string(icsData), "DTSTART;VALUE=DATE:20250301")
}

func TestGenerate_WithReminders(t *testing.T) {
	r := recordWithBirthday(t, "Alarm Test", "01-01-1990")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	// "-P1D" means 1 day before.
	icsData, _, err := gen.Generate([]*book.Record{r}, "-P1D")
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VALARM", "ICS should contain an alarm component")
	assert.Contains(t, icsStr, "TRIGGER:-P1D", "Alarm trigger should match configuration")
	assert.Contains(t, icsStr, "ACTION:DISPLAY", "Alarm action should be DISPLAY")
}

func TestGenerate_SkipsRecordsWithoutBirthday(t *testing.T) {
	noBday, err := book.NewRecord("No Birthday")
	require.NoError(t, err)
	withBday := recordWithBirthday(t, "Has Birthday", "15-06-1990")

	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, _, genErr := gen.Generate([]*book.Record{noBday, withBday}, "")
	require.NoError(t, genErr)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "Has Birthday")
	assert.NotContains(t, icsStr, "No Birthday")
}

func TestGenerate_EmptyBook_ProducesValidStub(t *testing.T) {
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, today, err := gen.Generate(nil, "")
	require.NoError(t, err)
	assert.Zero(t, today)

	icsStr := string(icsData)
	assert.True(t, strings.HasPrefix(icsStr, "BEGIN:VCALENDAR"))
	assert.Contains(t, icsStr, "END:VCALENDAR")
	assert.NotContains(t, icsStr, "BEGIN:VEVENT")
}

func TestGenerate_DeterministicUIDs(t *testing.T) {
	r := recordWithBirthday(t, "Stable", "10-10-1990")
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	first, _, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)
	second, _, err := gen.Generate([]*book.Record{r}, "")
	require.NoError(t, err)

	uids := func(ics string) []string {
		var out []string
		for _, line := range strings.Split(ics, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				out = append(out, line)
			}
		}
		return out
	}

	firstUIDs := uids(string(first))
	require.Len(t, firstUIDs, 3)
	assert.Equal(t, firstUIDs, uids(string(second)), "Regenerated feeds keep identical UIDs")
}
