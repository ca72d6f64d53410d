// Package calendar renders the address book's birthdays into an
// iCalendar feed suitable for any calendar client.
package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// Generator produces the iCalendar representation of a set of records.
type Generator struct {
	Clock book.Clock // Interface for time mocking.

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(name string, age int) string
}

// Generate builds the ICS document for every record carrying a birthday
// and returns it together with the number of birthdays falling today.
//
// Events are emitted for the previous, current, and next year so that
// calendar clients scrolling either way see entries without a refresh,
// and never before the person's birth year. UIDs are deterministic
// hashes so regenerated feeds keep stable identifiers.
func (g *Generator) Generate(records []*book.Record, reminderTrigger string) ([]byte, int, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Local time for logic, UTC only for the DTSTAMP. A birthday is a
	// local calendar date, not an absolute UTC instant.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	today := 0
	withBday := 0

	for _, r := range records {
		bday := r.Birthday()
		if bday == nil {
			continue
		}
		withBday++

		// Deterministic UID base for stability across refreshes.
		input := fmt.Sprintf(config.FormatHashInput,
			r.Name(), bday.Date.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		events, isToday := g.createEvents(r.Name(), bday.Date, reminderTrigger, now, uidBase)
		if isToday {
			today++
			slog.Info(config.MsgCalendarDone,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyName, r.Name(),
			)
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		// A valid, empty VCALENDAR; clients must never see a bare file.
		g.logStats(withBday, today)
		return []byte(config.StubVCalendar), today, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logStats(withBday, today)
	return buf.Bytes(), today, nil
}

func (g *Generator) logStats(withBday, today int) {
	slog.Debug(config.MsgCalendarDone,
		config.LogKeyComponent, config.CompCalendar,
		slog.Int("birthdays_found", withBday),
		slog.Int("birthdays_today", today),
	)
}

// createEvents generates events for CurrentYear-1, CurrentYear, and
// CurrentYear+1, skipping years before the person was born.
func (g *Generator) createEvents(name string, birthDate time.Time, reminderTrigger string, now time.Time, uidBase string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	isToday := false

	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := y - birthDate.Year()
		summary := fmt.Sprintf("Birthday: %s (%d)", name, age)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(name, age)
		}
		event.Props.SetText(config.PropSummary, summary)

		// time.Date normalizes Feb 29 to Mar 1 in non-leap years; the
		// same rollover policy as the book's birthday arithmetic.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)

		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the trigger manually to avoid a VALUE=TEXT param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
