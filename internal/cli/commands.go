package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/calendar"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/validate"
)

// Command is one entry of the interpreter's table. The table is built
// at startup and passed into the session; there is no package-level
// mutable registry.
type Command struct {
	Name    string
	Usage   string
	Help    string
	MinArgs int
	Run     func(ctx context.Context, a *App, args []string) (string, error)
}

// commandTable builds the full command surface in display order.
func commandTable() (map[string]*Command, []string) {
	list := []*Command{
		{Name: "help", Usage: "help", Help: "show this catalog",
			Run: func(_ context.Context, a *App, _ []string) (string, error) {
				return a.renderHelp(), nil
			}},
		{Name: "add", Usage: "add <name> [phone] [email] [birthday]", Help: "add a contact, or fields to an existing one", MinArgs: 1,
			Run: handleAdd},
		{Name: "add_phone", Usage: "add_phone <name> <phone>", Help: "add another phone to a contact", MinArgs: 2,
			Run: handleAdd},
		{Name: "change", Usage: "change <name> <old_phone> <new_phone>", Help: "replace one of a contact's phones", MinArgs: 3,
			Run: handleChange},
		{Name: "phone", Usage: "phone <name|number>", Help: "show a contact's phones, or who owns a number", MinArgs: 1,
			Run: handlePhone},
		{Name: "delete", Usage: "delete <name>", Help: "remove a contact", MinArgs: 1,
			Run: handleDelete},
		{Name: "search", Usage: "search <query>", Help: "find contacts by name or phone substring", MinArgs: 1,
			Run: handleSearch},
		{Name: "add_email", Usage: "add_email <name> <email>", Help: "set a contact's email", MinArgs: 2,
			Run: handleAddEmail},
		{Name: "add_birthday", Usage: "add_birthday <name> <DD-MM-YYYY>", Help: "set a contact's birthday", MinArgs: 2,
			Run: handleAddBirthday},
		{Name: "days_to_bday", Usage: "days_to_bday <name>", Help: "days until a contact's next birthday", MinArgs: 1,
			Run: handleDaysToBday},
		{Name: "birthdays", Usage: "birthdays [days]", Help: "contacts with birthdays in the coming window",
			Run: handleBirthdays},
		{Name: "all", Usage: "all", Help: "show every contact",
			Run: handleAll},
		{Name: "list", Usage: "list", Help: "alias for all",
			Run: handleAll},
		{Name: "add_note", Usage: "add_note <name> <text...>", Help: "append a note to a contact", MinArgs: 2,
			Run: handleAddNote},
		{Name: "edit_note", Usage: "edit_note <name> <n> <text...>", Help: "replace a contact's n-th note", MinArgs: 3,
			Run: handleEditNote},
		{Name: "delete_note", Usage: "delete_note <name> <n>", Help: "remove a contact's n-th note", MinArgs: 2,
			Run: handleDeleteNote},
		{Name: "list_notes", Usage: "list_notes [name]", Help: "show one contact's notes, or everyone's",
			Run: handleListNotes},
		{Name: "search_notes", Usage: "search_notes <query>", Help: "find notes by substring", MinArgs: 1,
			Run: handleSearchNotes},
		{Name: "add_tag", Usage: "add_tag <name> <tag>", Help: "tag a contact", MinArgs: 2,
			Run: handleAddTag},
		{Name: "remove_tag", Usage: "remove_tag <name> <tag>", Help: "untag a contact", MinArgs: 2,
			Run: handleRemoveTag},
		{Name: "list_tags", Usage: "list_tags", Help: "show every tag and its contacts",
			Run: handleListTags},
		{Name: "filter_by_tag", Usage: "filter_by_tag <tag>", Help: "show contacts carrying a tag", MinArgs: 1,
			Run: handleFilterByTag},
		{Name: "import", Usage: "import <path|url>", Help: "merge contacts from a file or http(s) URL", MinArgs: 1,
			Run: handleImport},
		{Name: "export", Usage: "export <path>", Help: "write the book to a .json/.csv/.vcf file", MinArgs: 1,
			Run: handleExport},
		{Name: "calendar", Usage: "calendar <path>", Help: "write an iCalendar birthday feed", MinArgs: 1,
			Run: handleCalendar},
		{Name: "delete_all", Usage: "delete_all", Help: "erase every contact (asks for confirmation)",
			Run: handleDeleteAll},
		{Name: "exit", Usage: "exit", Help: "save and leave",
			Run: handleExit},
		{Name: "close", Usage: "close", Help: "alias for exit",
			Run: handleExit},
	}

	table := make(map[string]*Command, len(list))
	order := make([]string, 0, len(list))
	for _, c := range list {
		table[c.Name] = c
		order = append(order, c.Name)
	}
	return table, order
}

func (a *App) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(a.catalog.Get(config.TKeyHelpHeader))
	for _, name := range a.order {
		c := a.commands[name]
		sb.WriteString(fmt.Sprintf("\n  %-40s %s", c.Usage, c.Help))
	}
	return sb.String()
}

// mustFind resolves a contact name or fails with the user-facing
// not-found message.
func (a *App) mustFind(name string) (*book.Record, error) {
	r := a.book.Find(name)
	if r == nil {
		return nil, errors.New(a.catalog.Getf(config.TKeyContactNone, map[string]any{"Name": name}))
	}
	return r, nil
}

// formatRecord renders one contact as a single display line, omitting
// empty fields.
func (a *App) formatRecord(r *book.Record) string {
	parts := []string{r.Name()}
	if p := r.Phones(); len(p) > 0 {
		parts = append(parts, "phones: "+strings.Join(p, ", "))
	}
	if e := r.Email(); e != "" {
		parts = append(parts, "email: "+e)
	}
	if b := r.Birthday(); b != nil {
		parts = append(parts, "birthday: "+b.Text)
	}
	if n := r.Notes(); len(n) > 0 {
		parts = append(parts, "notes: "+strings.Join(n, config.JoinNotes))
	}
	if t := r.Tags(); len(t) > 0 {
		parts = append(parts, "tags: "+strings.Join(t, ", "))
	}
	return strings.Join(parts, " | ")
}

// -----------------------------------------------------------------------------
// Contact & phone handlers
// -----------------------------------------------------------------------------

// handleAdd serves both add and add_phone: it creates the contact on
// first mention and merges the given fields into an existing one
// otherwise. Phone, email, and birthday are all optional; every
// uniqueness and validity check runs before any mutation, so a rejected
// line leaves the book untouched.
func handleAdd(_ context.Context, a *App, args []string) (string, error) {
	name := args[0]
	var phone, email, bday string
	if len(args) > 1 {
		phone = args[1]
	}
	if len(args) > 2 {
		email = args[2]
	}
	if len(args) > 3 {
		bday = args[3]
	}

	if phone != "" {
		if !validate.ValidatePhone(phone) {
			return "", errors.New(a.catalog.Getf(config.TKeyPhoneInvalid, map[string]any{"Value": phone}))
		}
		if owner, ok := a.book.FindPhoneGlobal(phone); ok && owner != name {
			return "", errors.New(a.catalog.Getf(config.TKeyPhoneTaken,
				map[string]any{"Value": validate.NormalizePhone(phone), "Owner": owner}))
		}
	}
	if email != "" {
		if !validate.ValidateEmail(email) {
			return "", errors.New(a.catalog.Getf(config.TKeyEmailInvalid, map[string]any{"Value": email}))
		}
		if owner, ok := a.book.FindEmailGlobal(email); ok && owner != name {
			return "", errors.New(a.catalog.Getf(config.TKeyEmailTaken,
				map[string]any{"Value": email, "Owner": owner}))
		}
	}
	if bday != "" {
		if _, err := validate.ParseBirthday(bday); err != nil {
			return "", errors.New(a.catalog.Get(config.TKeyBdayInvalid))
		}
	}

	r := a.book.Find(name)
	created := r == nil
	if created {
		var err error
		if r, err = book.NewRecord(name); err != nil {
			return "", err
		}
	}

	if phone != "" {
		if err := r.AddPhone(phone); err != nil {
			return "", errors.New(a.catalog.Getf(config.TKeyPhoneInvalid, map[string]any{"Value": phone}))
		}
	}
	if email != "" {
		if err := r.AddEmail(email); err != nil {
			return "", errors.New(a.catalog.Getf(config.TKeyEmailInvalid, map[string]any{"Value": email}))
		}
	}
	if bday != "" {
		if err := r.AddBirthday(bday); err != nil {
			return "", errors.New(a.catalog.Get(config.TKeyBdayInvalid))
		}
	}

	if created {
		a.book.AddRecord(r)
		return a.catalog.Getf(config.TKeyContactAdded, map[string]any{"Name": name}), nil
	}
	return a.catalog.Getf(config.TKeyContactUpdate, map[string]any{"Name": name}), nil
}

func handleChange(_ context.Context, a *App, args []string) (string, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}

	if owner, ok := a.book.FindPhoneGlobal(newPhone); ok && owner != name {
		return "", errors.New(a.catalog.Getf(config.TKeyPhoneTaken,
			map[string]any{"Value": validate.NormalizePhone(newPhone), "Owner": owner}))
	}

	switch err := r.EditPhone(oldPhone, newPhone); {
	case errors.Is(err, book.ErrPhoneNotFound):
		return "", errors.New(a.catalog.Getf(config.TKeyPhoneMissing, map[string]any{"Name": name}))
	case errors.Is(err, book.ErrInvalidPhone):
		return "", errors.New(a.catalog.Getf(config.TKeyPhoneInvalid, map[string]any{"Value": newPhone}))
	case err != nil:
		return "", err
	}
	return a.catalog.Getf(config.TKeyPhoneChanged, map[string]any{"Name": name}), nil
}

// handlePhone answers both directions: a contact name lists its phones,
// a valid number names its owner.
func handlePhone(_ context.Context, a *App, args []string) (string, error) {
	arg := args[0]

	if validate.ValidatePhone(arg) {
		normalized := validate.NormalizePhone(arg)
		if owner, ok := a.book.FindPhoneGlobal(arg); ok {
			return a.catalog.Getf(config.TKeyPhoneOwner,
				map[string]any{"Value": normalized, "Owner": owner}), nil
		}
		return a.catalog.Getf(config.TKeyPhoneOwnerNo, map[string]any{"Value": normalized}), nil
	}

	r, err := a.mustFind(arg)
	if err != nil {
		return "", err
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return a.catalog.Getf(config.TKeyPhonesNone, map[string]any{"Name": arg}), nil
	}
	return r.Name() + ": " + strings.Join(phones, ", "), nil
}

func handleDelete(_ context.Context, a *App, args []string) (string, error) {
	name := args[0]
	if !a.book.Delete(name) {
		return "", errors.New(a.catalog.Getf(config.TKeyContactNone, map[string]any{"Name": name}))
	}
	return a.catalog.Getf(config.TKeyContactDel, map[string]any{"Name": name}), nil
}

func handleSearch(_ context.Context, a *App, args []string) (string, error) {
	query := strings.ToLower(strings.Join(args, " "))

	var lines []string
	for _, r := range a.book.Records() {
		match := strings.Contains(strings.ToLower(r.Name()), query) ||
			(r.Email() != "" && strings.Contains(strings.ToLower(r.Email()), query))
		if !match {
			for _, p := range r.Phones() {
				if strings.Contains(p, query) {
					match = true
					break
				}
			}
		}
		if match {
			lines = append(lines, a.formatRecord(r))
		}
	}

	if len(lines) == 0 {
		return a.catalog.Getf(config.TKeySearchNone, map[string]any{"Value": strings.Join(args, " ")}), nil
	}
	return strings.Join(lines, "\n"), nil
}

// -----------------------------------------------------------------------------
// Email & birthday handlers
// -----------------------------------------------------------------------------

func handleAddEmail(_ context.Context, a *App, args []string) (string, error) {
	name, email := args[0], args[1]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}

	if owner, ok := a.book.FindEmailGlobal(email); ok && owner != name {
		return "", errors.New(a.catalog.Getf(config.TKeyEmailTaken,
			map[string]any{"Value": email, "Owner": owner}))
	}

	if err := r.AddEmail(email); err != nil {
		return "", errors.New(a.catalog.Getf(config.TKeyEmailInvalid, map[string]any{"Value": email}))
	}
	return a.catalog.Getf(config.TKeyEmailAdded, map[string]any{"Name": name}), nil
}

func handleAddBirthday(_ context.Context, a *App, args []string) (string, error) {
	name, bday := args[0], args[1]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(bday); err != nil {
		return "", errors.New(a.catalog.Get(config.TKeyBdayInvalid))
	}
	return a.catalog.Getf(config.TKeyBdayAdded, map[string]any{"Name": name}), nil
}

func handleDaysToBday(_ context.Context, a *App, args []string) (string, error) {
	name := args[0]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	days, ok := r.DaysToBirthday(a.clock.Now())
	if !ok {
		return a.catalog.Getf(config.TKeyBdayNone, map[string]any{"Name": name}), nil
	}
	if days == 0 {
		return a.catalog.Getf(config.TKeyBdayToday, map[string]any{"Name": name}), nil
	}
	return a.catalog.Getf(config.TKeyBdayInDays, map[string]any{"Name": name, "Days": days}), nil
}

func handleBirthdays(_ context.Context, a *App, args []string) (string, error) {
	window := a.lookahead
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", errors.New(a.catalog.Getf(config.TKeyMissingArgs,
				map[string]any{"Usage": a.commands["birthdays"].Usage}))
		}
		window = n
	}

	upcoming := a.book.UpcomingBirthdays(a.clock.Now(), window)
	if len(upcoming) == 0 {
		return a.catalog.Getf(config.TKeyBdaysNone, map[string]any{"Days": window}), nil
	}

	var sb strings.Builder
	sb.WriteString(a.catalog.Getf(config.TKeyBdaysHeader, map[string]any{"Days": window}))
	for _, u := range upcoming {
		sb.WriteString(fmt.Sprintf("\n  %s: %s (in %d days)", u.Name, u.Birthday, u.DaysUntil))
	}
	return sb.String(), nil
}

func handleAll(_ context.Context, a *App, _ []string) (string, error) {
	if a.book.Len() == 0 {
		return a.catalog.Get(config.TKeyBookEmpty), nil
	}
	var lines []string
	for _, r := range a.book.Records() {
		lines = append(lines, a.formatRecord(r))
	}
	return strings.Join(lines, "\n"), nil
}

// -----------------------------------------------------------------------------
// Note handlers (1-based indexes at the prompt)
// -----------------------------------------------------------------------------

func handleAddNote(_ context.Context, a *App, args []string) (string, error) {
	name, text := args[0], strings.Join(args[1:], " ")

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	r.AddNote(text)
	return a.catalog.Getf(config.TKeyNoteAdded, map[string]any{"Name": name}), nil
}

func handleEditNote(_ context.Context, a *App, args []string) (string, error) {
	name, text := args[0], strings.Join(args[2:], " ")

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return "", errors.New(a.catalog.Get(config.TKeyNoteBadIndex))
	}
	if err := r.EditNote(index-1, text); err != nil {
		return "", errors.New(a.catalog.Get(config.TKeyNoteBadIndex))
	}
	return a.catalog.Getf(config.TKeyNoteChanged, map[string]any{"Name": name, "Index": index}), nil
}

func handleDeleteNote(_ context.Context, a *App, args []string) (string, error) {
	name := args[0]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return "", errors.New(a.catalog.Get(config.TKeyNoteBadIndex))
	}
	if err := r.RemoveNote(index - 1); err != nil {
		return "", errors.New(a.catalog.Get(config.TKeyNoteBadIndex))
	}
	return a.catalog.Getf(config.TKeyNoteRemoved, map[string]any{"Name": name, "Index": index}), nil
}

// handleListNotes shows one contact's notes, or every contact's notes
// when called without an argument.
func handleListNotes(_ context.Context, a *App, args []string) (string, error) {
	if len(args) == 0 {
		var sb strings.Builder
		for _, r := range a.book.Records() {
			notes := r.Notes()
			if len(notes) == 0 {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(a.catalog.Getf(config.TKeyNotesHeader, map[string]any{"Name": r.Name()}))
			for i, note := range notes {
				sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, note))
			}
		}
		if sb.Len() == 0 {
			return a.catalog.Get(config.TKeyNotesAllNone), nil
		}
		return sb.String(), nil
	}

	name := args[0]
	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	notes := r.Notes()
	if len(notes) == 0 {
		return a.catalog.Getf(config.TKeyNotesNone, map[string]any{"Name": name}), nil
	}

	var sb strings.Builder
	sb.WriteString(a.catalog.Getf(config.TKeyNotesHeader, map[string]any{"Name": name}))
	for i, note := range notes {
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, note))
	}
	return sb.String(), nil
}

func handleSearchNotes(_ context.Context, a *App, args []string) (string, error) {
	query := strings.ToLower(strings.Join(args, " "))

	var lines []string
	for _, r := range a.book.Records() {
		for _, note := range r.Notes() {
			if strings.Contains(strings.ToLower(note), query) {
				lines = append(lines, r.Name()+": "+note)
			}
		}
	}
	if len(lines) == 0 {
		return a.catalog.Getf(config.TKeySearchNone, map[string]any{"Value": strings.Join(args, " ")}), nil
	}
	return strings.Join(lines, "\n"), nil
}

// -----------------------------------------------------------------------------
// Tag handlers
// -----------------------------------------------------------------------------

func handleAddTag(_ context.Context, a *App, args []string) (string, error) {
	name, tag := args[0], args[1]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	r.AddTag(tag)
	return a.catalog.Getf(config.TKeyTagAdded, map[string]any{"Name": name}), nil
}

// Removing an absent tag succeeds quietly.
func handleRemoveTag(_ context.Context, a *App, args []string) (string, error) {
	name, tag := args[0], args[1]

	r, err := a.mustFind(name)
	if err != nil {
		return "", err
	}
	r.RemoveTag(tag)
	return a.catalog.Getf(config.TKeyTagRemoved, map[string]any{"Name": name}), nil
}

func handleListTags(_ context.Context, a *App, _ []string) (string, error) {
	byTag := a.book.AllTags()
	if len(byTag) == 0 {
		return a.catalog.Get(config.TKeyTagsAllNone), nil
	}

	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var lines []string
	for _, tag := range tags {
		lines = append(lines, tag+": "+strings.Join(byTag[tag], ", "))
	}
	return strings.Join(lines, "\n"), nil
}

func handleFilterByTag(_ context.Context, a *App, args []string) (string, error) {
	tag := args[0]

	names := a.book.FindByTag(tag)
	if len(names) == 0 {
		return a.catalog.Getf(config.TKeyTagMatchNone, map[string]any{"Value": tag}), nil
	}

	var lines []string
	for _, name := range names {
		if r := a.book.Find(name); r != nil {
			lines = append(lines, a.formatRecord(r))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// -----------------------------------------------------------------------------
// Persistence & interchange handlers
// -----------------------------------------------------------------------------

func handleImport(ctx context.Context, a *App, args []string) (string, error) {
	path := args[0]

	if err := a.store.Import(ctx, a.book, path); err != nil {
		return "", errors.New(a.catalog.Getf(config.TKeyImportFailed, map[string]any{"Error": err.Error()}))
	}
	// A confirmed import is flushed immediately.
	if err := a.store.SyncAll(a.book); err != nil {
		return "", errors.New(a.catalog.Getf(config.TKeySaveFailed, map[string]any{"Error": err.Error()}))
	}
	return a.catalog.Getf(config.TKeyImportDone,
		map[string]any{"Path": path, "Count": a.book.Len()}), nil
}

func handleExport(_ context.Context, a *App, args []string) (string, error) {
	path := args[0]

	if err := a.store.Export(a.book, path); err != nil {
		return "", errors.New(a.catalog.Getf(config.TKeyExportFailed, map[string]any{"Error": err.Error()}))
	}
	return a.catalog.Getf(config.TKeyExportDone, map[string]any{"Path": path}), nil
}

func handleCalendar(_ context.Context, a *App, args []string) (string, error) {
	path := args[0]

	gen := &calendar.Generator{Clock: a.clock}
	data, today, err := gen.Generate(a.book.Records(), "")
	if err == nil {
		err = os.WriteFile(path, data, config.FilePermUserRW)
	}
	if err != nil {
		return "", errors.New(a.catalog.Getf(config.TKeyCalendarFail, map[string]any{"Error": err.Error()}))
	}
	return a.catalog.Getf(config.TKeyCalendarDone,
		map[string]any{"Path": path, "Today": today}), nil
}

// handleDeleteAll wipes the book only after the user types the literal
// confirmation word.
func handleDeleteAll(_ context.Context, a *App, _ []string) (string, error) {
	a.print(a.catalog.Get(config.TKeyWipeConfirm))
	answer, ok := a.readLine()
	if !ok || strings.TrimSpace(answer) != config.WipeConfirmWord {
		return a.catalog.Get(config.TKeyWipeCancelled), nil
	}

	a.book.Clear()
	if err := a.store.SyncAll(a.book); err != nil {
		return "", errors.New(a.catalog.Getf(config.TKeySaveFailed, map[string]any{"Error": err.Error()}))
	}
	return a.catalog.Get(config.TKeyWipeDone), nil
}

func handleExit(_ context.Context, _ *App, _ []string) (string, error) {
	return "", errExit
}
