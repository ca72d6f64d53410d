package book

import (
	"errors"

	"github.com/tartampluch/go-assistant/internal/config"
)

// Typed failures surfaced by Record and AddressBook operations.
// The command layer translates these into user messages; the model is
// left unmodified whenever one of them is returned.
var (
	ErrEmptyName       = errors.New(config.ErrEmptyName)
	ErrInvalidPhone    = errors.New(config.ErrInvalidPhone)
	ErrInvalidEmail    = errors.New(config.ErrInvalidEmail)
	ErrPhoneNotFound   = errors.New(config.ErrPhoneNotFound)
	ErrNoteIndex       = errors.New(config.ErrNoteIndex)
	ErrContactNotFound = errors.New(config.ErrContactMissing)

	// Global-uniqueness violations. The book never raises these itself;
	// callers detect them via FindPhoneGlobal/FindEmailGlobal before
	// mutating and report them with these sentinels.
	ErrDuplicatePhone = errors.New(config.ErrDupPhone)
	ErrDuplicateEmail = errors.New(config.ErrDupEmail)
)
