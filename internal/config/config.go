package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote imports.
var UserAgent = "Go-Assistant/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Assistant"
	AppID       = "com.github.tartampluch.go-assistant"
	LogFileName = "app.log"
	Prompt      = "bot> "
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the log file and every persisted data file.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating the data and cache directories.
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to an optional settings file (yaml/toml/json)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	// CountryCode is the fixed national prefix for this deployment.
	// A bare 10-digit number is canonicalized to +<CountryCode><digits>.
	CountryCode = "38"

	DefaultDataDir       = "user_address_book"
	DefaultLookaheadDays = 21
	DefaultLanguage      = "en"

	// AutoHelpThreshold is the number of consecutive soft failures
	// (empty lines, unknown commands) before the command catalog is
	// shown automatically.
	AutoHelpThreshold = 6

	// WipeConfirmWord must be typed verbatim to confirm delete_all.
	WipeConfirmWord = "YES"

	// DefaultLeapYear is the fallback year for vCard dates like --02-29.
	DefaultLeapYear = 2000

	// UIDSalt seeds deterministic calendar UID generation so that
	// regenerated feeds keep stable identifiers.
	UIDSalt       = "go-assistant-v1-"
	UIDHashLength = 16
)

// Settings keys (viper) and environment prefix.
const (
	EnvPrefix        = "ASSISTANT"
	KeyDataDir       = "data_dir"
	KeyLookaheadDays = "lookahead_days"
	KeyAutoHelp      = "auto_help_threshold"
	KeyLanguage      = "language"
)

// -----------------------------------------------------------------------------
// Persistence: Files, Formats & Delimiters
// -----------------------------------------------------------------------------

const (
	// Storage file names inside the data directory.
	FileJSON     = "contacts.json"
	FileCSV      = "contacts.csv"
	FileSnapshot = "contacts.gob"

	// SnapshotVersion guards the binary snapshot against incompatible
	// readers. Bump on any change to the entry shape.
	SnapshotVersion = 1

	// Multi-valued field delimiters for the tabular mirror.
	JoinPhones = "|"
	JoinNotes  = " ; "
	JoinTags   = ","

	// MaxCardSkips bounds consecutive undecodable vCards before the
	// whole stream is declared corrupt instead of skipped through.
	MaxCardSkips = 10

	// File extensions recognized by import/export.
	ExtJSON  = ".json"
	ExtCSV   = ".csv"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// CSVHeader is the column order of the tabular mirror.
var CSVHeader = []string{"name", "phones", "email", "birthday", "notes", "tags"}

// -----------------------------------------------------------------------------
// Date Layouts
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the only accepted input shape for birthdays.
	DateFormatBirthday = "02-01-2006"

	// Layouts used for parsing vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Assistant//Calendar//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goassistant"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// StubVCalendar is the minimal valid iCalendar object used when no events
// are generated, so consumers never see an invalid feed.
const StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

// -----------------------------------------------------------------------------
// Network & Limits (remote import)
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrEmptyName      = "contact name cannot be empty"
	ErrInvalidPhone   = "invalid phone number"
	ErrInvalidEmail   = "invalid email address"
	ErrInvalidBday    = "invalid date format, use DD-MM-YYYY"
	ErrPhoneNotFound  = "phone not found"
	ErrNoteIndex      = "note index out of range"
	ErrContactMissing = "contact not found"
	ErrDupPhone       = "phone already belongs to another contact"
	ErrDupEmail       = "email already belongs to another contact"
	ErrBadFormat      = "unsupported file format"
	ErrPathRequired   = "path required"

	ErrSnapshotVersion = "snapshot version mismatch"
	ErrJSONDecode      = "failed to decode contacts store"
	ErrCSVDecode       = "failed to decode tabular mirror"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrVCardDecode     = "failed to decode vCard stream"
	ErrDateParse       = "unable to parse date"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create directory"
	ErrAppFailed       = "application failed unexpectedly"
	ErrSettingsLoad    = "failed to load settings file"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgBookLoaded     = "Address book loaded"
	MsgSnapshotHit    = "Loaded address book from binary snapshot"
	MsgSnapshotMiss   = "Binary snapshot unusable, falling back to structured store"
	MsgStoreMissing   = "No persisted data found, starting with an empty book"
	MsgSkippedEntry   = "Skipping malformed entry"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSyncDone       = "All representations written"
	MsgSyncPartial    = "Sync completed with errors"
	MsgImportDone     = "Import merged into address book"
	MsgExportDone     = "Address book exported"
	MsgCalendarDone   = "Birthday calendar generated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgSessionEnd     = "Input stream closed, leaving command loop"
	MsgCtxCancel      = "Context cancelled, leaving command loop"
	MsgHandlerFailed  = "Command handler failed"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSettingsLoaded = "Settings resolved"
)

// -----------------------------------------------------------------------------
// Translation Keys (must exist in locales/active.*.json)
// -----------------------------------------------------------------------------

const (
	TKeyGreeting      = "greeting"
	TKeyHowHelp       = "how_help"
	TKeyGoodbye       = "goodbye"
	TKeyUnknownCmd    = "unknown_command"
	TKeyNeedHelpHint  = "need_help_hint"
	TKeyHelpHeader    = "help_header"
	TKeyUsageHint     = "usage_hint"
	TKeyMissingArgs   = "missing_args"
	TKeyContactAdded  = "contact_added"
	TKeyContactUpdate = "contact_updated"
	TKeyContactDel    = "contact_deleted"
	TKeyContactNone   = "contact_not_found"
	TKeyContactExists = "contact_exists"
	TKeyBookEmpty     = "book_empty"
	TKeyPhoneAdded    = "phone_added"
	TKeyPhoneChanged  = "phone_changed"
	TKeyPhoneRemoved  = "phone_removed"
	TKeyPhoneMissing  = "phone_not_found"
	TKeyPhoneInvalid  = "phone_invalid"
	TKeyPhoneTaken    = "phone_taken"
	TKeyPhoneOwner    = "phone_owner"
	TKeyPhoneOwnerNo  = "phone_owner_none"
	TKeyPhonesNone    = "phones_none"
	TKeyEmailAdded    = "email_added"
	TKeyEmailInvalid  = "email_invalid"
	TKeyEmailTaken    = "email_taken"
	TKeyEmailNone     = "email_none"
	TKeyBdayAdded     = "birthday_added"
	TKeyBdayInvalid   = "birthday_invalid"
	TKeyBdayNone      = "birthday_none"
	TKeyBdayToday     = "birthday_today"
	TKeyBdayInDays    = "birthday_in_days"
	TKeyBdaysNone     = "birthdays_none"
	TKeyBdaysHeader   = "birthdays_header"
	TKeyNoteAdded     = "note_added"
	TKeyNoteChanged   = "note_changed"
	TKeyNoteRemoved   = "note_removed"
	TKeyNoteBadIndex  = "note_bad_index"
	TKeyNotesNone     = "notes_none"
	TKeyNotesAllNone  = "notes_all_none"
	TKeyNotesHeader   = "notes_header"
	TKeyTagAdded      = "tag_added"
	TKeyTagRemoved    = "tag_removed"
	TKeyTagsNone      = "tags_none"
	TKeyTagMatchNone  = "tag_matches_none"
	TKeyTagsAllNone   = "tags_all_none"
	TKeySearchNone    = "search_none"
	TKeyWipeConfirm   = "delete_all_confirm"
	TKeyWipeDone      = "delete_all_done"
	TKeyWipeCancelled = "delete_all_cancelled"
	TKeyImportDone    = "import_done"
	TKeyImportFailed  = "import_failed"
	TKeyExportDone    = "export_done"
	TKeyExportFailed  = "export_failed"
	TKeyCalendarDone  = "calendar_done"
	TKeyCalendarFail  = "calendar_failed"
	TKeySaveFailed    = "save_failed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyName      = "name"
	LogKeyCommand   = "command"
	LogKeyCount     = "count"
	LogKeyValue     = "value"
	LogKeyFormat    = "format"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompStorage  = "storage"
	CompCalendar = "calendar"
	CompFetcher  = "fetcher"
	CompCLI      = "cli"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
