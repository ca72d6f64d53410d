package messages_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/messages"
)

func TestCatalog_Get_KnownKey(t *testing.T) {
	c := messages.NewCatalog("en")
	assert.Equal(t, "Good bye!", c.Get(config.TKeyGoodbye))
	assert.Equal(t, "Invalid command.", c.Get(config.TKeyUnknownCmd))
}

func TestCatalog_Get_MissingKeyDegradesToKey(t *testing.T) {
	c := messages.NewCatalog("en")
	assert.Equal(t, "no_such_key", c.Get("no_such_key"))
}

func TestCatalog_Getf_TemplateData(t *testing.T) {
	c := messages.NewCatalog("en")

	got := c.Getf(config.TKeyContactAdded, map[string]any{"Name": "Alice"})
	assert.Equal(t, "Contact Alice added.", got)

	got = c.Getf(config.TKeyBdayInDays, map[string]any{"Name": "Bob", "Days": 5})
	assert.Equal(t, "Bob's birthday is in 5 days.", got)
}

func TestCatalog_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	c := messages.NewCatalog("xx")
	assert.Equal(t, "Good bye!", c.Get(config.TKeyGoodbye))
}

func TestCatalog_EmptyLanguageUsesDefault(t *testing.T) {
	c := messages.NewCatalog("")
	assert.Equal(t, "The address book is empty.", c.Get(config.TKeyBookEmpty))
}

func TestCatalog_LanguagesDetected(t *testing.T) {
	c := messages.NewCatalog("en")
	assert.Contains(t, c.Languages(), "en")
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the locale JSON file.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyGreeting,
		config.TKeyHowHelp,
		config.TKeyGoodbye,
		config.TKeyUnknownCmd,
		config.TKeyNeedHelpHint,
		config.TKeyHelpHeader,
		config.TKeyUsageHint,
		config.TKeyMissingArgs,
		config.TKeyContactAdded,
		config.TKeyContactUpdate,
		config.TKeyContactDel,
		config.TKeyContactNone,
		config.TKeyContactExists,
		config.TKeyBookEmpty,
		config.TKeyPhoneAdded,
		config.TKeyPhoneChanged,
		config.TKeyPhoneRemoved,
		config.TKeyPhoneMissing,
		config.TKeyPhoneInvalid,
		config.TKeyPhoneTaken,
		config.TKeyPhoneOwner,
		config.TKeyPhoneOwnerNo,
		config.TKeyPhonesNone,
		config.TKeyEmailAdded,
		config.TKeyEmailInvalid,
		config.TKeyEmailTaken,
		config.TKeyEmailNone,
		config.TKeyBdayAdded,
		config.TKeyBdayInvalid,
		config.TKeyBdayNone,
		config.TKeyBdayToday,
		config.TKeyBdayInDays,
		config.TKeyBdaysNone,
		config.TKeyBdaysHeader,
		config.TKeyNoteAdded,
		config.TKeyNoteChanged,
		config.TKeyNoteRemoved,
		config.TKeyNoteBadIndex,
		config.TKeyNotesNone,
		config.TKeyNotesAllNone,
		config.TKeyNotesHeader,
		config.TKeyTagAdded,
		config.TKeyTagRemoved,
		config.TKeyTagsNone,
		config.TKeyTagMatchNone,
		config.TKeyTagsAllNone,
		config.TKeySearchNone,
		config.TKeyWipeConfirm,
		config.TKeyWipeDone,
		config.TKeyWipeCancelled,
		config.TKeyImportDone,
		config.TKeyImportFailed,
		config.TKeyExportDone,
		config.TKeyExportFailed,
		config.TKeyCalendarDone,
		config.TKeyCalendarFail,
		config.TKeySaveFailed,
	}

	content, err := os.ReadFile("locales/active.en.json")
	require.NoError(t, err, "Must load active.en.json")

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

	for _, key := range keysToCheck {
		_, exists := jsonMap[key]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.en.json", key)
	}

	for jsonKey := range jsonMap {
		found := false
		for _, key := range keysToCheck {
			if key == jsonKey {
				found = true
				break
			}
		}
		if !found {
			t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
		}
	}
}
