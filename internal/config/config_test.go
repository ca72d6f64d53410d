package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"CountryCode", config.CountryCode},
		{"FileJSON", config.FileJSON},
		{"FileCSV", config.FileCSV},
		{"FileSnapshot", config.FileSnapshot},
		{"ICalProdid", config.ICalProdid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Greater(t, config.DefaultLookaheadDays, 0, "Default lookahead must be positive")
	assert.Greater(t, config.AutoHelpThreshold, 1, "Auto-help should not fire on the first mistake")
	assert.Equal(t, 2000, config.DefaultLeapYear, "Leap year fallback must be 2000 for consistency")
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
	assert.Greater(t, config.MaxCardSkips, 0, "Card skip budget must allow some recovery")
	assert.Len(t, config.CSVHeader, 6, "Tabular mirror has exactly six columns")
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Assistant/"), "UserAgent must start with AppName/")
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultDataDir, s.DataDir)
	assert.Equal(t, config.DefaultLookaheadDays, s.LookaheadDays)
	assert.Equal(t, config.AutoHelpThreshold, s.AutoHelpThreshold)
	assert.Equal(t, config.DefaultLanguage, s.Language)
}

func TestLoadSettings_File(t *testing.T) {
	path := t.TempDir() + "/settings.yaml"
	content := "data_dir: /tmp/book\nlookahead_days: 7\nlanguage: en\n"
	require.NoError(t, writeFile(path, content))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/book", s.DataDir)
	assert.Equal(t, 7, s.LookaheadDays)
}

func TestLoadSettings_BadFile(t *testing.T) {
	path := t.TempDir() + "/settings.yaml"
	require.NoError(t, writeFile(path, "data_dir: [unclosed"))

	_, err := config.LoadSettings(path)
	assert.Error(t, err)
}

func TestLoadSettings_RejectsNonsense(t *testing.T) {
	path := t.TempDir() + "/settings.yaml"
	require.NoError(t, writeFile(path, "lookahead_days: -3\nauto_help_threshold: 0\n"))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLookaheadDays, s.LookaheadDays)
	assert.Equal(t, config.AutoHelpThreshold, s.AutoHelpThreshold)
}
