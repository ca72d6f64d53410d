package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// Settings holds the runtime-tunable knobs of the application.
// Everything else lives in the constants of this package.
type Settings struct {
	// DataDir is the directory holding the three persisted
	// representations of the address book.
	DataDir string `mapstructure:"data_dir"`

	// LookaheadDays is the default window for the birthdays command.
	LookaheadDays int `mapstructure:"lookahead_days"`

	// AutoHelpThreshold is the consecutive soft-failure count that
	// triggers the automatic help display.
	AutoHelpThreshold int `mapstructure:"auto_help_threshold"`

	// Language selects the message catalog (ISO 639-1).
	Language string `mapstructure:"language"`
}

// LoadSettings resolves settings from defaults, an optional settings file,
// and ASSISTANT_* environment variables (in increasing precedence).
// A missing file is not an error; a malformed one is.
func LoadSettings(configFile string) (Settings, error) {
	v := viper.New()

	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyLookaheadDays, DefaultLookaheadDays)
	v.SetDefault(KeyAutoHelp, AutoHelpThreshold)
	v.SetDefault(KeyLanguage, DefaultLanguage)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	// Guard against nonsense values from the file or environment.
	if s.LookaheadDays <= 0 {
		s.LookaheadDays = DefaultLookaheadDays
	}
	if s.AutoHelpThreshold <= 0 {
		s.AutoHelpThreshold = AutoHelpThreshold
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.DataDir == "" {
		s.DataDir = DefaultDataDir
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompSettings,
		KeyDataDir, s.DataDir,
		KeyLookaheadDays, s.LookaheadDays,
		KeyLanguage, s.Language,
	)
	return s, nil
}
