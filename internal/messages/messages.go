// Package messages holds the localized user-facing text of the command
// interpreter. Handlers never hardcode feedback strings; they ask the
// catalog by message ID so translations stay a locale file away.
package messages

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-assistant/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog resolves message IDs into user-facing text for one language.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	langs     []string
}

// NewCatalog loads every embedded locale and selects lang, falling back
// to English for missing translations.
func NewCatalog(lang string) *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return c.withLang(lang)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		c.langs = append(c.langs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return c.withLang(lang)
}

func (c *Catalog) withLang(lang string) *Catalog {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	c.localizer = i18n.NewLocalizer(c.bundle, lang, config.DefaultLanguage)
	return c
}

// Languages lists the locale codes loaded from the embedded files.
func (c *Catalog) Languages() []string {
	return c.langs
}

// Get translates a key safely; a missing key degrades to the key itself.
func (c *Catalog) Get(key string) string {
	return c.Getf(key, nil)
}

// Getf translates a key with template data, e.g.
// Getf("contact_added", map[string]any{"Name": "Alice"}).
func (c *Catalog) Getf(key string, data map[string]any) string {
	if c.localizer == nil {
		return key
	}
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
