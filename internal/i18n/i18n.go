// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the user-facing strings of jiyuu and picks a locale.
//
// Strings live in an x/text message catalog keyed by Key. A Translator is
// bound to one locale; lookups fall back to English.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a translatable string.
type Key string

const (
	KeyGenerationFailed Key = "generation_failed"
	KeyLoadFailed       Key = "load_failed"
	KeyReloadHint       Key = "reload_hint"
	KeyReady            Key = "ready"
	KeyStatus           Key = "status"
	KeyPlaceholder      Key = "placeholder"
	KeyCopyCode         Key = "copy_code"
	KeyCopied           Key = "copied"
	KeyNothingToCopy    Key = "nothing_to_copy"
	KeyWelcome          Key = "welcome"
)

// Locale is a supported language with its native display name.
type Locale struct {
	Tag  language.Tag
	Name string
}

// Locales lists the supported languages. The first entry is the fallback.
var Locales = []Locale{
	{language.English, "English"},
	{language.Spanish, "Español"},
	{language.Japanese, "日本語"},
	{language.German, "Deutsch"},
	{language.French, "Français"},
	{language.Italian, "Italiano"},
	{language.BrazilianPortuguese, "Português (Brasil)"},
	{language.Russian, "Русский"},
	{language.Arabic, "العربية"},
	{language.Czech, "Čeština"},
	{language.SimplifiedChinese, "中文 (简体)"},
	{language.Korean, "한국어"},
	{language.EuropeanPortuguese, "Português (Portugal)"},
}

var (
	cat     *catalog.Builder
	matcher language.Matcher
)

func init() {
	cat = catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, strs := range translations {
		for key, text := range strs {
			if err := cat.SetString(tag, string(key), text); err != nil {
				panic("i18n: " + err.Error())
			}
		}
	}

	tags := make([]language.Tag, len(Locales))
	for i, l := range Locales {
		tags[i] = l.Tag
	}
	matcher = language.NewMatcher(tags)
}

// =============================================================================
// TRANSLATOR
// =============================================================================

// Translator renders strings for one locale.
type Translator struct {
	locale  Locale
	printer *message.Printer
}

// New returns a Translator for the closest supported match of locale.
// An empty or unparseable locale yields English.
func New(locale string) *Translator {
	loc := Match(locale)
	return &Translator{
		locale:  loc,
		printer: message.NewPrinter(loc.Tag, message.Catalog(cat)),
	}
}

// T renders key, formatting args into it when the string takes any.
func (t *Translator) T(key Key, args ...any) string {
	return t.printer.Sprintf(string(key), args...)
}

// Locale returns the locale the translator is bound to.
func (t *Translator) Locale() Locale {
	return t.locale
}

// Match returns the supported locale closest to s.
func Match(s string) Locale {
	if s == "" {
		return Locales[0]
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Locales[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Locales[0]
	}
	return Locales[idx]
}

// Detect picks the locale to use: the configured one if set, otherwise the
// POSIX locale environment (LC_ALL, LC_MESSAGES, LANG).
func Detect(configured string) string {
	if configured != "" {
		return configured
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := normalizePOSIX(os.Getenv(env)); v != "" {
			return v
		}
	}
	return ""
}

// normalizePOSIX turns "pt_BR.UTF-8@euro" into "pt-BR".
func normalizePOSIX(v string) string {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(v, "_", "-")
}
