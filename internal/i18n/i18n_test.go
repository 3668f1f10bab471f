// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEveryLocaleHasEveryKey(t *testing.T) {
	keys := translations[language.English]
	require.Len(t, translations, len(Locales))

	for _, loc := range Locales {
		strs, ok := translations[loc.Tag]
		require.True(t, ok, "no strings for %s", loc.Tag)
		for key := range keys {
			assert.NotEmpty(t, strs[key], "%s is missing %s", loc.Tag, key)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"not a locale!!", language.English},
		{"en-US", language.English},
		{"es", language.Spanish},
		{"ja-JP", language.Japanese},
		{"pt-BR", language.BrazilianPortuguese},
		{"pt-PT", language.EuropeanPortuguese},
		{"zh-CN", language.SimplifiedChinese},
		{"ko", language.Korean},
		{"cs", language.Czech},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(tc.in).Tag)
		})
	}
}

func TestTranslator_T(t *testing.T) {
	en := New("en")
	assert.Equal(t, "Go!", en.T(KeyReady))
	assert.Equal(t, "Status: Loading", en.T(KeyStatus, "Loading"))

	de := New("de-AT")
	assert.Equal(t, language.German, de.Locale().Tag)
	assert.Equal(t, "Kopiert!", de.T(KeyCopied))

	fr := New("fr")
	assert.Equal(t, "Statut : 42%", fr.T(KeyStatus, "42%"))
}

func TestDetect(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "pt_BR.UTF-8")

	assert.Equal(t, "ja", Detect("ja"))
	assert.Equal(t, "pt-BR", Detect(""))

	t.Setenv("LC_ALL", "C")
	assert.Equal(t, "pt-BR", Detect(""), "C locale should be skipped")

	t.Setenv("LANG", "")
	t.Setenv("LC_ALL", "")
	assert.Equal(t, "", Detect(""))
}
