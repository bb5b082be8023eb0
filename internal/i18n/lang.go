// Package i18n holds the Arabic/English strings the widget renders.
//
// Translations are compiled in. Lookups fall back to English, then to the
// key itself, so a missing entry never renders as an empty string.
package i18n

import (
	"fmt"
	"strings"
)

// Lang is a display language.
type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// Default is the language the widget starts in.
const Default = Arabic

// Parse accepts "ar" or "en" (case-insensitive). Empty means Default.
func Parse(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Default, nil
	case "ar", "arabic":
		return Arabic, nil
	case "en", "english":
		return English, nil
	default:
		return "", fmt.Errorf("unsupported language %q: must be \"ar\" or \"en\"", s)
	}
}

// Toggle switches between Arabic and English.
func (l Lang) Toggle() Lang {
	if l == Arabic {
		return English
	}
	return Arabic
}

// RTL reports whether the language is written right to left.
func (l Lang) RTL() bool {
	return l == Arabic
}

func (l Lang) String() string {
	return string(l)
}
