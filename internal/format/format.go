// Package format renders values for display in the active locale.
package format

import (
	"fmt"
	"time"

	"songdeming.dev/portfolio-web/internal/i18n"
)

// FmtDate formats t in a locale-friendly short form.
// Example: FmtDate(t, i18n.English) => "Dec 15, 2024"; Chinese => "2024年12月15日"
func FmtDate(t time.Time, lang i18n.Locale) string {
	if t.IsZero() {
		return ""
	}
	switch lang {
	case i18n.Chinese:
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ISODate formats t for machine-readable attributes such as datetime.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Count substitutes n into a localized "%d ..." pattern.
func Count(pattern i18n.Pair, n int, lang i18n.Locale) string {
	return fmt.Sprintf(pattern.Pick(lang), n)
}
