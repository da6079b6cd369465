// Package seo builds page metadata and schema.org payloads.
package seo

import (
	"net/url"
	"strings"

	"songdeming.dev/portfolio-web/internal/i18n"
)

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card string
}

// Alternate is one hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
}

// OGLocale maps a display locale to the og:locale form.
func OGLocale(l i18n.Locale) string {
	if l == i18n.English {
		return "en_US"
	}
	return "zh_CN"
}

// HTMLLang maps a display locale to the html lang attribute.
func HTMLLang(l i18n.Locale) string {
	if l == i18n.English {
		return "en"
	}
	return "zh-CN"
}

// Alternates lists the page once per locale plus x-default. base is the
// absolute page URL; its lang parameter is replaced.
func Alternates(base string) []Alternate {
	out := make([]Alternate, 0, len(i18n.Supported)+1)
	for _, l := range i18n.Supported {
		out = append(out, Alternate{Href: withLang(base, l.String()), Hreflang: HTMLLang(l)})
	}
	out = append(out, Alternate{Href: withLang(base, ""), Hreflang: "x-default"})
	return out
}

func withLang(raw, lang string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Del("hl")
	if lang == "" {
		q.Del("lang")
	} else {
		q.Set("lang", lang)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Title joins a page title and the site name.
func Title(page, site string) string {
	page = strings.TrimSpace(page)
	if page == "" || page == site {
		return site
	}
	return page + " | " + site
}
