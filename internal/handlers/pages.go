// Package handlers builds the view models the page templates render.
package handlers

import (
	"net/url"
	"strings"

	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
	"songdeming.dev/portfolio-web/internal/nav"
)

// Page names select the body template inside the shared layout.
const (
	PageHome  = "home"
	PageCases = "cases"
	PageBlog  = "blog"
)

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Page  string
	Title string
	Lang  i18n.Locale
	SEO   SEOData

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Toggle      LocaleToggle
	// LangQuery is "lang=xx" when the request chose a locale explicitly,
	// so internal links keep it.
	LangQuery string
	CSRFToken string
	Year      int
	BackToTop string
	Footer    string

	// Exactly one of these is set, matching Page.
	Home  *HomeView
	Cases *CasesView
	Blog  *BlogView
}

// LocaleToggle is the language switch link. It keeps the current path and
// query and flips only the lang parameter.
type LocaleToggle struct {
	Href   string
	Label  string
	Target i18n.Locale
}

// Request carries the per-request inputs every page needs.
type Request struct {
	Path      string
	Query     url.Values
	Lang      i18n.Locale
	CSRFToken string
	Year      int
	// BaseURL is the absolute scheme://host prefix for canonical links.
	BaseURL string
}

// NewPageData fills the layout fields shared by every page.
func NewPageData(page string, req Request) PageData {
	if req.Path == "" {
		req.Path = "/"
	}
	return PageData{
		Page:        page,
		Lang:        req.Lang,
		Path:        req.Path,
		Nav:         nav.Build(req.Path, "", req.Lang),
		Breadcrumbs: nav.Breadcrumbs(req.Path, req.Lang),
		Toggle:      NewLocaleToggle(req.Path, req.Query, req.Lang),
		LangQuery:   langQuery(req.Query, req.Lang),
		CSRFToken:   req.CSRFToken,
		Year:        req.Year,
		BackToTop:   content.Common.BackToTop.Pick(req.Lang),
		Footer:      content.ContactCopy.Footer.Pick(req.Lang),
	}
}

// NewLocaleToggle builds the language switch for path and query.
func NewLocaleToggle(path string, query url.Values, current i18n.Locale) LocaleToggle {
	target := current.Other()
	q := url.Values{}
	for k, v := range query {
		if k == "hl" {
			continue
		}
		q[k] = append([]string(nil), v...)
	}
	q.Set("lang", target.String())
	return LocaleToggle{
		Href:   path + "?" + q.Encode(),
		Label:  nav.ToggleLabel(current),
		Target: target,
	}
}

func langQuery(query url.Values, l i18n.Locale) string {
	if query.Get("lang") == "" && query.Get("hl") == "" {
		return ""
	}
	return "lang=" + l.String()
}

// Link appends langQuery to an internal href, ahead of any fragment.
func Link(href, langQuery string) string {
	if langQuery == "" || strings.HasPrefix(href, "#") {
		return href
	}
	path, frag, hasFrag := strings.Cut(href, "#")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	out := path + sep + langQuery
	if hasFrag {
		out += "#" + frag
	}
	return out
}

// SiteName is the owner's name in the given locale.
func SiteName(l i18n.Locale) string { return content.Owner.Name.Pick(l) }
