package handlers

import (
	"html/template"
	"net/url"

	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/format"
	"songdeming.dev/portfolio-web/internal/i18n"
	"songdeming.dev/portfolio-web/internal/nav"
	"songdeming.dev/portfolio-web/internal/seo"
)

// SEOData is the head metadata of a page.
type SEOData struct {
	seo.Meta
	HTMLLang string
	JSONLD   []template.JS
}

// BuildSEO fills title, description, canonical and alternates for req.
func BuildSEO(req Request, title, description, ogType string) SEOData {
	site := SiteName(req.Lang)
	canonical := absoluteURL(req, true)
	data := SEOData{HTMLLang: seo.HTMLLang(req.Lang)}
	data.Title = seo.Title(title, site)
	data.Description = description
	data.Canonical = canonical
	data.Robots = "index,follow"
	data.OG = seo.OpenGraph{
		Title:       data.Title,
		Description: description,
		Type:        ogType,
		URL:         canonical,
		SiteName:    site,
		Locale:      seo.OGLocale(req.Lang),
	}
	data.Twitter.Card = "summary"
	data.Alternates = seo.Alternates(absoluteURL(req, false))
	data.addJSON(seo.WebSite(site, req.BaseURL+"/", seo.HTMLLang(req.Lang)))
	return data
}

func (d *SEOData) addJSON(v any) {
	if raw := seo.JSON(v); raw != "" {
		d.JSONLD = append(d.JSONLD, template.JS(raw))
	}
}

func (d *SEOData) addPerson(req Request) {
	d.addJSON(seo.Person(
		content.Owner.Name.Pick(req.Lang),
		content.Owner.Title.Pick(req.Lang),
		req.BaseURL+"/",
		[]string{content.Owner.GitHub, content.Owner.LinkedIn},
	))
}

func (d *SEOData) addBreadcrumbs(req Request, crumbs []nav.Crumb) {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: req.BaseURL + c.Href})
	}
	d.addJSON(seo.BreadcrumbList(items))
}

func (d *SEOData) addBlogPosting(req Request, p content.Post, l i18n.Locale) {
	d.addJSON(seo.BlogPosting(
		p.Title.Pick(l),
		p.Summary.Pick(l),
		d.Canonical,
		content.Owner.Name.Pick(l),
		format.ISODate(p.Published()),
		p.Tags,
	))
}

// absoluteURL joins BaseURL, Path and the query. With withLang the current
// explicit locale is kept so each language variant is its own canonical.
func absoluteURL(req Request, withLang bool) string {
	q := url.Values{}
	for k, v := range req.Query {
		if k == "lang" || k == "hl" {
			continue
		}
		q[k] = append([]string(nil), v...)
	}
	if withLang && req.Lang != i18n.Default {
		q.Set("lang", req.Lang.String())
	}
	u := req.BaseURL + req.Path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
