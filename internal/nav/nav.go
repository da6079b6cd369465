package nav

import (
	"path"
	"strings"

	"songdeming.dev/portfolio-web/internal/i18n"
)

const (
	// DefaultSection is active before the first scroll event.
	DefaultSection = "hero"
	// sectionOffset is how far below the top edge a section counts as current.
	sectionOffset = 100
	// scrolledAfter is the scroll offset that turns on the solid nav bar.
	scrolledAfter = 50
)

// Item represents a top-level navigation item. An item with an empty Path is
// an in-page anchor to the home section with the same ID.
type Item struct {
	ID    string
	Label i18n.Pair
	Path  string
}

// IsSection reports whether the item scrolls to a home page section.
func (it Item) IsSection() bool { return it.Path == "" }

// RenderedItem is a view model for templates.
type RenderedItem struct {
	ID      string
	Href    string
	Label   string
	Section bool
	Active  bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{ID: "hero", Label: i18n.P("Home", "首页")},
	{ID: "credibility", Label: i18n.P("About", "关于")},
	{ID: "cases", Label: i18n.P("Projects", "项目")},
	{ID: "how-i-work", Label: i18n.P("Approach", "方法")},
	{ID: "timeline", Label: i18n.P("Experience", "经历")},
	{ID: "blog", Label: i18n.P("Blog", "博客"), Path: "/blog"},
	{ID: "contact", Label: i18n.P("Contact", "联系")},
}

var home = i18n.P("Home", "首页")

// Build renders navigation items with active state given the current path
// and, on the home page, the section currently in view.
func Build(currentPath, activeSection string, l i18n.Locale) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	if activeSection == "" {
		activeSection = DefaultSection
	}
	onHome := currentPath == "/"
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		r := RenderedItem{ID: it.ID, Label: it.Label.Pick(l), Section: it.IsSection()}
		if it.IsSection() {
			r.Href = "/#" + it.ID
			if onHome {
				r.Href = "#" + it.ID
			}
			r.Active = onHome && activeSection == it.ID
		} else {
			r.Href = it.Path
			r.Active = isActive(it.Path, currentPath)
		}
		items = append(items, r)
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/blog" or "/blog/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// ActiveSection returns the last section whose top edge is within 100px of
// the viewport top. offsetTop reports a section's document offset; sections
// missing from the page report ok=false and are skipped.
func ActiveSection(scrollY float64, offsetTop func(id string) (top float64, ok bool)) string {
	pos := scrollY + sectionOffset
	for i := len(Main) - 1; i >= 0; i-- {
		it := Main[i]
		if !it.IsSection() {
			continue
		}
		if top, ok := offsetTop(it.ID); ok && top <= pos {
			return it.ID
		}
	}
	return DefaultSection
}

// Scrolled reports whether the nav bar should switch to its solid style.
func Scrolled(scrollY float64) bool { return scrollY > scrolledAfter }

// ToggleLabel is the caption of the language switch: the name of the other
// locale.
func ToggleLabel(l i18n.Locale) string {
	if l == i18n.English {
		return "中文"
	}
	return "EN"
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - For known top-level pages, use the nav labels
// - For deeper segments, use a prettified segment label
func Breadcrumbs(currentPath string, l i18n.Locale) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: home.Pick(l), Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		label := titleFromSegment(seg)
		if i == 0 {
			for _, it := range Main {
				if it.Path == href {
					label = it.Label.Pick(l)
					break
				}
			}
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: i == len(parts)-1})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
