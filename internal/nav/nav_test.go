package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"songdeming.dev/portfolio-web/internal/i18n"
)

func TestBuildOnHome(t *testing.T) {
	items := Build("/", "", i18n.English)
	require.Len(t, items, len(Main))
	require.Equal(t, "#hero", items[0].Href)
	require.True(t, items[0].Active)
	require.Equal(t, "Home", items[0].Label)

	blog := items[5]
	require.Equal(t, "blog", blog.ID)
	require.Equal(t, "/blog", blog.Href)
	require.False(t, blog.Section)
	require.False(t, blog.Active)
}

func TestBuildOffHome(t *testing.T) {
	items := Build("/blog", "timeline", i18n.Chinese)
	for _, it := range items {
		if it.ID == "blog" {
			require.True(t, it.Active)
			require.Equal(t, "博客", it.Label)
			continue
		}
		require.False(t, it.Active, it.ID)
		require.Equal(t, "/#"+it.ID, it.Href)
	}
}

func TestActiveSection(t *testing.T) {
	offsets := map[string]float64{
		"hero":        0,
		"credibility": 900,
		"cases":       1800,
		"timeline":    3600,
	}
	lookup := func(id string) (float64, bool) {
		v, ok := offsets[id]
		return v, ok
	}
	require.Equal(t, "hero", ActiveSection(0, lookup))
	require.Equal(t, "credibility", ActiveSection(800, lookup))
	require.Equal(t, "credibility", ActiveSection(1699, lookup))
	require.Equal(t, "cases", ActiveSection(1700, lookup))
	// how-i-work is missing from the page
	require.Equal(t, "cases", ActiveSection(3000, lookup))
	require.Equal(t, "timeline", ActiveSection(9000, lookup))

	none := func(string) (float64, bool) { return 0, false }
	require.Equal(t, DefaultSection, ActiveSection(500, none))
}

func TestScrolledAndToggle(t *testing.T) {
	require.False(t, Scrolled(50))
	require.True(t, Scrolled(51))
	require.Equal(t, "中文", ToggleLabel(i18n.English))
	require.Equal(t, "EN", ToggleLabel(i18n.Chinese))
}

func TestBreadcrumbs(t *testing.T) {
	require.Equal(t, []Crumb{{Href: "/", Label: "Home", Active: true}}, Breadcrumbs("/", i18n.English))

	got := Breadcrumbs("/blog", i18n.Chinese)
	require.Equal(t, []Crumb{
		{Href: "/", Label: "首页"},
		{Href: "/blog", Label: "博客", Active: true},
	}, got)

	got = Breadcrumbs("/cases/smart-city", i18n.English)
	require.Equal(t, []Crumb{
		{Href: "/", Label: "Home"},
		{Href: "/cases", Label: "Cases"},
		{Href: "/cases/smart-city", Label: "Smart city", Active: true},
	}, got)
}
