// Package blog serves the blog reader: post ordering and selection, body
// loading with remote and local sources, and markdown rendering.
package blog

import (
	"sort"

	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
)

// FallbackMessage replaces an article body that could not be loaded.
var FallbackMessage = i18n.P("Unable to load this article.", "无法加载此文章。")

// YearGroup is one sidebar block.
type YearGroup struct {
	Year  int
	Posts []content.Post
}

// Reader orders a fixed post index.
type Reader struct {
	sorted []content.Post
}

// NewReader sorts posts newest first. Posts sharing a date keep their
// authored order.
func NewReader(posts []content.Post) *Reader {
	sorted := make([]content.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published().After(sorted[j].Published())
	})
	return &Reader{sorted: sorted}
}

// Sorted returns the posts newest first.
func (r *Reader) Sorted() []content.Post { return r.sorted }

// Newest returns the most recent post.
func (r *Reader) Newest() (content.Post, bool) {
	if len(r.sorted) == 0 {
		return content.Post{}, false
	}
	return r.sorted[0], true
}

// Lookup finds a post by id.
func (r *Reader) Lookup(id string) (content.Post, bool) {
	for _, p := range r.sorted {
		if p.ID == id {
			return p, true
		}
	}
	return content.Post{}, false
}

// Resolve picks the post to show for a requested id. Empty and unknown ids
// resolve to the newest post; ok is false only for an empty index.
func (r *Reader) Resolve(id string) (content.Post, bool) {
	if id != "" {
		if p, ok := r.Lookup(id); ok {
			return p, true
		}
	}
	return r.Newest()
}

// Years groups the sorted posts by publication year, newest year first.
func (r *Reader) Years() []YearGroup {
	var groups []YearGroup
	for _, p := range r.sorted {
		y := p.Published().Year()
		if n := len(groups); n > 0 && groups[n-1].Year == y {
			groups[n-1].Posts = append(groups[n-1].Posts, p)
			continue
		}
		groups = append(groups, YearGroup{Year: y, Posts: []content.Post{p}})
	}
	return groups
}
