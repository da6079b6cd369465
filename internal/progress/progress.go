// Package progress computes the reading progress bar and back-to-top state.
package progress

import "strconv"

// backToTopFactor is the share of one viewport that must be scrolled before
// the back-to-top button appears.
const backToTopFactor = 0.8

// Percent returns how far the document has been scrolled, from 0 to 100. A
// document that fits in the viewport is always at 0.
func Percent(scrollTop, scrollHeight, viewportHeight float64) float64 {
	scrollable := scrollHeight - viewportHeight
	if scrollable <= 0 {
		return 0
	}
	p := scrollTop / scrollable * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// BackToTopVisible reports whether the back-to-top button should show.
func BackToTopVisible(scrollY, viewportHeight float64) bool {
	return scrollY > backToTopFactor*viewportHeight
}

// Width renders p as a CSS width.
func Width(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + "%"
}
