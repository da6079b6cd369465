package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Locale is one of the two supported display languages.
type Locale string

const (
	English Locale = "en"
	Chinese Locale = "zh"

	// Default is the locale every page starts in.
	Default = Chinese
)

// Supported lists the locales in matcher preference order.
var Supported = []Locale{Chinese, English}

var matcher = language.NewMatcher([]language.Tag{language.Chinese, language.English})

// Parse normalizes s into a supported locale. Region subtags are ignored,
// so "en-US" and "zh-Hans" both resolve.
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if dash := strings.IndexAny(s, "-_"); dash != -1 {
		s = s[:dash]
	}
	switch Locale(s) {
	case English:
		return English, true
	case Chinese:
		return Chinese, true
	}
	return "", false
}

// Other returns the locale a toggle would switch to.
func (l Locale) Other() Locale {
	if l == English {
		return Chinese
	}
	return English
}

func (l Locale) String() string { return string(l) }

// Resolve chooses the best locale from an Accept-Language header,
// falling back to Default.
func Resolve(acceptLang string) Locale {
	if strings.TrimSpace(acceptLang) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// Pair holds the English and Chinese rendering of one piece of text.
type Pair struct {
	En string `yaml:"en"`
	Zh string `yaml:"zh"`
}

// P is shorthand for building a Pair.
func P(en, zh string) Pair { return Pair{En: en, Zh: zh} }

// Pick returns the side matching l.
func (p Pair) Pick(l Locale) string {
	if l == English {
		return p.En
	}
	return p.Zh
}

// Complete reports whether both sides are authored.
func (p Pair) Complete() bool {
	return strings.TrimSpace(p.En) != "" && strings.TrimSpace(p.Zh) != ""
}

// Context is the per-page language state. A new Context starts in Default;
// pages build their own, so leaving a page drops the choice.
type Context struct {
	mu     sync.RWMutex
	locale Locale
	subs   []func(Locale)
}

// NewContext returns a context in the given locale, or Default when l is
// not supported.
func NewContext(l Locale) *Context {
	parsed, ok := Parse(string(l))
	if !ok {
		parsed = Default
	}
	return &Context{locale: parsed}
}

// Locale returns the active locale.
func (c *Context) Locale() Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Set switches to l. Unsupported values are ignored.
func (c *Context) Set(l Locale) {
	parsed, ok := Parse(string(l))
	if !ok {
		return
	}
	c.mu.Lock()
	if c.locale == parsed {
		c.mu.Unlock()
		return
	}
	c.locale = parsed
	subs := append([]func(Locale){}, c.subs...)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(parsed)
	}
}

// Toggle flips between the two locales and returns the new one.
func (c *Context) Toggle() Locale {
	next := c.Locale().Other()
	c.Set(next)
	return next
}

// Pick returns en or zh depending on the active locale.
func (c *Context) Pick(en, zh string) string {
	return Pair{En: en, Zh: zh}.Pick(c.Locale())
}

// T picks one side of p.
func (c *Context) T(p Pair) string { return p.Pick(c.Locale()) }

// OnChange registers fn to run after every locale switch.
func (c *Context) OnChange(fn func(Locale)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}
