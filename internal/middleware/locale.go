package middleware

import (
	"net/http"
	"time"

	"songdeming.dev/portfolio-web/internal/i18n"
)

// LocaleCookie remembers the language choice when persistence is enabled.
const LocaleCookie = "hl"

// LocaleParams are the query parameters that select a language, in order.
var LocaleParams = []string{"lang", "hl"}

// Locale resolves the display language for the request. An explicit
// ?lang= (or ?hl=) always wins. Without persistence every other request
// starts in i18n.Default; with persistence the choice is kept in the hl
// cookie and Accept-Language seeds first visits.
func Locale(persist bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l, explicit := queryLocale(r)
			switch {
			case explicit:
				if persist {
					http.SetCookie(w, &http.Cookie{
						Name:     LocaleCookie,
						Value:    l.String(),
						Path:     "/",
						MaxAge:   int((365 * 24 * time.Hour).Seconds()),
						SameSite: http.SameSiteLaxMode,
					})
				}
			case persist:
				l = persistedLocale(r)
			default:
				l = i18n.Default
			}
			if persist {
				w.Header().Add("Vary", "Accept-Language")
				w.Header().Add("Vary", "Cookie")
			}
			w.Header().Set("Content-Language", l.String())
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), l)))
		})
	}
}

func queryLocale(r *http.Request) (i18n.Locale, bool) {
	q := r.URL.Query()
	for _, key := range LocaleParams {
		if l, ok := i18n.Parse(q.Get(key)); ok {
			return l, true
		}
	}
	return "", false
}

func persistedLocale(r *http.Request) i18n.Locale {
	if c, err := r.Cookie(LocaleCookie); err == nil {
		if l, ok := i18n.Parse(c.Value); ok {
			return l
		}
	}
	return i18n.Resolve(r.Header.Get("Accept-Language"))
}
