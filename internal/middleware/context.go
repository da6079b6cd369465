package middleware

import (
	"context"

	"songdeming.dev/portfolio-web/internal/i18n"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX ctxKey = "is_htmx"
	ctxKeyLocale ctxKey = "locale"
	ctxKeyCSRF   ctxKey = "csrf_token"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithLocale stores the resolved display locale.
func WithLocale(ctx context.Context, l i18n.Locale) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, l)
}

// LocaleFrom returns the request locale, defaulting to i18n.Default.
func LocaleFrom(ctx context.Context) i18n.Locale {
	if l, ok := ctx.Value(ctxKeyLocale).(i18n.Locale); ok && l != "" {
		return l
	}
	return i18n.Default
}

// WithCSRFToken stores the token templates embed in forms.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF, token)
}

// CSRFToken returns the request's CSRF token, if any.
func CSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyCSRF).(string)
	return v
}
