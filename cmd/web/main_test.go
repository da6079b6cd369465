package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"songdeming.dev/portfolio-web/internal/config"
)

const testToken = "0123456789abcdef0123456789abcdef"

// newTestRouter builds the app router against the repo templates. env
// overrides configuration keys.
func newTestRouter(t *testing.T, env map[string]string) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	values := map[string]string{
		"PORTFOLIO_WEB_CONTENT_DIR":   "../../content/blog",
		"PORTFOLIO_WEB_CONTACT_DELAY": "0s",
	}
	for k, v := range env {
		values[k] = v
	}
	cfg, err := config.Load(config.WithoutSystemEnv(), config.WithEnvFile(""), config.WithEnvMap(values))
	require.NoError(t, err)
	return newApp(cfg, zap.NewNop()).routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testToken})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestHealthz(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestPagesRender(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, path := range []string{"/", "/cases", "/blog", "/?lang=en", "/cases?lang=en", "/blog?lang=en"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, srv, path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			doc := parse(t, rec)
			require.Equal(t, 1, doc.Find("canvas#code-rain").Length())
			require.Equal(t, 1, doc.Find("#site-nav").Length())
			require.Equal(t, 1, doc.Find(`link[rel="canonical"]`).Length())
			require.Equal(t, 3, doc.Find(`link[rel="alternate"][hreflang]`).Length())
		})
	}
}

func TestHomeDefaultsToChinese(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/")
	doc := parse(t, rec)
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "zh-CN", lang)
	require.Equal(t, "宋德明", strings.TrimSpace(doc.Find(".hero-name .glitch").Text()))
	href, _ := doc.Find(".nav-locale").Attr("href")
	require.Equal(t, "/?lang=en", href)
	require.Equal(t, "EN", doc.Find(".nav-locale").Text())

	for _, id := range []string{"hero", "credibility", "cases", "how-i-work", "timeline", "contact"} {
		require.Equal(t, 1, doc.Find("section#"+id).Length(), id)
	}
	require.Equal(t, 1, doc.Find(`.nav-link.is-active[data-nav-section="hero"]`).Length())
}

func TestEnglishKeepsLangOnInternalLinks(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parse(t, get(t, srv, "/cases?lang=en"))
	require.Contains(t, doc.Find(".nav-brand").Text(), "Deming Song")
	href, _ := doc.Find(`[data-key="back-home"]`).Attr("href")
	require.Equal(t, "/?lang=en", href)
	href, _ = doc.Find(`[data-key="nav-cases"] a`).Attr("href")
	require.Equal(t, "/?lang=en#cases", href)
	require.Equal(t, "6 projects", doc.Find(`[data-key="case-count"]`).Text())
}

// structure lists every element as tag#id[data-key] in document order.
func structure(t *testing.T, body string) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			sig := n.Data
			for _, a := range n.Attr {
				if a.Key == "id" || a.Key == "data-key" {
					sig += "|" + a.Key + "=" + a.Val
				}
			}
			out = append(out, sig)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestLocaleSwitchKeepsStructure(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, path := range []string{"/", "/cases", "/blog", "/blog?post=iot-message-ordering"} {
		t.Run(path, func(t *testing.T) {
			sep := "?"
			if strings.Contains(path, "?") {
				sep = "&"
			}
			en := get(t, srv, path+sep+"lang=en")
			zh := get(t, srv, path+sep+"lang=zh")
			require.Equal(t, http.StatusOK, en.Code)
			require.Equal(t, http.StatusOK, zh.Code)
			require.NotEqual(t, en.Body.String(), zh.Body.String())
			if diff := cmp.Diff(structure(t, zh.Body.String()), structure(t, en.Body.String())); diff != "" {
				t.Fatalf("structure differs between locales (-zh +en):\n%s", diff)
			}
		})
	}
}

func TestBlogUnknownPostRendersNewest(t *testing.T) {
	srv := newTestRouter(t, nil)
	def := get(t, srv, "/blog")
	unknown := get(t, srv, "/blog?post=unknown-id")
	require.Equal(t, http.StatusOK, unknown.Code)
	require.Equal(t, def.Body.String(), unknown.Body.String())

	doc := parse(t, def)
	require.Equal(t, 1, doc.Find(`article[data-key="article-cloud-native-migration-2024"]`).Length())
	active := doc.Find(".blog-post-link.is-active")
	require.Equal(t, 1, active.Length())
	href, _ := active.Attr("href")
	require.Equal(t, "/blog?post=cloud-native-migration-2024", href)
}

func TestBlogSelectsPostFromFile(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parse(t, get(t, srv, "/blog?post=iot-message-ordering&lang=en"))
	require.Equal(t, 1, doc.Find(`article[data-key="article-iot-message-ordering"]`).Length())
	require.Equal(t, 0, doc.Find(".article-error").Length())
	require.NotEmpty(t, strings.TrimSpace(doc.Find(".prose").Text()))
	threshold, _ := doc.Find(`article[data-key="article-iot-message-ordering"]`).Attr("data-reveal-threshold")
	require.Equal(t, "0.02", threshold)
	href, _ := doc.Find(`[data-key="post-high-concurrency-patterns"] a`).Attr("href")
	require.Equal(t, "/blog?lang=en&post=high-concurrency-patterns", href)
}

func TestBlogFallbackWhenBodyMissing(t *testing.T) {
	srv := newTestRouter(t, map[string]string{"PORTFOLIO_WEB_CONTENT_DIR": t.TempDir()})
	doc := parse(t, get(t, srv, "/blog?post=iot-message-ordering&lang=en"))
	require.Equal(t, "Unable to load this article.", strings.TrimSpace(doc.Find(".article-error").Text()))
	require.Equal(t, 1, doc.Find(".blog-post-link.is-active").Length())
}

func postContact(t *testing.T, h http.Handler, form url.Values, htmx bool, cookie bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact?lang=en", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie {
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testToken})
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
		req.Header.Set("X-CSRF-Token", testToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactSubmitShowsOneNotificationAndResets(t *testing.T) {
	srv := newTestRouter(t, nil)
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}
	rec := postContact(t, srv, form, true, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := parse(t, rec)
	require.Equal(t, 0, doc.Find("#hero").Length(), "htmx response is the section only")
	require.Equal(t, 1, doc.Find("section#contact").Length())
	toast := doc.Find(`.toast[role="status"]`)
	require.Equal(t, 1, toast.Length())
	require.Equal(t, "Message sent!", toast.Find(".toast-title").Text())
	require.Equal(t, "Thank you for reaching out. I'll get back to you soon.", toast.Find(".toast-desc").Text())

	val, _ := doc.Find("#contact-name").Attr("value")
	require.Empty(t, val)
	val, _ = doc.Find("#contact-email").Attr("value")
	require.Empty(t, val)
	require.Empty(t, doc.Find("#contact-message").Text())
	token, _ := doc.Find(`input[name="csrf_token"]`).Attr("value")
	require.Equal(t, testToken, token)
}

func TestContactPlainPostRendersHomePage(t *testing.T) {
	srv := newTestRouter(t, nil)
	form := url.Values{"csrf_token": {testToken}, "name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}
	rec := postContact(t, srv, form, false, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	require.Equal(t, 1, doc.Find("#hero").Length())
	require.Equal(t, 1, doc.Find(".toast").Length())
}

func TestContactInvalidKeepsValues(t *testing.T) {
	srv := newTestRouter(t, nil)
	form := url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "message": {"Hello"}}
	rec := postContact(t, srv, form, true, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := parse(t, rec)
	require.Equal(t, 0, doc.Find(".toast").Length())
	require.Equal(t, "Please enter a valid email address.", doc.Find("#contact-email-error").Text())
	val, _ := doc.Find("#contact-email").Attr("value")
	require.Equal(t, "not-an-email", val)
	require.Equal(t, 1, doc.Find(`[data-key="field-email"].has-error`).Length())
}

func TestContactRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t, nil)
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}
	rec := postContact(t, srv, form, false, false)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAssetsServed(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/assets/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	// the glow is hidden by the OS preference only; narrow or touch
	// viewports leave it to the client.
	css := rec.Body.String()
	require.NotContains(t, css, "html.reduce-motion .cursor-glow")
	require.Contains(t, css, "@media (prefers-reduced-motion: reduce)")
	media := css[strings.Index(css, "@media (prefers-reduced-motion: reduce)"):]
	require.Contains(t, media, ".cursor-glow { display: none; }")
}
