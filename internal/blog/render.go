package blog

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
)

// Markdown converts post bodies to sanitized HTML.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown returns a GFM renderer with heading anchors.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
		policy: newArticlePolicy(),
	}
}

var codeLanguage = regexp.MustCompile(`^language-[\w+#-]+$`)

func newArticlePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").Matching(codeLanguage).OnElements("code")
	policy.AllowAttrs("align").Matching(bluemonday.CellAlign).OnElements("th", "td")
	policy.AllowAttrs("checked", "disabled", "type").OnElements("input")
	return policy
}

// Render converts markdown to safe HTML.
func (m *Markdown) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes())), nil
}

// Article is a post ready for the reader pane.
type Article struct {
	Post content.Post
	HTML template.HTML
	// Unavailable is set when HTML holds the fallback message.
	Unavailable bool
}

// Service ties the reader, body source and renderer together.
type Service struct {
	Reader   *Reader
	Source   *Source
	Markdown *Markdown
}

// NewService builds a Service over posts.
func NewService(posts []content.Post, src *Source) *Service {
	if src == nil {
		src = NewSource()
	}
	return &Service{Reader: NewReader(posts), Source: src, Markdown: NewMarkdown()}
}

// Article resolves id (falling back to the newest post) and renders it. A
// body that cannot be loaded or rendered is replaced by FallbackMessage; ok
// is false only when there are no posts.
func (s *Service) Article(ctx context.Context, id string, l i18n.Locale) (Article, bool) {
	p, ok := s.Reader.Resolve(id)
	if !ok {
		return Article{}, false
	}
	a := Article{Post: p}
	body, err := s.Source.Body(ctx, p)
	if err == nil {
		a.HTML, err = s.Markdown.Render(body)
	}
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			s.Source.logger.Warn("blog render failed", zap.String("post", p.ID), zap.Error(err))
		}
		a.HTML = fallbackHTML(l)
		a.Unavailable = true
	}
	return a, true
}

func fallbackHTML(l i18n.Locale) template.HTML {
	return template.HTML(`<p class="article-error" role="alert">` + template.HTMLEscapeString(FallbackMessage.Pick(l)) + `</p>`)
}
