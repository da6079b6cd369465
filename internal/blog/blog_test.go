package blog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
)

func post(id, date string) content.Post {
	return content.Post{
		ID:      id,
		Date:    date,
		Title:   i18n.P(id, id+"-zh"),
		Summary: i18n.P("s", "摘要"),
		Content: "# " + id,
	}
}

func filePost(id, date, file string) content.Post {
	p := post(id, date)
	p.Content = ""
	p.File = file
	return p
}

func ids(ps []content.Post) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestReaderSortsNewestFirst(t *testing.T) {
	r := NewReader([]content.Post{
		post("b", "2023-05-01"),
		post("a", "2024-12-15"),
		post("c", "2024-07-10"),
		post("d", "2024-07-10"),
	})
	require.Equal(t, []string{"a", "c", "d", "b"}, ids(r.Sorted()))

	years := r.Years()
	require.Len(t, years, 2)
	require.Equal(t, 2024, years[0].Year)
	require.Equal(t, []string{"a", "c", "d"}, ids(years[0].Posts))
	require.Equal(t, 2023, years[1].Year)
}

func TestReaderResolveFallsBackToNewest(t *testing.T) {
	r := NewReader(content.Posts())
	newest, ok := r.Newest()
	require.True(t, ok)
	require.Equal(t, "cloud-native-migration-2024", newest.ID)

	for _, id := range []string{"", "unknown-id", "../etc/passwd"} {
		got, ok := r.Resolve(id)
		require.True(t, ok)
		require.Equal(t, newest.ID, got.ID, "id %q", id)
	}

	got, ok := r.Resolve("iot-message-ordering")
	require.True(t, ok)
	require.Equal(t, "iot-message-ordering", got.ID)
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(nil)
	_, ok := r.Resolve("x")
	require.False(t, ok)
	require.Empty(t, r.Years())
}

func TestSourceInline(t *testing.T) {
	s := NewSource(WithContentDir(t.TempDir()))
	body, err := s.Body(context.Background(), post("a", "2024-01-01"))
	require.NoError(t, err)
	require.Equal(t, "# a", body)
}

func TestSourceLocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("---\ntitle: A\n---\n\n# Local\n"), 0o644))
	s := NewSource(WithContentDir(dir))

	body, err := s.Body(context.Background(), filePost("a", "2024-01-01", "a.md"))
	require.NoError(t, err)
	require.Equal(t, "# Local\n", body)
}

func TestSourceFrontMatterCheckedAgainstIndex(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"same.md":  "---\ndate: 2024-01-01\ntags: [Go]\n---\n# Same\n",
		"drift.md": "---\ntitle: Drift\ndate: 2023-05-05\ntags: [Rust]\n---\n# Drift\n",
		"bad.md":   "---\ntags: [unclosed\n---\n# Bad\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSource(WithContentDir(dir), WithLogger(zap.New(core)))
	ctx := context.Background()

	same := filePost("same", "2024-01-01", "same.md")
	same.Tags = []string{"Go"}
	body, err := s.Body(ctx, same)
	require.NoError(t, err)
	require.Equal(t, "# Same\n", body)
	require.Zero(t, logs.FilterMessage("blog front matter disagrees with index").Len())

	drift := filePost("drift", "2024-02-02", "drift.md")
	drift.Tags = []string{"Go"}
	body, err = s.Body(ctx, drift)
	require.NoError(t, err)
	require.Equal(t, "# Drift\n", body)
	entries := logs.FilterMessage("blog front matter disagrees with index").All()
	require.Len(t, entries, 1)
	require.Equal(t, "drift", entries[0].ContextMap()["post"])
	require.Equal(t, []any{"date", "tags"}, entries[0].ContextMap()["fields"])

	_, err = s.Body(ctx, filePost("bad", "2024-01-01", "bad.md"))
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorContains(t, err, "front matter")
}

func TestSourceRemoteThenLocal(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/posts/remote.md":
			_, _ = w.Write([]byte("# Remote"))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.md"), []byte("# Local"), 0o644))
	s := NewSource(WithBaseURL(srv.URL+"/posts/"), WithContentDir(dir))
	ctx := context.Background()

	body, err := s.Body(ctx, filePost("r", "2024-01-01", "remote.md"))
	require.NoError(t, err)
	require.Equal(t, "# Remote", body)

	body, err = s.Body(ctx, filePost("l", "2024-01-01", "local.md"))
	require.NoError(t, err)
	require.Equal(t, "# Local", body)

	// both are cached now
	before := hits.Load()
	_, err = s.Body(ctx, filePost("r", "2024-01-01", "remote.md"))
	require.NoError(t, err)
	require.Equal(t, before, hits.Load())
}

func TestSourceCacheExpires(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o644))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSource(WithContentDir(dir), WithCacheTTL(time.Minute), WithClock(func() time.Time { return now }))
	p := filePost("a", "2024-01-01", "a.md")

	body, err := s.Body(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, "one", body)

	require.NoError(t, os.WriteFile(file, []byte("two"), 0o644))
	body, _ = s.Body(context.Background(), p)
	require.Equal(t, "one", body)

	now = now.Add(2 * time.Minute)
	body, _ = s.Body(context.Background(), p)
	require.Equal(t, "two", body)

	require.NoError(t, os.WriteFile(file, []byte("three"), 0o644))
	s.Purge("a.md")
	body, _ = s.Body(context.Background(), p)
	require.Equal(t, "three", body)
}

func TestSourceFailures(t *testing.T) {
	s := NewSource(WithContentDir(t.TempDir()))
	tests := map[string]string{
		"missing":   "nope.md",
		"traversal": "../secret.md",
		"empty":     " ",
	}
	for name, file := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Body(context.Background(), filePost("x", "2024-01-01", file))
			require.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestMarkdownRender(t *testing.T) {
	m := NewMarkdown()
	out, err := m.Render("## Hello World\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n\n[x](javascript:alert(1))\n\n```go\nfmt.Println()\n```\n")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Equal(t, "hello-world", doc.Find("h2").AttrOr("id", ""))
	require.Equal(t, 1, doc.Find("table").Length())
	require.Zero(t, doc.Find("script").Length())
	require.Equal(t, "language-go", doc.Find("pre code").AttrOr("class", ""))
	require.NotContains(t, string(out), "javascript:")
}

func TestServiceArticle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.md"), []byte("# From file"), 0o644))
	svc := NewService([]content.Post{
		filePost("broken", "2024-12-01", "missing.md"),
		filePost("ok", "2024-06-01", "ok.md"),
	}, NewSource(WithContentDir(dir)))
	ctx := context.Background()

	a, ok := svc.Article(ctx, "ok", i18n.English)
	require.True(t, ok)
	require.False(t, a.Unavailable)
	require.Contains(t, string(a.HTML), "From file")

	a, ok = svc.Article(ctx, "", i18n.Chinese)
	require.True(t, ok)
	require.Equal(t, "broken", a.Post.ID)
	require.True(t, a.Unavailable)
	require.Contains(t, string(a.HTML), "无法加载此文章。")

	a, _ = svc.Article(ctx, "broken", i18n.English)
	require.Contains(t, string(a.HTML), "Unable to load this article.")
}

func TestShippedPostsLoad(t *testing.T) {
	svc := NewService(content.Posts(), NewSource(WithContentDir("../../content/blog")))
	for _, p := range svc.Reader.Sorted() {
		a, ok := svc.Article(context.Background(), p.ID, i18n.English)
		require.True(t, ok)
		require.False(t, a.Unavailable, p.ID)
		require.NotEmpty(t, a.HTML)
	}
}

func TestWatchPurgesOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o644))
	s := NewSource(WithContentDir(dir), WithCacheTTL(time.Hour))
	p := filePost("a", "2024-01-01", "a.md")
	_, err := s.Body(context.Background(), p)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("two"), 0o644)
		body, _ := s.Body(context.Background(), p)
		return body == "two"
	}, 5*time.Second, 300*time.Millisecond)
}
