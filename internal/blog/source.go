package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"songdeming.dev/portfolio-web/internal/content"
)

var (
	// ErrNotFound is returned when a post body does not exist at any source.
	ErrNotFound = errors.New("blog: not found")
	// ErrUnavailable wraps every failure to produce a post body.
	ErrUnavailable = errors.New("blog: body unavailable")
)

const (
	defaultContentDir = "content/blog"
	defaultCacheTTL   = 5 * time.Minute
	maxBodyBytes      = 1 << 20
)

// Source loads post bodies. Remote fetches go to baseURL when set, with the
// local content directory as fallback. Loaded bodies are cached for ttl.
type Source struct {
	baseURL string
	dir     string
	http    *http.Client
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// frontMatter is the optional yaml header of a post file. The post index is
// authoritative; a header that disagrees with it is only logged.
type frontMatter struct {
	Title string   `yaml:"title"`
	Date  string   `yaml:"date"`
	Tags  []string `yaml:"tags"`
}

type document struct {
	body string
	meta frontMatter
}

type cacheEntry struct {
	body    string
	expires time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL fetches bodies from base + "/" + file first.
func WithBaseURL(base string) Option {
	return func(s *Source) { s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/") }
}

// WithContentDir sets the local fallback directory.
func WithContentDir(dir string) Option {
	return func(s *Source) {
		if dir = strings.TrimSpace(dir); dir != "" {
			s.dir = dir
		}
	}
}

// WithHTTPClient overrides the remote client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.http = c
		}
	}
}

// WithCacheTTL sets how long a loaded body is served from memory.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithLogger sets the logger used for degraded loads.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now, mostly for cache tests.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSource constructs a Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		dir:    defaultContentDir,
		http:   &http.Client{Timeout: 5 * time.Second},
		ttl:    defaultCacheTTL,
		now:    time.Now,
		logger: zap.NewNop(),
		items:  map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentDir returns the local fallback directory.
func (s *Source) ContentDir() string { return s.dir }

// Body returns the markdown for p. Inline posts never fail. For file posts
// every failure is reported wrapped in ErrUnavailable; callers show
// FallbackMessage in its place.
func (s *Source) Body(ctx context.Context, p content.Post) (string, error) {
	if p.Inline() {
		return p.Content, nil
	}
	file, ok := sanitizeFile(p.File)
	if !ok {
		return "", fmt.Errorf("%w: %q: %w", ErrUnavailable, p.File, ErrNotFound)
	}
	if body, ok := s.cached(file); ok {
		return body, nil
	}
	doc, err := s.fetch(ctx, file)
	if err != nil {
		s.logger.Warn("blog body unavailable",
			zap.String("post", p.ID),
			zap.String("file", file),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s: %w", ErrUnavailable, p.ID, err)
	}
	s.checkFrontMatter(p, file, doc.meta)
	s.store(file, doc.body)
	return doc.body, nil
}

// checkFrontMatter warns when a file header contradicts the post index.
func (s *Source) checkFrontMatter(p content.Post, file string, meta frontMatter) {
	var fields []string
	if meta.Date != "" && meta.Date != p.Date {
		fields = append(fields, "date")
	}
	if meta.Tags != nil && !slices.Equal(meta.Tags, p.Tags) {
		fields = append(fields, "tags")
	}
	if len(fields) == 0 {
		return
	}
	s.logger.Warn("blog front matter disagrees with index",
		zap.String("post", p.ID),
		zap.String("file", file),
		zap.Strings("fields", fields),
	)
}

func (s *Source) fetch(ctx context.Context, file string) (document, error) {
	if s.baseURL != "" {
		doc, err := s.fetchRemote(ctx, file)
		if err == nil {
			return doc, nil
		}
		if ctx.Err() != nil {
			return document{}, ctx.Err()
		}
		s.logger.Debug("blog remote fetch failed, using local copy",
			zap.String("file", file),
			zap.Error(err),
		)
	}
	return s.readLocal(file)
}

func (s *Source) fetchRemote(ctx context.Context, file string) (document, error) {
	endpoint, err := url.JoinPath(s.baseURL, file)
	if err != nil {
		return document{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return document{}, err
	}
	req.Header.Set("Accept", "text/markdown, text/plain")
	resp, err := s.http.Do(req)
	if err != nil {
		return document{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return document{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return document{}, fmt.Errorf("blog: remote status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return document{}, err
	}
	return parseBody(string(raw))
}

func (s *Source) readLocal(file string) (document, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(file)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document{}, ErrNotFound
		}
		return document{}, err
	}
	return parseBody(string(raw))
}

// parseBody splits optional yaml front matter from the markdown and rejects
// empty bodies.
func parseBody(raw string) (document, error) {
	fm, body := splitFrontMatter(raw)
	var doc document
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &doc.meta); err != nil {
			return document{}, fmt.Errorf("blog: parse front matter: %w", err)
		}
	}
	if strings.TrimSpace(body) == "" {
		return document{}, errors.New("blog: empty body")
	}
	doc.body = body
	return doc, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func sanitizeFile(file string) (string, bool) {
	file = strings.TrimSpace(strings.ReplaceAll(file, "\\", "/"))
	file = strings.TrimPrefix(file, "/")
	if file == "" || strings.Contains(file, "..") {
		return "", false
	}
	return path.Clean(file), true
}

func (s *Source) cached(key string) (string, bool) {
	now := s.now()
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return "", false
	}
	return entry.body, true
}

func (s *Source) store(key, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{body: body, expires: s.now().Add(s.ttl)}
}

// Purge drops the cached body for a file, or everything when file is empty.
func (s *Source) Purge(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if file == "" {
		s.items = map[string]cacheEntry{}
		return
	}
	if key, ok := sanitizeFile(file); ok {
		delete(s.items, key)
	}
}
