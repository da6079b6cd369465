package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"songdeming.dev/portfolio-web/internal/blog"
	"songdeming.dev/portfolio-web/internal/config"
	"songdeming.dev/portfolio-web/internal/contact"
	"songdeming.dev/portfolio-web/internal/content"
	handlersPkg "songdeming.dev/portfolio-web/internal/handlers"
	"songdeming.dev/portfolio-web/internal/i18n"
	mw "songdeming.dev/portfolio-web/internal/middleware"
	"songdeming.dev/portfolio-web/internal/observability"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates per request and serves assets uncached.
	devMode   bool
	tmplCache *template.Template
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.Paths.Templates, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.Paths.Public, "public assets directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = cfg.Dev

	logger, err := observability.NewLogger(cfg.Dev)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}
		tmplCache = tc
	}

	a := newApp(cfg, logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.Bool("dev", devMode),
			zap.String("env", cfg.Environment),
			zap.Bool("persist_locale", cfg.Locale.Persist),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("web shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if devMode {
		g.Go(func() error {
			if err := a.blog.Source.Watch(gctx); err != nil {
				logger.Warn("blog watcher disabled", zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// app holds the services shared by handlers.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	blog    *blog.Service
	contact *contact.Service
}

func newApp(cfg config.Config, logger *zap.Logger) *app {
	src := blog.NewSource(
		blog.WithBaseURL(cfg.Blog.BaseURL),
		blog.WithContentDir(cfg.Blog.ContentDir),
		blog.WithCacheTTL(cfg.Blog.CacheTTL),
		blog.WithLogger(logger.Named("blog")),
	)
	return &app{
		cfg:    cfg,
		logger: logger,
		blog:   blog.NewService(content.Posts(), src),
		contact: contact.NewService(contact.ServiceDeps{
			Delay:  cfg.Contact.Delay,
			Logger: logger.Named("contact"),
		}),
	}
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/, including effects.wasm
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), "/assets", devMode))

	r.Group(func(r chi.Router) {
		r.Use(mw.Locale(a.cfg.Locale.Persist))
		r.Use(mw.CSRF(a.cfg.Environment == "production"))

		r.Get("/", a.HomeHandler)
		r.Get("/cases", a.CasesHandler)
		r.Get("/blog", a.BlogHandler)
		r.Post("/contact", a.ContactHandler)
	})
	return r
}

func parseTemplates() (*template.Template, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap()).ParseFiles(files...)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		// t picks the active side of a text pair.
		"t":        func(l i18n.Locale, p i18n.Pair) string { return p.Pick(l) },
		"link":     handlersPkg.Link,
		"section":  handlersPkg.NewSectionHeader,
		"caseCard": handlersPkg.NewCaseCard,
	}
}

func templates() (*template.Template, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, errors.New("template not initialized")
	}
	return tmplCache, nil
}

// render executes the base layout. In dev mode, templates are reparsed on each request.
func render(w http.ResponseWriter, r *http.Request, status int, data any) {
	renderTemplate(w, r, status, "base", data)
}

// renderTemplate executes one named template, buffering so a failure still
// yields a clean 500.
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, err := templates()
	if err != nil {
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	var buf strings.Builder
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("template exec failed", zap.String("template", name), zap.Error(err))
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
