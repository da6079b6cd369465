package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"songdeming.dev/portfolio-web/internal/contact"
	handlersPkg "songdeming.dev/portfolio-web/internal/handlers"
	mw "songdeming.dev/portfolio-web/internal/middleware"
	"songdeming.dev/portfolio-web/internal/observability"
)

// pageRequest collects the per-request inputs shared by every page.
func pageRequest(r *http.Request) handlersPkg.Request {
	return handlersPkg.Request{
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Lang:      mw.LocaleFrom(r.Context()),
		CSRFToken: mw.CSRFToken(r.Context()),
		Year:      time.Now().Year(),
		BaseURL:   baseURL(r),
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

// HomeHandler renders the landing page.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	req := pageRequest(r)
	vm := handlersPkg.BuildHomeData(req, handlersPkg.NewContactView(req.Lang, req.CSRFToken))
	render(w, r, http.StatusOK, vm)
}

// CasesHandler renders every case study.
func (a *app) CasesHandler(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, handlersPkg.BuildCasesData(pageRequest(r)))
}

// BlogHandler renders the reader for ?post=<id>, falling back to the newest post.
func (a *app) BlogHandler(w http.ResponseWriter, r *http.Request) {
	req := pageRequest(r)
	vm := handlersPkg.BuildBlogData(r.Context(), req, a.blog, r.URL.Query().Get("post"))
	render(w, r, http.StatusOK, vm)
}

// ContactHandler runs a simulated submission. htmx requests get the contact
// section alone; plain form posts get the whole home page back.
func (a *app) ContactHandler(w http.ResponseWriter, r *http.Request) {
	req := pageRequest(r)
	req.Path = "/"
	view := handlersPkg.NewContactView(req.Lang, req.CSRFToken)

	status := http.StatusOK
	form := contact.Form{}
	if err := r.ParseForm(); err != nil {
		status = http.StatusBadRequest
		view = view.Failed(form, err)
	} else {
		form = contact.Form{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Message: r.PostFormValue("message"),
		}
		receipt, err := a.contact.Submit(r.Context(), form)
		switch {
		case err == nil:
			view = view.Succeeded(receipt)
		case errors.Is(err, contact.ErrInvalid):
			status = http.StatusUnprocessableEntity
			view = view.Failed(form, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			observability.FromContext(r.Context()).Warn("contact submit interrupted", zap.Error(err))
			status = http.StatusServiceUnavailable
			view = view.Failed(form, err)
		default:
			observability.FromContext(r.Context()).Error("contact submit failed", zap.Error(err))
			status = http.StatusInternalServerError
			view = view.Failed(form, err)
		}
	}

	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, status, "contact_section", view)
		return
	}
	render(w, r, status, handlersPkg.BuildHomeData(req, view))
}
