package handlers

import (
	"context"
	"html/template"
	"net/url"

	"songdeming.dev/portfolio-web/internal/blog"
	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/format"
	"songdeming.dev/portfolio-web/internal/i18n"
)

// BlogView is the reader: year-grouped sidebar plus the selected article.
type BlogView struct {
	Years   []YearView
	Article *ArticleView
	// Empty is shown instead of an article when there are no posts.
	Empty string
	// Thanks closes every article.
	Thanks string
}

// YearView is one sidebar group.
type YearView struct {
	Year  int
	Posts []PostLink
}

// PostLink is one sidebar entry. Selecting it updates the post query.
type PostLink struct {
	ID     string
	Title  string
	Date   string
	Href   string
	Active bool
}

// ArticleView is the rendered article pane.
type ArticleView struct {
	ID          string
	Title       string
	Summary     string
	Date        string
	DateISO     string
	Tags        []string
	HTML        template.HTML
	Unavailable bool
}

// BuildBlogData constructs the /blog view model. An empty or unknown id
// selects the newest post, so /blog?post=unknown renders exactly like /blog.
func BuildBlogData(ctx context.Context, req Request, svc *blog.Service, id string) PageData {
	l := req.Lang
	article, ok := svc.Article(ctx, id, l)
	if ok {
		req.Query = withPost(req.Query, article.Post.ID)
	} else {
		req.Query = withPost(req.Query, "")
	}

	vm := NewPageData(PageBlog, req)
	view := &BlogView{}
	vm.Blog = view
	if !ok {
		view.Empty = content.Common.SelectPost.Pick(l)
		vm.Title = content.Common.BlogPosts.Pick(l)
		vm.SEO = BuildSEO(req, vm.Title, "", "website")
		return vm
	}
	p := article.Post
	view.Thanks = content.Common.Thanks.Pick(l)
	view.Article = &ArticleView{
		ID:          p.ID,
		Title:       p.Title.Pick(l),
		Summary:     p.Summary.Pick(l),
		Date:        format.FmtDate(p.Published(), l),
		DateISO:     format.ISODate(p.Published()),
		Tags:        p.Tags,
		HTML:        article.HTML,
		Unavailable: article.Unavailable,
	}
	for _, g := range svc.Reader.Years() {
		yv := YearView{Year: g.Year}
		for _, gp := range g.Posts {
			yv.Posts = append(yv.Posts, PostLink{
				ID:     gp.ID,
				Title:  gp.Title.Pick(l),
				Date:   format.FmtDate(gp.Published(), l),
				Href:   postHref(gp.ID, l, req.Query),
				Active: gp.ID == p.ID,
			})
		}
		view.Years = append(view.Years, yv)
	}

	vm.Title = view.Article.Title
	vm.SEO = BuildSEO(req, vm.Title, view.Article.Summary, "article")
	vm.SEO.addBlogPosting(req, p, l)
	return vm
}

// withPost returns a copy of query whose post parameter names the article
// actually shown.
func withPost(query url.Values, id string) url.Values {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if id == "" {
		q.Del("post")
	} else {
		q.Set("post", id)
	}
	return q
}

// postHref keeps an explicit lang so the selection survives the request.
func postHref(id string, l i18n.Locale, query url.Values) string {
	q := url.Values{"post": {id}}
	if query.Get("lang") != "" || query.Get("hl") != "" {
		q.Set("lang", l.String())
	}
	return "/blog?" + q.Encode()
}
