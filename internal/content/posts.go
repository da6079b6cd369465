package content

import (
	"fmt"
	"strings"
	"time"

	"songdeming.dev/portfolio-web/internal/i18n"
)

// DateLayout is the authored format of Post.Date.
const DateLayout = "2006-01-02"

// Post is one blog article. Exactly one of Content and File is set: Content
// holds inline markdown, File names a markdown file under the blog content
// root.
type Post struct {
	ID      string    `yaml:"id"`
	Title   i18n.Pair `yaml:"title"`
	Summary i18n.Pair `yaml:"summary"`
	Date    string    `yaml:"date"`
	Tags    []string  `yaml:"tags"`
	Content string    `yaml:"content"`
	File    string    `yaml:"file"`
}

// Published parses Date. Authored dates are validated at load, so the zero
// time only shows up for hand-built posts.
func (p Post) Published() time.Time {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Inline reports whether the body ships with the index.
func (p Post) Inline() bool { return p.File == "" }

var posts = mustLoadPosts()

// Posts returns the blog index in authored order.
func Posts() []Post { return posts }

func mustLoadPosts() []Post {
	var doc struct {
		Posts []Post `yaml:"posts"`
	}
	if err := decode("posts.yaml", &doc); err != nil {
		panic(err)
	}
	if err := ValidatePosts(doc.Posts); err != nil {
		panic(err)
	}
	return doc.Posts
}

// ValidatePosts checks the authoring rules of a blog index. Duplicate ids are
// not rejected; the first one wins on lookup.
func ValidatePosts(ps []Post) error {
	for i, p := range ps {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("content: post %d has no id", i)
		}
		if _, err := time.Parse(DateLayout, p.Date); err != nil {
			return fmt.Errorf("content: post %q: bad date %q: %w", p.ID, p.Date, err)
		}
		if !p.Title.Complete() || !p.Summary.Complete() {
			return fmt.Errorf("content: post %q is missing a translation", p.ID)
		}
		hasBody := strings.TrimSpace(p.Content) != ""
		if hasBody == (p.File != "") {
			return fmt.Errorf("content: post %q needs exactly one of content or file", p.ID)
		}
	}
	return nil
}
