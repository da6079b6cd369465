package content

import (
	"fmt"

	"songdeming.dev/portfolio-web/internal/i18n"
)

// CaseStudy is one project write-up.
type CaseStudy struct {
	ID       string      `yaml:"id"`
	Icon     string      `yaml:"icon"`
	Title    i18n.Pair   `yaml:"title"`
	Role     i18n.Pair   `yaml:"role"`
	Context  i18n.Pair   `yaml:"context"`
	Actions  []i18n.Pair `yaml:"actions"`
	Outcome  i18n.Pair   `yaml:"outcome"`
	Tags     []string    `yaml:"tags"`
	Featured bool        `yaml:"featured"`
}

var allCases, featuredCases = mustLoadCases()

// AllCases returns every case study in authored order.
func AllCases() []CaseStudy { return allCases }

// FeaturedCases returns the subset shown on the home page.
func FeaturedCases() []CaseStudy { return featuredCases }

func mustLoadCases() ([]CaseStudy, []CaseStudy) {
	var doc struct {
		Cases []CaseStudy `yaml:"cases"`
	}
	if err := decode("cases.yaml", &doc); err != nil {
		panic(err)
	}
	if err := validateCases(doc.Cases); err != nil {
		panic(err)
	}
	var featured []CaseStudy
	for _, c := range doc.Cases {
		if c.Featured {
			featured = append(featured, c)
		}
	}
	return doc.Cases, featured
}

func validateCases(cases []CaseStudy) error {
	for i, c := range cases {
		if c.ID == "" {
			return fmt.Errorf("content: case %d has no id", i)
		}
		pairs := []i18n.Pair{c.Title, c.Role, c.Context, c.Outcome}
		pairs = append(pairs, c.Actions...)
		for _, p := range pairs {
			if !p.Complete() {
				return fmt.Errorf("content: case %q has an untranslated string %q", c.ID, p.En+p.Zh)
			}
		}
		if len(c.Actions) == 0 {
			return fmt.Errorf("content: case %q has no actions", c.ID)
		}
	}
	return nil
}
