package handlers

import (
	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
)

// HomeView is the single-page home: hero through contact.
type HomeView struct {
	Hero                HeroView
	Credibility         content.Section
	Metrics             []content.Metric
	Domains             []content.Domain
	Cases               CaseList
	MoreCases           i18n.Pair
	HowIWork            content.Section
	Principles          []content.Principle
	PrinciplesStaggerMS int
	Timeline            content.Section
	Experiences         []content.Experience
	TimelineStaggerMS   int
	Education           EducationView
	Contact             ContactView
}

// HeroView is the landing block.
type HeroView struct {
	Name      i18n.Pair
	Title     i18n.Pair
	Email     string
	Loading   i18n.Pair
	Loaded    i18n.Pair
	Statement i18n.Pair
	Talk      i18n.Pair
	Portfolio i18n.Pair
	ScrollCue i18n.Pair
}

// EducationView is the degree card below the timeline.
type EducationView struct {
	Degree i18n.Pair
	School i18n.Pair
}

// CaseList is a revealed list of case cards.
type CaseList struct {
	Lang      i18n.Locale
	Section   content.Section
	Items     []content.CaseStudy
	StaggerMS int
	// Count is the localized "N projects" caption; empty on the home page.
	Count string
}

// BuildHomeData constructs the view model for the landing page. contact
// carries the form state, so a failed non-htmx submit can re-render it.
func BuildHomeData(req Request, contact ContactView) PageData {
	vm := NewPageData(PageHome, req)
	vm.Title = SiteName(req.Lang)
	vm.Home = &HomeView{
		Hero: HeroView{
			Name:      content.Owner.Name,
			Title:     content.Owner.Title,
			Email:     content.Owner.HeroEmail,
			Loading:   content.Hero.Loading,
			Loaded:    content.Hero.Loaded,
			Statement: content.Hero.Statement,
			Talk:      content.Hero.Talk,
			Portfolio: content.Hero.Portfolio,
			ScrollCue: content.Hero.ScrollCue,
		},
		Credibility: content.Credibility,
		Metrics:     content.Metrics,
		Domains:     content.Domains,
		Cases: CaseList{
			Lang:      req.Lang,
			Section:   content.CaseStudies,
			Items:     content.FeaturedCases(),
			StaggerMS: content.CasesStaggerMS,
		},
		MoreCases:           content.Common.MoreCases,
		HowIWork:            content.HowIWork,
		Principles:          content.Principles,
		PrinciplesStaggerMS: content.PrinciplesStaggerMS,
		Timeline:            content.Timeline,
		Experiences:         content.Experiences,
		TimelineStaggerMS:   content.TimelineStaggerMS,
		Education:           EducationView{Degree: content.Education.Degree, School: content.Education.School},
		Contact:             contact,
	}
	vm.SEO = BuildSEO(req, vm.Title, content.Hero.Statement.Pick(req.Lang), "website")
	vm.SEO.addPerson(req)
	return vm
}
