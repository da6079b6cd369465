package handlers

import (
	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/format"
)

// CasesView is the all-cases page.
type CasesView struct {
	List     CaseList
	BackHome string
	CTA      string
	Talk     string
}

// BuildCasesData constructs the /cases view model.
func BuildCasesData(req Request) PageData {
	vm := NewPageData(PageCases, req)
	cases := content.AllCases()
	vm.Title = content.AllCasesPage.Heading.Pick(req.Lang)
	vm.Cases = &CasesView{
		List: CaseList{
			Lang:      req.Lang,
			Section:   content.AllCasesPage,
			Items:     cases,
			StaggerMS: content.AllCasesStaggerMS,
			Count:     format.Count(content.Common.CaseCount, len(cases), req.Lang),
		},
		BackHome: content.Common.BackHome.Pick(req.Lang),
		CTA:      content.Common.CTA.Pick(req.Lang),
		Talk:     content.Common.Talk.Pick(req.Lang),
	}
	vm.SEO = BuildSEO(req, vm.Title, content.AllCasesPage.Subtitle.Pick(req.Lang), "website")
	vm.SEO.addBreadcrumbs(req, vm.Breadcrumbs)
	return vm
}
