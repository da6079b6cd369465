package handlers

import (
	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
)

// SectionHeader feeds the shared section_header partial.
type SectionHeader struct {
	Lang    i18n.Locale
	Section content.Section
}

// NewSectionHeader pairs a section with the active locale.
func NewSectionHeader(l i18n.Locale, s content.Section) SectionHeader {
	return SectionHeader{Lang: l, Section: s}
}

// CaseLabels are the block captions inside a case card.
type CaseLabels struct {
	Context  i18n.Pair
	WhatIDid i18n.Pair
	Outcome  i18n.Pair
}

// CaseCard feeds the case_card partial.
type CaseCard struct {
	Lang   i18n.Locale
	Case   content.CaseStudy
	Labels CaseLabels
}

// NewCaseCard pairs a case study with the active locale.
func NewCaseCard(l i18n.Locale, c content.CaseStudy) CaseCard {
	return CaseCard{
		Lang: l,
		Case: c,
		Labels: CaseLabels{
			Context:  content.Common.Context,
			WhatIDid: content.Common.WhatIDid,
			Outcome:  content.Common.Outcome,
		},
	}
}
