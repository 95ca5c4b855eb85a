package service

import (
	"strings"
	"unicode/utf8"

	"seo_checker/internal/domain/models"
)

const (
	titleMinLength       = 10
	titleMaxLength       = 60
	descriptionMinLength = 50
	descriptionMaxLength = 160
	brokenLinksWarnLimit = 5
)

type rule func(signals models.PageSignals, brokenLinks int) string

// PageAnalyzer runs the fixed SEO rule battery. It holds no state, so the
// same signals always produce the same verdicts.
type PageAnalyzer struct {
	rules []rule
}

func NewPageAnalyzer() *PageAnalyzer {
	return &PageAnalyzer{
		rules: []rule{
			analyzeTitle,
			analyzeDescription,
			analyzeKeywords,
			analyzeBrokenLinks,
			analyzeViewport,
			analyzeH1,
			analyzeImageAlt,
		},
	}
}

// Analyze returns one verdict per rule, in rule order.
func (a *PageAnalyzer) Analyze(signals models.PageSignals, brokenLinks int) []string {
	verdicts := make([]string, 0, len(a.rules))
	for _, r := range a.rules {
		verdicts = append(verdicts, r(signals, brokenLinks))
	}
	return verdicts
}

func analyzeTitle(s models.PageSignals, _ int) string {
	if s.Title == nil || *s.Title == "" {
		return models.Verdict(models.SeverityFail, "Missing <title> tag. Add a descriptive title.")
	}
	n := utf8.RuneCountInString(*s.Title)
	switch {
	case n < titleMinLength:
		return models.Verdict(models.SeverityWarn, "Title is too short (%d chars). Make it more descriptive.", n)
	case n > titleMaxLength:
		return models.Verdict(models.SeverityWarn, "Title is long (%d chars). Consider shortening to ~60 chars.", n)
	default:
		return models.Verdict(models.SeverityPass, "Title length is good.")
	}
}

func analyzeDescription(s models.PageSignals, _ int) string {
	if s.Description == nil || *s.Description == "" {
		return models.Verdict(models.SeverityFail, "Missing meta description. Add one around 150-160 chars.")
	}
	n := utf8.RuneCountInString(*s.Description)
	switch {
	case n < descriptionMinLength:
		return models.Verdict(models.SeverityWarn, "Description is short (%d chars). Expand it.", n)
	case n > descriptionMaxLength:
		return models.Verdict(models.SeverityWarn, "Description is long (%d chars). Consider shortening.", n)
	default:
		return models.Verdict(models.SeverityPass, "Meta description length is good.")
	}
}

func analyzeKeywords(s models.PageSignals, _ int) string {
	if s.Keywords == nil || *s.Keywords == "" {
		return models.Verdict(models.SeverityWarn, "No keywords meta tag. Not critical, but consider adding if helpful.")
	}
	return models.Verdict(models.SeverityPass, "Keywords meta tag found.")
}

func analyzeBrokenLinks(_ models.PageSignals, broken int) string {
	switch {
	case broken == 0:
		return models.Verdict(models.SeverityPass, "No broken links found.")
	case broken <= brokenLinksWarnLimit:
		return models.Verdict(models.SeverityWarn, "%d broken links found. Consider fixing them.", broken)
	default:
		return models.Verdict(models.SeverityFail, "%d broken links found. Major issue, fix them ASAP.", broken)
	}
}

func analyzeViewport(s models.PageSignals, _ int) string {
	if s.Meta["viewport"] == "" {
		return models.Verdict(models.SeverityWarn, "Missing viewport meta tag. Add for mobile responsiveness.")
	}
	return models.Verdict(models.SeverityPass, "Viewport meta tag found.")
}

func analyzeH1(s models.PageSignals, _ int) string {
	n := s.H1Count()
	switch {
	case n == 0:
		return models.Verdict(models.SeverityFail, "No <h1> tag found. Add a main heading.")
	case n > 1:
		return models.Verdict(models.SeverityWarn, "Multiple <h1> tags found (%d). Ideally use one.", n)
	default:
		return models.Verdict(models.SeverityPass, "Single <h1> tag found.")
	}
}

func analyzeImageAlt(s models.PageSignals, _ int) string {
	if len(s.Images) == 0 {
		return models.Verdict(models.SeverityWarn, "No <img> tags found on the page.")
	}
	missing := 0
	for _, img := range s.Images {
		if img.Alt == nil || strings.TrimSpace(*img.Alt) == "" {
			missing++
		}
	}
	if missing == 0 {
		return models.Verdict(models.SeverityPass, "All images have alt text.")
	}
	return models.Verdict(models.SeverityFail, "%d images missing alt text. Add descriptive alt attributes for accessibility and SEO.", missing)
}
