package service

import (
	"strings"
	"testing"

	"seo_checker/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodSignals() models.PageSignals {
	return models.PageSignals{
		Title:       ptr("A perfectly sized title"),
		Description: ptr(strings.Repeat("d", 120)),
		Keywords:    ptr("seo"),
		Meta:        map[string]string{"viewport": "width=device-width"},
		Headings:    map[string]int{"h1": 1},
		Images:      []models.Image{{Src: ptr("/a.png"), Alt: ptr("A")}},
	}
}

func TestAnalyze_TitleBoundaries(t *testing.T) {
	cases := []struct {
		length int
		want   string
	}{
		{length: 9, want: "⚠️ Title is too short (9 chars). Make it more descriptive."},
		{length: 10, want: "✅ Title length is good."},
		{length: 60, want: "✅ Title length is good."},
		{length: 61, want: "⚠️ Title is long (61 chars). Consider shortening to ~60 chars."},
	}

	analyzer := NewPageAnalyzer()
	for _, tc := range cases {
		s := goodSignals()
		s.Title = ptr(strings.Repeat("t", tc.length))
		assert.Equal(t, tc.want, analyzer.Analyze(s, 0)[0], "length %d", tc.length)
	}

	s := goodSignals()
	s.Title = nil
	assert.Equal(t, "❌ Missing <title> tag. Add a descriptive title.", analyzer.Analyze(s, 0)[0])
	s.Title = ptr("")
	assert.Equal(t, models.SeverityFail, models.SeverityOf(analyzer.Analyze(s, 0)[0]))
}

func TestAnalyze_TitleCountsCharactersNotBytes(t *testing.T) {
	s := goodSignals()
	s.Title = ptr("ÉÉÉÉÉÉÉÉÉÉ") // 10 runes, 20 bytes
	assert.Equal(t, "✅ Title length is good.", NewPageAnalyzer().Analyze(s, 0)[0])
}

func TestAnalyze_DescriptionBoundaries(t *testing.T) {
	cases := []struct {
		length   int
		severity models.Severity
	}{
		{length: 49, severity: models.SeverityWarn},
		{length: 50, severity: models.SeverityPass},
		{length: 160, severity: models.SeverityPass},
		{length: 161, severity: models.SeverityWarn},
	}

	analyzer := NewPageAnalyzer()
	for _, tc := range cases {
		s := goodSignals()
		s.Description = ptr(strings.Repeat("d", tc.length))
		assert.Equal(t, tc.severity, models.SeverityOf(analyzer.Analyze(s, 0)[1]), "length %d", tc.length)
	}

	s := goodSignals()
	s.Description = nil
	assert.Equal(t, "❌ Missing meta description. Add one around 150-160 chars.", analyzer.Analyze(s, 0)[1])
}

func TestAnalyze_BrokenLinkVolume(t *testing.T) {
	cases := []struct {
		broken int
		want   string
	}{
		{broken: 0, want: "✅ No broken links found."},
		{broken: 1, want: "⚠️ 1 broken links found. Consider fixing them."},
		{broken: 5, want: "⚠️ 5 broken links found. Consider fixing them."},
		{broken: 6, want: "❌ 6 broken links found. Major issue, fix them ASAP."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NewPageAnalyzer().Analyze(goodSignals(), tc.broken)[3])
	}
}

func TestAnalyze_Headings(t *testing.T) {
	analyzer := NewPageAnalyzer()
	s := goodSignals()

	s.Headings = map[string]int{"h1": 0}
	assert.Equal(t, "❌ No <h1> tag found. Add a main heading.", analyzer.Analyze(s, 0)[5])

	s.Headings = nil
	assert.Equal(t, models.SeverityFail, models.SeverityOf(analyzer.Analyze(s, 0)[5]))

	s.Headings = map[string]int{"h1": 3}
	assert.Equal(t, "⚠️ Multiple <h1> tags found (3). Ideally use one.", analyzer.Analyze(s, 0)[5])
}

func TestAnalyze_ImageAlt(t *testing.T) {
	analyzer := NewPageAnalyzer()
	s := goodSignals()

	s.Images = nil
	assert.Equal(t, "⚠️ No <img> tags found on the page.", analyzer.Analyze(s, 0)[6])

	s.Images = []models.Image{
		{Src: ptr("/a.png"), Alt: ptr("A")},
		{Src: ptr("/b.png"), Alt: ptr("   ")},
		{Src: ptr("/c.png")},
	}
	assert.Equal(t, "❌ 2 images missing alt text. Add descriptive alt attributes for accessibility and SEO.", analyzer.Analyze(s, 0)[6])
}

func TestAnalyze_KeywordsAndViewport(t *testing.T) {
	analyzer := NewPageAnalyzer()
	s := goodSignals()
	s.Keywords = nil
	s.Meta = map[string]string{}

	verdicts := analyzer.Analyze(s, 0)
	assert.Equal(t, "⚠️ No keywords meta tag. Not critical, but consider adding if helpful.", verdicts[2])
	assert.Equal(t, "⚠️ Missing viewport meta tag. Add for mobile responsiveness.", verdicts[4])
}

func TestAnalyze_HomePageScenario(t *testing.T) {
	s := models.PageSignals{
		Title:    ptr("Home"),
		Meta:     map[string]string{"viewport": "width=device-width"},
		Headings: map[string]int{"h1": 1},
		Images:   []models.Image{{Src: ptr("/a.png"), Alt: ptr("A")}, {Src: ptr("/b.png"), Alt: ptr("B")}},
	}

	verdicts := NewPageAnalyzer().Analyze(s, 0)
	require.Len(t, verdicts, 7)
	assert.Equal(t, []string{
		"⚠️ Title is too short (4 chars). Make it more descriptive.",
		"❌ Missing meta description. Add one around 150-160 chars.",
		"⚠️ No keywords meta tag. Not critical, but consider adding if helpful.",
		"✅ No broken links found.",
		"✅ Viewport meta tag found.",
		"✅ Single <h1> tag found.",
		"✅ All images have alt text.",
	}, verdicts)
}

func TestAnalyze_Idempotent(t *testing.T) {
	analyzer := NewPageAnalyzer()
	s := goodSignals()
	s.Title = ptr("short")

	first := analyzer.Analyze(s, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, analyzer.Analyze(s, 2))
	}
}
