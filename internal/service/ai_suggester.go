package service

import (
	"bytes"
	"context"
	"encoding/json"

	"seo_checker/internal/domain/adaptors"
	"seo_checker/internal/domain/models"
	"seo_checker/internal/pkg/errors"
	"seo_checker/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

const consultantRole = "You are an advanced SEO consultant."

type AISuggester struct {
	log    *log.Logger
	client adaptors.AIClient
}

func NewAISuggester(log *log.Logger, client adaptors.AIClient) *AISuggester {
	return &AISuggester{
		log:    log,
		client: client,
	}
}

// BuildPrompt embeds the report, pretty printed, in the consultant prompt.
func BuildPrompt(report models.PageReport) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", errors.Wrap(err, `failed to encode report`)
	}

	return consultantRole + "\n" +
		"Analyze this website SEO report (JSON) and provide actionable, detailed, human-readable recommendations.\n" +
		"Be specific about missing elements, too-long or too-short fields, broken links, meta-tags, and general SEO best practices.\n" +
		"Respond in clear bullet points in English or Persian if appropriate.\n\n" +
		"SEO Report JSON:\n" + buf.String(), nil
}

// Suggest asks the model for narrative suggestions about one page.
func (s *AISuggester) Suggest(ctx context.Context, report models.PageReport) (string, error) {
	prompt, err := BuildPrompt(report)
	if err != nil {
		metrics.AISuggestionsTotal.WithLabelValues(`failed`).Inc()
		return "", &errors.AIServiceError{Reason: `failed to build prompt`, Err: err}
	}

	s.log.WithField(`url`, report.URL).Info(`sending report for AI suggestions`)
	text, err := s.client.Complete(ctx, []adaptors.ChatMessage{
		{Role: "system", Content: consultantRole},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		metrics.AISuggestionsTotal.WithLabelValues(`failed`).Inc()
		var aiErr *errors.AIServiceError
		if errors.As(err, &aiErr) {
			return "", err
		}
		return "", &errors.AIServiceError{Reason: `request failed`, Err: err}
	}

	metrics.AISuggestionsTotal.WithLabelValues(`ok`).Inc()
	s.log.WithField(`url`, report.URL).Info(`received AI suggestions`)
	return text, nil
}
