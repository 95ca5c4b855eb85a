package adaptors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"seo_checker/internal/domain/adaptors"
	"seo_checker/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultAIBaseURL = "https://openrouter.ai/api/v1"
	DefaultAIModel   = "deepseek/deepseek-r1-0528:free"
)

type AIClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenRouterClient talks to an OpenAI compatible chat completions endpoint.
type OpenRouterClient struct {
	cfg    AIClientConfig
	client *http.Client
	log    *log.Logger
}

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []adaptors.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message adaptors.ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenRouterClient fails with a ConfigurationError when no key is set.
func NewOpenRouterClient(cfg AIClientConfig, log *log.Logger) (*OpenRouterClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &errors.ConfigurationError{Key: `OPENROUTER_API_KEY`, Reason: `missing in environment or .env file`}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &OpenRouterClient{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: InstrumentedTransport(),
		},
		log: log,
	}, nil
}

// Complete sends one chat completion request and returns the first choice.
// Every failure is an AIServiceError.
func (c *OpenRouterClient) Complete(ctx context.Context, messages []adaptors.ChatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: messages})
	if err != nil {
		return "", &errors.AIServiceError{Reason: `failed to encode request`, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &errors.AIServiceError{Reason: `failed to create request`, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.WithField(`model`, c.cfg.Model).Debug(`sending chat completion request`)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &errors.AIServiceError{Reason: `request failed`, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errors.AIServiceError{Reason: `failed to read response`, Err: err}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &errors.AIServiceError{Reason: fmt.Sprintf(`unexpected status code %d`, resp.StatusCode)}
		}
		return "", &errors.AIServiceError{Reason: `malformed response`, Err: err}
	}
	if decoded.Error != nil {
		return "", &errors.AIServiceError{Reason: fmt.Sprintf(`status %d: %s`, resp.StatusCode, decoded.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &errors.AIServiceError{Reason: fmt.Sprintf(`unexpected status code %d`, resp.StatusCode)}
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return "", &errors.AIServiceError{Reason: `empty response`}
	}

	return decoded.Choices[0].Message.Content, nil
}
