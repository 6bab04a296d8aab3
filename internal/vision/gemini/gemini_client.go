package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"equitylens/internal/config"
	"equitylens/internal/port"
	"equitylens/internal/vision"
)

// Client implements port.VisionClient using the Gemini API through the genai SDK.
type Client struct {
	model  string
	client *genai.Client
}

// NewClient creates a Gemini vision client from a provider config.
func NewClient(cfg *config.VisionProviderConfig) (*Client, error) {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API base URL (for testing).
func NewClientWithEndpoint(cfg *config.VisionProviderConfig, baseURL string) (*Client, error) {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.VisionProviderConfig, baseURL string) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(baseURL, "/") + "/"}
	}
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{model: model, client: client}, nil
}

func (c *Client) Extract(ctx context.Context, input port.VisionInput) (*port.VisionOutput, error) {
	if !isSupported(input.ContentType) {
		return nil, fmt.Errorf("unsupported content type for vision: %s", input.ContentType)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(input.FileBytes, input.ContentType),
			genai.NewPartFromText(input.Prompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  4096,
		Temperature:      genai.Ptr(float32(0)),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		if code, ok := apiErrorCode(err); ok && code == http.StatusTooManyRequests {
			return nil, vision.NewRateLimitError("gemini", err, 0)
		}
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response from API: no text parts")
	}

	return &port.VisionOutput{
		Reply:     text,
		ModelUsed: c.model,
		Provider:  "gemini",
	}, nil
}

func isSupported(contentType string) bool {
	switch contentType {
	case "application/pdf", "image/jpeg", "image/png":
		return true
	default:
		return false
	}
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, true
	}
	return 0, false
}
