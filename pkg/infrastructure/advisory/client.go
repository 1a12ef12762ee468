// Package advisory asks an OpenAI-compatible chat completions endpoint to rank
// and phrase relocation candidates.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/services"
)

const systemPrompt = `You are a warehouse slotting analyst. You receive relocation candidates ` +
	`computed from order history. Rank them by expected operational benefit and write one ` +
	`short, concrete reason per SKU. Do not invent SKUs and do not change zones or numbers. ` +
	`Reply with JSON only: {"recommendations":[{"sku_code":"...","reason":"..."}]}`

// Config holds the endpoint settings
type Config struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	ChatCompletionsPath string        `mapstructure:"chat_completions_path"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether an endpoint is configured
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

// Client is a network-backed services.Advisor
type Client struct {
	baseURL  string
	apiKey   string
	model    string
	chatPath string
	timeout  time.Duration

	httpClient *http.Client
	logger     *zap.Logger
}

var _ services.Advisor = (*Client)(nil)

// New creates a client; a nil logger discards output
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("advisory: base_url required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("advisory: model required")
	}
	chatPath := strings.TrimSpace(cfg.ChatCompletionsPath)
	if chatPath == "" {
		chatPath = "/v1/chat/completions"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		chatPath:   chatPath,
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr},
		logger:     logger,
	}, nil
}

// NewWithHTTPClient is intended for tests; it swaps the transport
func NewWithHTTPClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

// Name returns the advisor name
func (c *Client) Name() string { return "llm:" + c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type candidate struct {
	SKU             entities.SKUCode   `json:"sku_code"`
	Class           string             `json:"class"`
	CurrentZone     string             `json:"current_zone"`
	RecommendedZone string             `json:"recommended_zone"`
	PicksPerMonth   float64            `json:"picks_per_month"`
	SavedPerPickM   float64            `json:"distance_saved_per_pick_m"`
	RelatedSKUs     []entities.SKUCode `json:"related_skus,omitempty"`
	Reason          string             `json:"reason"`
}

type adviceEnvelope struct {
	Recommendations []services.Advice `json:"recommendations"`
}

// Advise sends the candidates and parses the ranked advice. Errors wrap
// ErrRateLimited, ErrTimeout or ErrInvalidResponse where they apply.
func (c *Client) Advise(ctx context.Context, req services.AdvisoryRequest) ([]services.Advice, error) {
	candidates := make([]candidate, len(req.Recommendations))
	for i, r := range req.Recommendations {
		candidates[i] = candidate{
			SKU:             r.SKU,
			Class:           string(r.Class),
			CurrentZone:     r.CurrentZone,
			RecommendedZone: r.RecommendedZone,
			PicksPerMonth:   r.PicksPerMonth,
			SavedPerPickM:   r.DistanceSavedPerPickM,
			RelatedSKUs:     r.RelatedSKUs,
			Reason:          r.Reason,
		}
	}
	payload, err := json.Marshal(map[string]any{
		"warehouse_id": req.WarehouseID,
		"candidates":   candidates,
	})
	if err != nil {
		return nil, err
	}

	body := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(payload)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	var resp chatCompletionResponse
	if err := c.doJSON(ctx, body, &resp); err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}

	var envelope adviceEnvelope
	text := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(envelope.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: empty recommendations", ErrInvalidResponse)
	}
	for i := range envelope.Recommendations {
		envelope.Recommendations[i].SKU = entities.SKUCode(strings.ToUpper(strings.TrimSpace(string(envelope.Recommendations[i].SKU))))
		envelope.Recommendations[i].Reason = strings.TrimSpace(envelope.Recommendations[i].Reason)
	}

	c.logger.Debug("advisory response parsed", zap.Int("advice", len(envelope.Recommendations)))
	return envelope.Recommendations, nil
}

func (c *Client) doJSON(ctx context.Context, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.chatPath, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// classify maps transport failures onto the advisory sentinels
func classify(err error) error {
	var httpErr *HTTPError
	var netErr net.Error
	switch {
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return err
	}
}

// stripFences removes a markdown code fence some models wrap JSON in
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
