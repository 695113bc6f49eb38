package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shoplens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client calls the generateContent REST API of a Gemini-style vision
// model. It returns response bodies undecoded; shape probing lives in the
// usecase layer.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a vision API client.
func NewClient(apiKey, baseURL string) *Client {
	// The free tier allows 15 requests per minute; 0.25/sec keeps a margin.
	limiter := rate.NewLimiter(rate.Limit(0.25), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables logging of request payload sizes and response bodies.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Generate performs one generateContent call against the given model.
// Transient failures (network errors, 5xx) are retried up to 3 times with
// exponential backoff; anything still failing is wrapped in
// domain.ErrVisionAPIFailure.
func (c *Client) Generate(ctx context.Context, model string, req domain.VisionRequest) (domain.RawModelResponse, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)

	body, err := json.Marshal(buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	if c.debug {
		log.Printf("[Vision] model=%s payload=%dB inline=%t", model, len(body), len(req.ImageData) > 0)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		respBody, status, err := c.doRequest(ctx, endpoint, body)
		if err != nil {
			log.Printf("[Vision] request error (attempt %d): %v", attempt, err)
			lastErr = err
			if !sleepBackoff(ctx, attempt) {
				break
			}
			continue
		}

		if status != http.StatusOK {
			log.Printf("[Vision] API error (attempt %d) - status: %d, body: %s", attempt, status, truncate(respBody, 200))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrVisionAPIFailure, status)
			// Only server-side failures are worth retrying.
			if status < http.StatusInternalServerError {
				return nil, lastErr
			}
			if !sleepBackoff(ctx, attempt) {
				break
			}
			continue
		}

		if c.debug {
			log.Printf("[Vision] model=%s response: %s", model, truncate(respBody, 400))
		}
		return domain.RawModelResponse(respBody), nil
	}

	return nil, fmt.Errorf("%w: all attempts failed: %v", domain.ErrVisionAPIFailure, lastErr)
}

// buildPayload assembles the generateContent body: the inline image part
// first when present, then the prompt text.
func buildPayload(req domain.VisionRequest) generateRequest {
	var parts []part
	if len(req.ImageData) > 0 {
		mimeType := req.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(req.ImageData),
		}})
	}
	if req.Prompt != "" {
		parts = append(parts, part{Text: req.Prompt})
	}
	return generateRequest{Contents: []content{{Parts: parts}}}
}

func (c *Client) doRequest(ctx context.Context, endpoint string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrVisionAPIFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// sleepBackoff waits out the backoff for the given attempt, reporting
// false when the context ends first.
func sleepBackoff(ctx context.Context, attempt int) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(exponentialBackoff(attempt)):
		return true
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
