package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/metrics"
)

// deliveryStrategy is one way of getting the image in front of a model.
type deliveryStrategy int

const (
	// strategyInline sends the image as a base64 payload inside the request.
	strategyInline deliveryStrategy = iota
	// strategyRemoteURL appends the chat platform's file URL to the prompt.
	// Best effort: not every model dereferences URLs.
	strategyRemoteURL
	// strategyReupload re-hosts the bytes on a public file host and sends
	// that URL the same way.
	strategyReupload
)

func (s deliveryStrategy) String() string {
	switch s {
	case strategyInline:
		return "inline"
	case strategyRemoteURL:
		return "remote_url"
	case strategyReupload:
		return "reupload"
	}
	return "unknown"
}

// deliveryOrder is the declared preference order of strategies.
var deliveryOrder = []deliveryStrategy{strategyInline, strategyRemoteURL, strategyReupload}

// attempt pairs one delivery strategy with one model identifier. The
// orchestrator consumes a flat ordered list of attempts in a single loop,
// so the first-success short-circuit is an early return rather than a
// break out of nested iteration.
type attempt struct {
	strategy deliveryStrategy
	model    string
}

// IdentifyConfig holds configuration for the identification service.
type IdentifyConfig struct {
	Models         []string
	Prompt         string
	AttemptTimeout time.Duration
}

// IdentifyService tries an ordered list of delivery strategies against an
// ordered list of models until one attempt yields non-empty text. A single
// attempt's error is logged and treated as an empty result; only full
// exhaustion surfaces to the caller, as domain.ErrNotIdentified.
type IdentifyService struct {
	vision         domain.VisionClient
	uploader       domain.Uploader
	cache          domain.IdentificationCache
	models         []string
	prompt         string
	attemptTimeout time.Duration
}

// NewIdentifyService creates an identification service. uploader and cache
// may be nil; the re-upload strategy is skipped and memoization disabled
// respectively.
func NewIdentifyService(
	vision domain.VisionClient,
	uploader domain.Uploader,
	cache domain.IdentificationCache,
	config IdentifyConfig,
) *IdentifyService {
	timeout := config.AttemptTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &IdentifyService{
		vision:         vision,
		uploader:       uploader,
		cache:          cache,
		models:         config.Models,
		prompt:         config.Prompt,
		attemptTimeout: timeout,
	}
}

// Identify runs the attempt list in declared order and returns the first
// identification backed by non-empty extracted text. Parsing cannot shrink
// a non-empty text to an empty identification (the raw-text fallback keeps
// the text as the English name), so short-circuiting on text is equivalent
// to short-circuiting on the parsed result.
func (s *IdentifyService) Identify(ctx context.Context, input domain.ImageInput) (domain.ProductIdentification, error) {
	if len(input.Bytes) == 0 {
		return domain.ProductIdentification{}, domain.ErrInvalidRequest
	}

	key := imageDigest(input.Bytes)
	if s.cache != nil {
		if ident, ok := s.cache.Get(key); ok {
			return ident, nil
		}
	}

	// The re-hosted URL is resolved lazily on the first re-upload attempt
	// and reused by the ones after it.
	var reuploadURL string

	for _, a := range s.attempts() {
		text, err := s.runAttempt(ctx, a, input, &reuploadURL)
		if err != nil {
			log.Printf("[Identify] model=%s strategy=%s attempt failed: %v", a.model, a.strategy, err)
			metrics.IdentifyAttempts.WithLabelValues(a.model, a.strategy.String(), "error").Inc()
			continue
		}
		if text == "" {
			metrics.IdentifyAttempts.WithLabelValues(a.model, a.strategy.String(), "empty").Inc()
			continue
		}

		metrics.IdentifyAttempts.WithLabelValues(a.model, a.strategy.String(), "hit").Inc()
		metrics.IdentifyResults.WithLabelValues("identified").Inc()

		ident := ParseProduct(text)
		if s.cache != nil {
			s.cache.Set(key, ident)
		}
		return ident, nil
	}

	metrics.IdentifyResults.WithLabelValues("exhausted").Inc()
	return domain.ProductIdentification{}, domain.ErrNotIdentified
}

// attempts returns the full ordered (strategy x model) list.
func (s *IdentifyService) attempts() []attempt {
	out := make([]attempt, 0, len(deliveryOrder)*len(s.models))
	for _, strategy := range deliveryOrder {
		for _, model := range s.models {
			out = append(out, attempt{strategy: strategy, model: model})
		}
	}
	return out
}

// runAttempt performs one (strategy, model) call and extracts its text.
// Inapplicable attempts (no remote URL, no uploader) return empty text so
// iteration moves on without noise.
func (s *IdentifyService) runAttempt(
	ctx context.Context,
	a attempt,
	input domain.ImageInput,
	reuploadURL *string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	var req domain.VisionRequest
	switch a.strategy {
	case strategyInline:
		req = domain.VisionRequest{
			Prompt:    s.prompt,
			ImageData: input.Bytes,
			MimeType:  "image/jpeg",
		}
	case strategyRemoteURL:
		if input.RemoteURL == "" {
			return "", nil
		}
		req = domain.VisionRequest{Prompt: urlPrompt(s.prompt, input.RemoteURL)}
	case strategyReupload:
		if s.uploader == nil {
			return "", nil
		}
		if *reuploadURL == "" {
			hosted, err := s.uploader.Upload(ctx, input.Bytes, "photo.jpg")
			if err != nil {
				return "", fmt.Errorf("%w: %v", domain.ErrUploadFailure, err)
			}
			*reuploadURL = hosted
		}
		req = domain.VisionRequest{Prompt: urlPrompt(s.prompt, *reuploadURL)}
	}

	raw, err := s.vision.Generate(ctx, a.model, req)
	if err != nil {
		return "", err
	}
	return ExtractText(raw), nil
}

func urlPrompt(prompt, imageURL string) string {
	return prompt + "\n\nImage URL: " + imageURL
}

// imageDigest keys the identification cache by image content.
func imageDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
