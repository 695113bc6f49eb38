package usecase

import (
	"encoding/json"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// shapeMatcher inspects a decoded model response and returns any text it
// recognizes. Matchers are tried in order; the first non-empty result wins.
type shapeMatcher func(body map[string]any) string

// responseMatchers is the ordered probe chain: direct top-level text
// fields, Gemini-style candidates, then OpenAI-responses-style output
// items. Anything else falls through to stringification.
var responseMatchers = []shapeMatcher{
	matchDirectText,
	matchCandidateParts,
	matchOutputItems,
}

// ExtractText pulls a best-effort plain-text answer out of a raw model
// response. It never fails: undecodable or unrecognized shapes degrade to
// the stringified body, and the empty string is the "nothing found" result
// rather than an error. Multi-fragment outputs are joined with newlines.
func ExtractText(resp domain.RawModelResponse) string {
	raw := strings.TrimSpace(string(resp))
	if raw == "" {
		return ""
	}

	var body map[string]any
	if err := json.Unmarshal(resp, &body); err != nil {
		// Not a JSON object; the body itself is the best we have.
		return raw
	}

	for _, match := range responseMatchers {
		if text := strings.TrimSpace(match(body)); text != "" {
			return text
		}
	}

	return raw
}

// matchDirectText probes the top-level fields that carry a complete answer
// in a single string.
func matchDirectText(body map[string]any) string {
	for _, key := range []string{"output_text", "text", "response", "result"} {
		if s, ok := body[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// matchCandidateParts handles the generateContent shape:
// candidates[].content.parts[].text. Content given directly as a list of
// parts is tolerated too.
func matchCandidateParts(body map[string]any) string {
	candidates, ok := body["candidates"].([]any)
	if !ok {
		return ""
	}

	var fragments []string
	for _, c := range candidates {
		candidate, ok := c.(map[string]any)
		if !ok {
			continue
		}
		fragments = append(fragments, partTexts(candidate["content"])...)
		if s, ok := candidate["text"].(string); ok {
			fragments = append(fragments, s)
		}
	}
	return joinFragments(fragments)
}

// partTexts collects text fragments from a content value, which may be an
// object holding a parts list or the parts list itself.
func partTexts(content any) []string {
	var parts []any
	switch v := content.(type) {
	case map[string]any:
		parts, _ = v["parts"].([]any)
	case []any:
		parts = v
	}

	var out []string
	for _, p := range parts {
		switch part := p.(type) {
		case map[string]any:
			if s, ok := part["text"].(string); ok {
				out = append(out, s)
			}
		case string:
			out = append(out, part)
		}
	}
	return out
}

// matchOutputItems handles the responses-API shape: output[] items whose
// content lists hold typed text sub-items, or that carry a text field
// directly.
func matchOutputItems(body map[string]any) string {
	output, ok := body["output"].([]any)
	if !ok {
		return ""
	}

	var fragments []string
	for _, o := range output {
		item, ok := o.(map[string]any)
		if !ok {
			continue
		}

		if content, ok := item["content"].([]any); ok {
			for _, c := range content {
				switch sub := c.(type) {
				case map[string]any:
					if t, _ := sub["type"].(string); t == "output_text" || t == "text" {
						if s, ok := sub["text"].(string); ok {
							fragments = append(fragments, s)
						}
					}
				case string:
					fragments = append(fragments, sub)
				}
			}
			continue
		}

		if s, ok := item["text"].(string); ok {
			fragments = append(fragments, s)
		}
	}
	return joinFragments(fragments)
}

func joinFragments(fragments []string) string {
	var kept []string
	for _, f := range fragments {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, "\n")
}
