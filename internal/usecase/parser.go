package usecase

import (
	"encoding/json"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// parsedNames mirrors the JSON the prompt asks the model to return.
// name_arabic is the key an earlier prompt revision used; replies from
// models still trained on it are accepted.
type parsedNames struct {
	English      string `json:"name_en"`
	Arabic       string `json:"name_ar"`
	ArabicLegacy string `json:"name_arabic"`
	French       string `json:"name_fr"`
}

// ParseProduct turns extracted model text into a ProductIdentification.
// The candidate JSON is the span between the first "{" and the last "}";
// models routinely wrap it in pleasantries. Any parse failure falls back to
// the whole trimmed text as the English name. Callers depend on that
// raw-text path whenever the model ignores the formatting instructions, so
// this function never reports an error.
func ParseProduct(text string) domain.ProductIdentification {
	trimmed := strings.TrimSpace(text)

	candidate := trimmed
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			candidate = trimmed[start : end+1]
		}
	}

	var names parsedNames
	if err := json.Unmarshal([]byte(candidate), &names); err != nil {
		return domain.ProductIdentification{English: trimmed}
	}

	arabic := names.Arabic
	if arabic == "" {
		arabic = names.ArabicLegacy
	}

	return domain.ProductIdentification{
		English: strings.TrimSpace(names.English),
		Arabic:  strings.TrimSpace(arabic),
		French:  strings.TrimSpace(names.French),
	}
}
