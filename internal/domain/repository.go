package domain

import "context"

// VisionClient defines the interface for calling a vision-capable
// generateContent API. The raw body is returned untouched; extracting text
// from it is the caller's concern.
type VisionClient interface {
	Generate(ctx context.Context, model string, req VisionRequest) (RawModelResponse, error)
}

// Uploader re-hosts image bytes on a public anonymous file host and returns
// the resulting URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// ClickStore is the persisted per-user click counter ledger. Increment is
// write-through: the full ledger is durably rewritten before it returns.
type ClickStore interface {
	Increment(userID, product string) error
	Snapshot() LedgerSnapshot
}

// Identifier produces a product identification from an image, or
// ErrNotIdentified when every fallback attempt is exhausted.
type Identifier interface {
	Identify(ctx context.Context, input ImageInput) (ProductIdentification, error)
}

// IdentificationCache memoizes identifications keyed by an image digest so
// a re-sent photo does not trigger another round of model calls.
type IdentificationCache interface {
	Get(key string) (ProductIdentification, bool)
	Set(key string, ident ProductIdentification)
}

// PrefsStore persists per-user preferences. Language never fails: unknown
// users get the default language.
type PrefsStore interface {
	Language(userID int64) string
	SetLanguage(userID int64, lang string) error
}

// Messenger is the outbound chat-platform surface the bot needs.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendLinks(ctx context.Context, chatID int64, text string, buttons []LinkButton) error
	SendLanguageChooser(ctx context.Context, chatID int64, prompt string) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	PhotoFileURL(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, fileURL string) ([]byte, error)
}
