package domain

// RawModelResponse is the undecoded JSON body of a vision-model reply.
// Shapes vary between models and API versions; nothing about its structure
// is guaranteed, including the presence of any particular field.
type RawModelResponse []byte

// VisionRequest describes one generateContent call. When ImageData is set
// the image travels inline as base64; otherwise the prompt alone is sent
// (the URL-based delivery strategies embed the image URL in the prompt).
type VisionRequest struct {
	Prompt    string
	ImageData []byte
	MimeType  string
}

// ImageInput carries a photo through the identification pipeline: the
// compressed bytes plus, when the chat platform exposes one, a URL
// referencing the original file.
type ImageInput struct {
	Bytes     []byte
	RemoteURL string
}

// ChatUpdate is the chat-platform-agnostic shape of one inbound update.
// Exactly one of Command, PhotoID, CallbackID, or plain Text drives the
// bot's dispatch.
type ChatUpdate struct {
	ChatID       int64
	UserID       int64
	Text         string
	Command      string
	PhotoID      string
	CallbackID   string
	CallbackData string
}

// LinkButton is a labeled URL button attached to a reply.
type LinkButton struct {
	Label string
	URL   string
}
