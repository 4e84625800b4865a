package caption

import "context"

// Params is one request to the vision model: an inline image plus the
// instruction text, sent together as a single two-part call.
type Params struct {
	ImageB64 string
	MimeType string
	Prompt   string
}

// Generator returns the raw text reply of a multimodal model for the
// given image and instruction. The text is untrusted; see internal/parse.
type Generator interface {
	Generate(context.Context, Params) (string, error)
}
