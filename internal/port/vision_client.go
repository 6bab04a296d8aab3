package port

import "context"

// VisionInput carries a document for AI vision extraction.
type VisionInput struct {
	FileBytes   []byte
	ContentType string
	Prompt      string
}

// VisionOutput is the raw reply of a vision provider.
type VisionOutput struct {
	Reply     string
	ModelUsed string
	Provider  string
}

// VisionClient abstracts a multimodal AI provider.
type VisionClient interface {
	Extract(ctx context.Context, input VisionInput) (*VisionOutput, error)
}
