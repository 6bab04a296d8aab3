// Package vision extracts asset and liability lines from PDFs and images
// through a multimodal AI provider and converts them into datasets the
// classification cascade understands.
package vision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"equitylens/internal/domain"
	"equitylens/internal/port"
	"equitylens/internal/table"
)

// Extraction is a successful vision result.
type Extraction struct {
	Dataset  *table.Dataset
	Notes    string
	Model    string
	Provider string
}

// Adapter wraps a VisionClient with the fixed prompt, a bounded timeout and
// defensive reply parsing. A nil client disables it.
type Adapter struct {
	client  port.VisionClient
	timeout time.Duration
}

// NewAdapter creates an Adapter. A non-positive timeout means no extra bound
// beyond the caller's context.
func NewAdapter(client port.VisionClient, timeout time.Duration) *Adapter {
	return &Adapter{client: client, timeout: timeout}
}

// Enabled reports whether a provider is configured.
func (a *Adapter) Enabled() bool {
	return a != nil && a.client != nil
}

// Supports reports whether contentType can be sent to the provider.
func (a *Adapter) Supports(contentType string) bool {
	return domain.VisionContentTypes[contentType]
}

// Extract sends the document to the provider and converts its reply. Every
// failure is a *Error matching domain.ErrVisionFailure.
func (a *Adapter) Extract(ctx context.Context, data []byte, contentType string) (*Extraction, error) {
	if !a.Enabled() {
		return nil, newError(KindCallFailed, errors.New("no vision provider configured"))
	}
	if !a.Supports(contentType) {
		return nil, newError(KindUnsupportedMedia, fmt.Errorf("content type %q", contentType))
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := a.client.Extract(ctx, port.VisionInput{
		FileBytes:   data,
		ContentType: contentType,
		Prompt:      Prompt,
	})
	if err != nil {
		return nil, newError(KindCallFailed, err)
	}
	log.Printf("vision.Adapter: %s (%s) replied in %s", out.Provider, out.ModelUsed, time.Since(start).Round(time.Millisecond))

	reply, err := ParseReply(out.Reply)
	if err != nil {
		return nil, err
	}
	if reply.Len() == 0 {
		return nil, newError(KindNoItems, errors.New("reply lists no assets or liabilities"))
	}

	return &Extraction{
		Dataset:  reply.ToDataset(),
		Notes:    reply.Notes,
		Model:    out.ModelUsed,
		Provider: out.Provider,
	}, nil
}
