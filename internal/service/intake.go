package service

import (
	"context"
	"errors"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"equitylens/internal/domain"
	"equitylens/internal/table"
	"equitylens/internal/vision"
)

// VisionExtractor is the AI vision fallback used for PDFs and images.
type VisionExtractor interface {
	Enabled() bool
	Supports(contentType string) bool
	Extract(ctx context.Context, data []byte, contentType string) (*vision.Extraction, error)
}

// DatasetDecoder turns raw bytes into a dataset, probing formats as needed.
type DatasetDecoder interface {
	Decode(data []byte, fileType domain.FileType) (*table.Dataset, string, error)
}

// IntakeResult is a decoded upload ready for classification.
type IntakeResult struct {
	Dataset     *table.Dataset
	FileType    domain.FileType
	ContentType string
	Source      domain.Source
	Decoder     string
	Notes       string
}

// Intake resolves uploads into datasets. PDFs and images go to the vision
// extractor first; any vision failure falls through to the format decoders.
type Intake struct {
	vision   VisionExtractor
	decoders DatasetDecoder
}

// NewIntake creates an Intake. extractor may be nil.
func NewIntake(extractor VisionExtractor, decoders DatasetDecoder) *Intake {
	return &Intake{vision: extractor, decoders: decoders}
}

// FileTypeOf returns the type declared by the file extension, or
// FileTypeUnknown so that every decoder is probed.
func FileTypeOf(fileName string) domain.FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return ft
	}
	return domain.FileTypeUnknown
}

// ContentTypeOf returns the media type for a declared file type, sniffing the
// bytes when the extension is unknown.
func ContentTypeOf(fileType domain.FileType, data []byte) string {
	if ct, ok := domain.FileTypeContentTypes[fileType]; ok {
		return ct
	}
	ct, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return ct
}

// Resolve runs the intake state machine for one upload. It fails with
// domain.ErrUnreadableFormat only after vision and every decoder failed.
func (in *Intake) Resolve(ctx context.Context, fileName string, data []byte) (*IntakeResult, error) {
	fileType := FileTypeOf(fileName)
	contentType := ContentTypeOf(fileType, data)

	if in.vision != nil && in.vision.Enabled() && in.vision.Supports(contentType) {
		ext, err := in.vision.Extract(ctx, data, contentType)
		if err == nil {
			log.Printf("service.Intake: %s resolved by vision (%s, %d rows)", fileName, ext.Provider, ext.Dataset.Len())
			return &IntakeResult{
				Dataset:     ext.Dataset,
				FileType:    fileType,
				ContentType: contentType,
				Source:      domain.SourceVision,
				Notes:       ext.Notes,
			}, nil
		}
		log.Printf("service.Intake: vision fallback failed for %s (%s), trying decoders: %v", fileName, vision.KindOf(err), err)
	}

	ds, decoder, err := in.decoders.Decode(data, fileType)
	if err != nil {
		log.Printf("service.Intake: no decoder could read %s: %v", fileName, err)
		if !errors.Is(err, domain.ErrUnreadableFormat) {
			err = errors.Join(domain.ErrUnreadableFormat, err)
		}
		return nil, err
	}
	return &IntakeResult{
		Dataset:     ds,
		FileType:    fileType,
		ContentType: contentType,
		Source:      domain.SourceDecoder,
		Decoder:     decoder,
	}, nil
}
