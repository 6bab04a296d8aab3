// Package decode turns raw statement files into table datasets.
package decode

import (
	"errors"
	"fmt"
	"log"

	"equitylens/internal/domain"
	"equitylens/internal/table"
)

// Decoder reads one file format.
type Decoder interface {
	Name() string
	Decode(data []byte) (*table.Dataset, error)
}

// Registry picks decoders by declared file type and probes the rest when the
// declared decoder is missing or fails.
type Registry struct {
	byType map[domain.FileType]Decoder
	probe  []Decoder
}

// NewRegistry returns a registry wired with every built-in decoder. Probing
// order is PDF, then spreadsheets, then delimited text.
func NewRegistry() *Registry {
	csvDec, xlsxDec, xlsDec, pdfDec := NewCSV(), NewXLSX(), NewXLS(), NewPDF()
	return NewRegistryWith(
		map[domain.FileType]Decoder{
			domain.FileTypeCSV:  csvDec,
			domain.FileTypeXLSX: xlsxDec,
			domain.FileTypeXLS:  xlsDec,
			domain.FileTypePDF:  pdfDec,
		},
		[]Decoder{pdfDec, xlsxDec, xlsDec, csvDec},
	)
}

// NewRegistryWith builds a registry from explicit decoders.
func NewRegistryWith(byType map[domain.FileType]Decoder, probe []Decoder) *Registry {
	return &Registry{byType: byType, probe: probe}
}

// Decode returns the dataset and the name of the decoder that produced it.
// When every attempt fails the error wraps domain.ErrUnreadableFormat.
func (r *Registry) Decode(data []byte, fileType domain.FileType) (*table.Dataset, string, error) {
	var errs []error
	tried := map[string]bool{}

	if dec, ok := r.byType[fileType]; ok {
		ds, err := safeDecode(dec, data)
		if err == nil {
			return ds, dec.Name(), nil
		}
		log.Printf("decode.Registry: %s decoder failed for declared type %s: %v", dec.Name(), fileType, err)
		errs = append(errs, fmt.Errorf("%s: %w", dec.Name(), err))
		tried[dec.Name()] = true
	}

	for _, dec := range r.probe {
		if tried[dec.Name()] {
			continue
		}
		ds, err := safeDecode(dec, data)
		if err == nil {
			return ds, dec.Name(), nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", dec.Name(), err))
	}

	if len(errs) == 0 {
		return nil, "", domain.ErrUnreadableFormat
	}
	return nil, "", fmt.Errorf("%w: %w", domain.ErrUnreadableFormat, errors.Join(errs...))
}

// safeDecode converts decoder panics on malformed input into errors.
func safeDecode(dec Decoder, data []byte) (ds *table.Dataset, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ds, err = nil, fmt.Errorf("decoder panic: %v", rec)
		}
	}()
	return dec.Decode(data)
}
