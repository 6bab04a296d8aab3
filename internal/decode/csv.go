package decode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"equitylens/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiters in tie-break order.
var delimiters = []rune{',', ';', '\t', '|'}

// CSV decodes delimited text, sniffing the delimiter from the first lines.
type CSV struct{}

// NewCSV creates a delimited-text decoder.
func NewCSV() *CSV { return &CSV{} }

func (*CSV) Name() string { return "csv" }

func (*CSV) Decode(data []byte) (*table.Dataset, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errors.New("binary content is not delimited text")
	}
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty file")
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading delimited text: %w", err)
	}
	return table.FromRecords(records).InferTypes(), nil
}

// toUTF8 strips a UTF-8 BOM and decodes non-UTF-8 input as Windows-1252,
// the usual encoding of spreadsheet exports on Windows.
func toUTF8(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding windows-1252 text: %w", err)
	}
	return string(decoded), nil
}

// sniffDelimiter picks the candidate that splits the most sample lines into
// the same number of fields as the first line.
func sniffDelimiter(text string) rune {
	var sample []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == 10 {
			break
		}
	}
	if len(sample) == 0 {
		return ','
	}

	best, bestScore, bestFields := ',', 0, 0
	for _, d := range delimiters {
		want := countOutsideQuotes(sample[0], d)
		if want == 0 {
			continue
		}
		score := 0
		for _, line := range sample {
			if countOutsideQuotes(line, d) == want {
				score++
			}
		}
		if score > bestScore || (score == bestScore && want > bestFields) {
			best, bestScore, bestFields = d, score, want
		}
	}
	return best
}

func countOutsideQuotes(line string, d rune) int {
	n, quoted := 0, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			n++
		}
	}
	return n
}
