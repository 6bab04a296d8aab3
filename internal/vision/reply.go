package vision

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"equitylens/internal/classify"
	"equitylens/internal/domain"
	"equitylens/internal/table"
)

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// Item is one line reported by the vision provider. Fields stay raw because
// models return values as numbers or as formatted strings.
type Item struct {
	Description json.RawMessage `json:"description"`
	Value       json.RawMessage `json:"value"`
}

// Reply is the structured content of a vision reply.
type Reply struct {
	Assets      []Item
	Liabilities []Item
	Notes       string
}

type rawReply struct {
	Assets      json.RawMessage `json:"assets"`
	Liabilities json.RawMessage `json:"liabilities"`
	Notes       json.RawMessage `json:"notes"`
}

// ParseReply extracts the JSON object from a free-text reply. Code fences and
// surrounding prose are ignored, and malformed JSON is repaired before giving
// up.
func ParseReply(text string) (*Reply, error) {
	obj, ok := extractObject(text)
	if !ok {
		return nil, newError(KindReplyNotJSON, fmt.Errorf("no JSON object in reply: %s", Truncate(text, 200)))
	}

	var raw rawReply
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		repaired, rerr := jsonrepair.RepairJSON(obj)
		if rerr != nil {
			return nil, newError(KindReplyNotJSON, err)
		}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return nil, newError(KindReplyNotJSON, err)
		}
		log.Printf("vision.ParseReply: repaired malformed JSON reply")
	}

	if isAbsent(raw.Assets) && isAbsent(raw.Liabilities) {
		return nil, newError(KindReplyMissingArrays, errors.New(`reply has neither "assets" nor "liabilities"`))
	}

	assets, err := decodeItems("assets", raw.Assets)
	if err != nil {
		return nil, err
	}
	liabilities, err := decodeItems("liabilities", raw.Liabilities)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Assets:      assets,
		Liabilities: liabilities,
		Notes:       rawText(raw.Notes),
	}, nil
}

// extractObject returns the text between the first '{' and the last '}',
// after unwrapping a fenced block when one is present.
func extractObject(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		// Truncated reply; let the repair step close it.
		return s[start:], true
	}
	return s[start : end+1], true
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeItems(field string, raw json.RawMessage) ([]Item, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newError(KindReplyMissingArrays, fmt.Errorf("%q is not an array of items: %w", field, err))
	}
	return items, nil
}

// rawText renders a JSON scalar as plain text. Strings are unquoted.
func rawText(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// Len returns the number of reported lines.
func (r *Reply) Len() int {
	return len(r.Assets) + len(r.Liabilities)
}

// ToDataset converts the reply into the canonical three-column dataset the
// classification cascade recognizes.
func (r *Reply) ToDataset() *table.Dataset {
	ds := table.New([]string{classify.ColumnClassification, classify.ColumnDescription, classify.ColumnValue})
	add := func(label domain.Label, items []Item) {
		for _, it := range items {
			ds.AddRow(table.Text(string(label)), descriptionCell(it.Description), valueCell(it.Value))
		}
	}
	add(domain.LabelAsset, r.Assets)
	add(domain.LabelLiability, r.Liabilities)
	return ds
}

func descriptionCell(raw json.RawMessage) table.Cell {
	if s := rawText(raw); s != "" {
		return table.Text(s)
	}
	return table.Empty()
}

// valueCell keeps numbers numeric. Strings are normalized per item, first as
// plain numbers and then with the locale cleanup, because a column mixing
// JSON numbers with formatted strings never takes the whole-column locale
// retry.
func valueCell(raw json.RawMessage) table.Cell {
	if isAbsent(raw) {
		return table.Empty()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return table.Number(f)
	}
	s := rawText(raw)
	if s == "" {
		return table.Empty()
	}
	if n, ok := table.ParseNumber(s); ok {
		return table.Number(n)
	}
	if n, ok := classify.ParseLocale(s); ok {
		return table.Number(n)
	}
	return table.Text(s)
}
