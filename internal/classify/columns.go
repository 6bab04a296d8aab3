package classify

import "strings"

// Keyword tables. Order is priority: the resolver tries each keyword in turn.
var (
	assetKeywords     = []string{"ativo", "asset"}
	liabilityKeywords = []string{"passivo", "liab", "obrig"}

	ClassificationKeywords = []string{
		"classificacao", "classificação", "classification",
		"tipo", "type",
		"grupo", "group",
		"classe", "class",
		"categoria", "category",
		"natureza", "nature",
		"tipo de conta", "account type",
	}
	ValueKeywords = []string{
		"valor", "value", "amount", "montante", "saldo", "balance", "total",
	}
	DescriptionKeywords = []string{
		"descricao", "descrição", "description",
		"conta", "account",
		"historico", "histórico", "history",
		"nome", "name",
		"detalhe", "detail",
		"linha", "line",
	}
)

// Header is a column position with its original and normalized names.
type Header struct {
	Position   int
	Name       string
	Normalized string
}

// Headers normalizes column names, preserving source order.
func Headers(columns []string) []Header {
	out := make([]Header, len(columns))
	for i, name := range columns {
		out[i] = Header{Position: i, Name: name, Normalized: NormalizeString(name)}
	}
	return out
}

// FindColumn returns the first column, in source order, whose normalized name
// contains the highest-priority keyword that matches anything at all.
// Containment is deliberate: "total ativo circulante" must match "ativo".
func FindColumn(keywords []string, headers []Header) (Header, bool) {
	for _, kw := range keywords {
		for _, h := range headers {
			if strings.Contains(h.Normalized, kw) {
				return h, true
			}
		}
	}
	return Header{}, false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
