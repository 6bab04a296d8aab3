package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	"equitylens/internal/domain"
	"equitylens/internal/table"
)

// Canonical column names of datasets built from vision replies.
const (
	ColumnClassification = "classification"
	ColumnDescription    = "description"
	ColumnValue          = "value"
)

// SignWarning is attached to every sign-heuristic result.
const SignWarning = "Sign-based classification used (positive = asset, negative = liability). Verify the results manually."

// labelOf maps normalized text onto a balance-sheet side. Asset keywords win
// when both sides match.
func labelOf(normalized string) domain.Label {
	switch {
	case containsAny(normalized, assetKeywords):
		return domain.LabelAsset
	case containsAny(normalized, liabilityKeywords):
		return domain.LabelLiability
	default:
		return domain.LabelUnclassified
	}
}

// visionRows handles the exact three-column shape produced from vision
// replies, grouping on the canonical labels without keyword resolution.
func visionRows(s *scan) (domain.StrategyResult, bool) {
	cols := s.data.Columns
	if len(cols) != 3 || cols[0] != ColumnClassification || cols[1] != ColumnDescription || cols[2] != ColumnValue {
		return domain.StrategyResult{}, false
	}

	labels := make([]domain.Label, s.data.Len())
	for i, c := range s.data.Column(0) {
		switch domain.Label(NormalizeText(c)) {
		case domain.LabelAsset:
			labels[i] = domain.LabelAsset
		case domain.LabelLiability:
			labels[i] = domain.LabelLiability
		default:
			labels[i] = domain.LabelUnclassified
		}
	}

	res, ok := groupByLabel(labels, s.data.Column(2), s.data.Column(1))
	res.Columns = domain.ResultColumns{
		Classification: ColumnClassification,
		Description:    ColumnDescription,
		Value:          ColumnValue,
	}
	return res, ok
}

// pairedColumns sums one asset column against one liability column. When
// several headers match a side, the last one wins.
func pairedColumns(s *scan) (domain.StrategyResult, bool) {
	var asset, liability *Header
	for i := range s.headers {
		h := &s.headers[i]
		if containsAny(h.Normalized, assetKeywords) {
			asset = h
		}
		if containsAny(h.Normalized, liabilityKeywords) {
			liability = h
		}
	}
	if asset == nil || liability == nil {
		return domain.StrategyResult{}, false
	}

	res := domain.NewStrategyResult(domain.MethodPairedColumns,
		SumNumeric(s.data.Column(asset.Position)),
		SumNumeric(s.data.Column(liability.Position)))
	res.Columns = domain.ResultColumns{Asset: asset.Name, Liability: liability.Name}
	return res, !res.IsTrivial()
}

// classificationAndValue labels rows from a dedicated classification column.
func classificationAndValue(s *scan) (domain.StrategyResult, bool) {
	class, ok := FindColumn(ClassificationKeywords, s.headers)
	if !ok {
		return domain.StrategyResult{}, false
	}
	value, ok := s.valueColumn()
	if !ok {
		return domain.StrategyResult{}, false
	}

	res, ok := groupByLabel(labelColumn(s.data.Column(class.Position)), s.data.Column(value.Position), nil)
	res.Columns = domain.ResultColumns{Classification: class.Name, Value: value.Name}
	return res, ok
}

// descriptionAndValue labels rows by scanning free-text descriptions.
func descriptionAndValue(s *scan) (domain.StrategyResult, bool) {
	desc, ok := FindColumn(DescriptionKeywords, s.headers)
	if !ok {
		return domain.StrategyResult{}, false
	}
	value, ok := s.valueColumn()
	if !ok {
		return domain.StrategyResult{}, false
	}

	descriptions := s.data.Column(desc.Position)
	res, ok := groupByLabel(labelColumn(descriptions), s.data.Column(value.Position), descriptions)
	res.Columns = domain.ResultColumns{Description: desc.Name, Value: value.Name}
	return res, ok
}

// signHeuristic is the last resort: positive numbers are assets, negative
// numbers are liabilities.
func signHeuristic(s *scan) (domain.StrategyResult, bool) {
	col, ok := firstNumericColumn(s)
	if !ok {
		if v, found := s.valueColumn(); found {
			col = v
		} else {
			col = s.headers[len(s.headers)-1]
		}
	}

	var assets, liabilities decimal.Decimal
	for _, n := range CoerceNumeric(s.data.Column(col.Position)) {
		if !n.Valid {
			continue
		}
		d := decimal.NewFromFloat(n.Value)
		switch d.Sign() {
		case 1:
			assets = assets.Add(d)
		case -1:
			liabilities = liabilities.Add(d.Abs())
		}
	}

	res := domain.NewStrategyResult(domain.MethodSignHeuristic, assets.InexactFloat64(), liabilities.InexactFloat64())
	res.Columns = domain.ResultColumns{Value: col.Name}
	res.Warning = SignWarning
	return res, !res.IsTrivial()
}

func firstNumericColumn(s *scan) (Header, bool) {
	for _, h := range s.headers {
		if s.data.IsNumeric(h.Position) {
			return h, true
		}
	}
	return Header{}, false
}

func labelColumn(cells []table.Cell) []domain.Label {
	out := make([]domain.Label, len(cells))
	for i, c := range cells {
		out[i] = labelOf(NormalizeText(c))
	}
	return out
}

// groupByLabel drops unclassified rows and rows without a numeric value, then
// sums the rest per side. descriptions may be nil.
func groupByLabel(labels []domain.Label, values, descriptions []table.Cell) (domain.StrategyResult, bool) {
	numbers := CoerceNumeric(values)

	var assets, liabilities decimal.Decimal
	var detail []domain.DetailRow
	for i, label := range labels {
		if label == domain.LabelUnclassified || !numbers[i].Valid {
			continue
		}
		d := decimal.NewFromFloat(numbers[i].Value)
		if label == domain.LabelAsset {
			assets = assets.Add(d)
		} else {
			liabilities = liabilities.Add(d)
		}

		row := domain.DetailRow{Classification: label, Value: numbers[i].Value}
		if descriptions != nil {
			row.Description = strings.TrimSpace(descriptions[i].String())
		}
		detail = append(detail, row)
	}

	res := domain.NewStrategyResult("", assets.InexactFloat64(), liabilities.InexactFloat64())
	if res.IsTrivial() {
		return res, false
	}
	res.Detail = detail
	return res, true
}
