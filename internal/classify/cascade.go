// Package classify locates asset and liability values in an arbitrarily shaped
// table and derives equity from them.
//
// Classification runs an ordered list of strategies over the same read-only
// dataset. The first strategy that produces a non-zero total wins; a strategy
// that does not apply, or that sums to zero on both sides, falls through to
// the next one. Every call is independent and holds no shared state, so
// Classify is safe for concurrent use.
package classify

import (
	"equitylens/internal/domain"
	"equitylens/internal/table"
)

// strategy attempts one classification. ok is false when the strategy does
// not apply or produced an all-zero result.
type strategy struct {
	method domain.Method
	run    func(s *scan) (domain.StrategyResult, bool)
}

// cascade is tried strictly in this order.
var cascade = []strategy{
	{domain.MethodVisionRows, visionRows},
	{domain.MethodPairedColumns, pairedColumns},
	{domain.MethodClassificationAndValue, classificationAndValue},
	{domain.MethodDescriptionAndValue, descriptionAndValue},
	{domain.MethodSignHeuristic, signHeuristic},
}

// scan carries per-call column resolution shared between strategies.
type scan struct {
	data    *table.Dataset
	headers []Header

	valueResolved bool
	value         Header
	hasValue      bool
}

// valueColumn resolves the value column once per call.
func (s *scan) valueColumn() (Header, bool) {
	if !s.valueResolved {
		s.value, s.hasValue = FindColumn(ValueKeywords, s.headers)
		s.valueResolved = true
	}
	return s.value, s.hasValue
}

// Classify runs the cascade over data. It returns domain.ErrEmptyInput for an
// empty dataset without running any strategy, and
// domain.ErrNoClassifiableStructure when every strategy falls through.
// The dataset is never modified.
func Classify(data *table.Dataset) (*domain.StrategyResult, error) {
	if data.IsEmpty() {
		return nil, domain.ErrEmptyInput
	}

	s := &scan{data: data, headers: Headers(data.Columns)}
	for _, st := range cascade {
		res, ok := st.run(s)
		if !ok || res.IsTrivial() {
			continue
		}
		res.Method = st.method
		return &res, nil
	}
	return nil, domain.ErrNoClassifiableStructure
}

// Methods lists the strategy names in cascade order.
func Methods() []domain.Method {
	out := make([]domain.Method, len(cascade))
	for i, st := range cascade {
		out[i] = st.method
	}
	return out
}
