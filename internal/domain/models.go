package domain

import (
	"time"

	"github.com/google/uuid"
)

// DetailRow is one classified line that contributed to a result's totals.
type DetailRow struct {
	Classification Label   `json:"classification"`
	Description    string  `json:"description,omitempty"`
	Value          float64 `json:"value"`
}

// ResultColumns names the dataset columns a strategy read from.
type ResultColumns struct {
	Asset          string `json:"asset,omitempty"`
	Liability      string `json:"liability,omitempty"`
	Classification string `json:"classification,omitempty"`
	Description    string `json:"description,omitempty"`
	Value          string `json:"value,omitempty"`
}

// StrategyResult is the outcome of a successful classification.
// Equity always equals TotalAssets - TotalLiabilities.
type StrategyResult struct {
	Method           Method        `json:"method"`
	TotalAssets      float64       `json:"total_assets"`
	TotalLiabilities float64       `json:"total_liabilities"`
	Equity           float64       `json:"equity"`
	Columns          ResultColumns `json:"columns"`
	Detail           []DetailRow   `json:"detail,omitempty"`
	Warning          string        `json:"warning,omitempty"`
}

// NewStrategyResult builds a result, deriving equity from the two totals.
func NewStrategyResult(method Method, assets, liabilities float64) StrategyResult {
	return StrategyResult{
		Method:           method,
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		Equity:           assets - liabilities,
	}
}

// IsTrivial reports whether both totals are zero.
func (r StrategyResult) IsTrivial() bool {
	return r.TotalAssets == 0 && r.TotalLiabilities == 0
}

// Analysis is a classified upload as returned to clients and stored in history.
type Analysis struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	FileName  string         `db:"file_name" json:"file_name"`
	FileType  FileType       `db:"file_type" json:"file_type"`
	FileSize  int64          `db:"file_size" json:"file_size"`
	Source    Source         `db:"source" json:"source"`
	Decoder   string         `db:"decoder" json:"decoder,omitempty"`
	Notes     string         `db:"notes" json:"notes,omitempty"`
	S3Bucket  string         `db:"s3_bucket" json:"-"`
	S3Key     string         `db:"s3_key" json:"-"`
	Result    StrategyResult `db:"-" json:"result"`
	SourceURL string         `db:"-" json:"source_url,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
