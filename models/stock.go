package models

import (
	"fmt"
	"strings"

	"investpro/customerrors"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Stock struct {
	ID                  string          `json:"id"`
	Symbol              string          `json:"symbol"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Change              decimal.Decimal `json:"change"`
	ChangePercent       decimal.Decimal `json:"changePercent"`
	Volume              string          `json:"volume"`    // display string, e.g. "45.2M"
	MarketCap           string          `json:"marketCap"` // display string, e.g. "2.95T"
	Sector              string          `json:"sector"`    // e.g. "Technology", "Financial"
	Recommendation      Recommendation  `json:"recommendation"`
	SuggestedInvestment decimal.Decimal `json:"suggestedInvestment"`
	RiskLevel           RiskLevel       `json:"riskLevel"`
	AnalystRating       float64         `json:"analystRating"` // 0.0 to 5.0
}

// IsGaining reports whether the day's change is zero or positive.
func (s Stock) IsGaining() bool {
	return !s.Change.IsNegative()
}

// Recommendation is ordered from StrongBuy (best) to StrongSell (worst).
type Recommendation int

const (
	StrongSell Recommendation = iota + 1
	Sell
	Hold
	Buy
	StrongBuy
)

var recommendationLabels = map[Recommendation]string{
	StrongBuy:  "Strong Buy",
	Buy:        "Buy",
	Hold:       "Hold",
	Sell:       "Sell",
	StrongSell: "Strong Sell",
}

func ParseRecommendation(s string) (Recommendation, error) {
	for r, label := range recommendationLabels {
		if strings.EqualFold(strings.TrimSpace(s), label) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", customerrors.ErrUnknownRecommendation, s)
}

func (r Recommendation) String() string {
	if label, ok := recommendationLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("Recommendation(%d)", int(r))
}

// Rank is 5 for StrongBuy down to 1 for StrongSell.
func (r Recommendation) Rank() int {
	return int(r)
}

func (r Recommendation) MarshalText() ([]byte, error) {
	if _, ok := recommendationLabels[r]; !ok {
		return nil, fmt.Errorf("%w: %d", customerrors.ErrUnknownRecommendation, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Recommendation) UnmarshalText(text []byte) error {
	parsed, err := ParseRecommendation(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type RiskLevel int

const (
	LowRisk RiskLevel = iota + 1
	MediumRisk
	HighRisk
)

var riskLabels = map[RiskLevel]string{
	LowRisk:    "Low",
	MediumRisk: "Medium",
	HighRisk:   "High",
}

func ParseRiskLevel(s string) (RiskLevel, error) {
	for r, label := range riskLabels {
		if strings.EqualFold(strings.TrimSpace(s), label) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", customerrors.ErrUnknownRiskLevel, s)
}

func (r RiskLevel) String() string {
	if label, ok := riskLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("RiskLevel(%d)", int(r))
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	if _, ok := riskLabels[r]; !ok {
		return nil, fmt.Errorf("%w: %d", customerrors.ErrUnknownRiskLevel, int(r))
	}
	return []byte(r.String()), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
