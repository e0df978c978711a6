package customerrors

import "errors"

var (
	ErrStockNotFound         = errors.New("stock not found")
	ErrInvalidSortKey        = errors.New("invalid sort key")
	ErrUnknownRecommendation = errors.New("unknown recommendation")
	ErrUnknownRiskLevel      = errors.New("unknown risk level")
)
