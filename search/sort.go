package search

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"investpro/customerrors"
	"investpro/models"
)

type SortKey string

const (
	SortBySymbol SortKey = "symbol"
	SortByPrice  SortKey = "price"
	SortByChange SortKey = "change"
	SortByVolume SortKey = "volume"
)

var SortKeys = []SortKey{SortBySymbol, SortByPrice, SortByChange, SortByVolume}

// ParseSortKey accepts the sort key names case-insensitively. An empty string means symbol.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortBySymbol, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("%w: %q", customerrors.ErrInvalidSortKey, s)
	}
	return key, nil
}

// sortStocks orders in place. Symbol ascends; price, change and volume descend.
// The sort is stable so equal keys keep catalog order.
func sortStocks(stocks []models.Stock, key SortKey) {
	var cmp func(a, b models.Stock) int
	switch key {
	case SortByPrice:
		cmp = func(a, b models.Stock) int { return b.Price.Cmp(a.Price) }
	case SortByChange:
		cmp = func(a, b models.Stock) int { return b.Change.Cmp(a.Change) }
	case SortByVolume:
		cmp = func(a, b models.Stock) int {
			av, bv := ParseVolume(a.Volume), ParseVolume(b.Volume)
			switch {
			case bv > av:
				return 1
			case bv < av:
				return -1
			}
			return 0
		}
	default:
		cmp = func(a, b models.Stock) int { return strings.Compare(a.Symbol, b.Symbol) }
	}
	slices.SortStableFunc(stocks, cmp)
}

var volumeScale = map[rune]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// ParseVolume reads a display volume such as "45.2M" or "1,200". The leading number is
// scaled by an optional K/M/B/T suffix (any case); anything unparsable counts as zero.
func ParseVolume(display string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(display), ",", "")
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+'
	})
	number, suffix := s, ""
	if end >= 0 {
		number, suffix = s[:end], strings.TrimSpace(s[end:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	if suffix != "" {
		if scale, ok := volumeScale[unicode.ToUpper([]rune(suffix)[0])]; ok {
			value *= scale
		}
	}
	return value
}
