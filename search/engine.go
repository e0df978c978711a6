package search

import (
	"strings"

	"investpro/models"

	"github.com/samber/lo"
)

// AllSectors disables the sector filter.
const AllSectors = "All"

type Query struct {
	Text   string
	Sector string
	SortBy SortKey
}

type SearchEngine interface {
	Search(q Query) []models.Stock
	GetByID(id string) *models.Stock
	GetBySymbol(symbol string) *models.Stock
	Sectors() []string
}

type InMemoryEngine struct {
	stocks []models.Stock
}

func NewInMemoryEngine(stocks []models.Stock) *InMemoryEngine {
	return &InMemoryEngine{stocks: append([]models.Stock(nil), stocks...)}
}

func (e *InMemoryEngine) Search(q Query) []models.Stock {
	return VisibleStocks(e.stocks, q.Text, q.Sector, q.SortBy)
}

func (e *InMemoryEngine) GetByID(id string) *models.Stock {
	return findStock(e.stocks, func(s models.Stock) bool { return s.ID == id })
}

func (e *InMemoryEngine) GetBySymbol(symbol string) *models.Stock {
	return findStock(e.stocks, func(s models.Stock) bool { return strings.EqualFold(s.Symbol, symbol) })
}

func (e *InMemoryEngine) Sectors() []string {
	return sectorsOf(e.stocks)
}

// VisibleStocks returns the records matching text (case-insensitive substring of symbol
// or name) and sector, ordered by sortBy. The input slice is left untouched.
func VisibleStocks(records []models.Stock, text, sector string, sortBy SortKey) []models.Stock {
	needle := strings.ToLower(text)
	visible := lo.Filter(records, func(s models.Stock, _ int) bool {
		return matchesSector(s, sector) && matchesText(s, needle)
	})
	sortStocks(visible, sortBy)
	return visible
}

func matchesSector(s models.Stock, sector string) bool {
	return sector == "" || sector == AllSectors || s.Sector == sector
}

func matchesText(s models.Stock, needle string) bool {
	return strings.Contains(strings.ToLower(s.Symbol), needle) ||
		strings.Contains(strings.ToLower(s.Name), needle)
}

// sectorsOf lists AllSectors followed by each distinct sector in catalog order.
func sectorsOf(stocks []models.Stock) []string {
	sectors := lo.Uniq(lo.Map(stocks, func(s models.Stock, _ int) string { return s.Sector }))
	return append([]string{AllSectors}, sectors...)
}

func findStock(stocks []models.Stock, match func(models.Stock) bool) *models.Stock {
	stock, ok := lo.Find(stocks, match)
	if !ok {
		return nil
	}
	return &stock
}
