package search

import (
	"fmt"
	"regexp"
	"strings"

	"investpro/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/rs/zerolog"
)

// lowerKeyword indexes a whole field as one lowercased term so regexp queries can do
// substring matching on it.
const lowerKeyword = "lower_keyword"

// BleveEngine answers the same queries as InMemoryEngine from a memory-only bleve index.
// Matching happens in the index; ordering uses the shared sorter.
type BleveEngine struct {
	index  bleve.Index
	stocks []models.Stock
	byID   map[string]int
	log    zerolog.Logger
}

func NewBleveEngine(stocks []models.Stock, log zerolog.Logger) (*BleveEngine, error) {
	indexMapping, err := buildIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to build index mapping: %w", err)
	}
	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	e := &BleveEngine{
		index:  index,
		stocks: append([]models.Stock(nil), stocks...),
		byID:   make(map[string]int, len(stocks)),
		log:    log,
	}

	batch := index.NewBatch()
	for i, stock := range e.stocks {
		e.byID[stock.ID] = i
		doc := map[string]interface{}{
			"symbol": stock.Symbol,
			"name":   stock.Name,
			"sector": stock.Sector,
		}
		if err := batch.Index(stock.ID, doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to add %s to batch: %w", stock.Symbol, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}
	log.Debug().Int("stocks", len(e.stocks)).Msg("bleve index built")

	return e, nil
}

func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()
	err := indexMapping.AddCustomAnalyzer(lowerKeyword, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	stockMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = lowerKeyword
	textFieldMapping.Store = false
	stockMapping.AddFieldMappingsAt("symbol", textFieldMapping)
	stockMapping.AddFieldMappingsAt("name", textFieldMapping)

	// Sector filtering is exact, so the term is indexed as written.
	sectorFieldMapping := bleve.NewKeywordFieldMapping()
	sectorFieldMapping.Store = false
	stockMapping.AddFieldMappingsAt("sector", sectorFieldMapping)

	indexMapping.DefaultMapping = stockMapping
	return indexMapping, nil
}

func (e *BleveEngine) Search(q Query) []models.Stock {
	request := bleve.NewSearchRequest(buildQuery(q))
	request.Size = len(e.stocks)

	results, err := e.index.Search(request)
	if err != nil {
		e.log.Error().Err(err).Str("text", q.Text).Str("sector", q.Sector).Msg("search failed")
		return []models.Stock{}
	}

	hits := make(map[int]struct{}, len(results.Hits))
	for _, hit := range results.Hits {
		if i, ok := e.byID[hit.ID]; ok {
			hits[i] = struct{}{}
		}
	}

	// Collect in catalog order so the stable sort keeps ties where VisibleStocks does.
	visible := make([]models.Stock, 0, len(hits))
	for i, stock := range e.stocks {
		if _, ok := hits[i]; ok {
			visible = append(visible, stock)
		}
	}
	sortStocks(visible, q.SortBy)
	return visible
}

func buildQuery(q Query) query.Query {
	var clauses []query.Query

	if q.Text != "" {
		pattern := ".*" + regexp.QuoteMeta(strings.ToLower(q.Text)) + ".*"
		symbolQuery := bleve.NewRegexpQuery(pattern)
		symbolQuery.SetField("symbol")
		nameQuery := bleve.NewRegexpQuery(pattern)
		nameQuery.SetField("name")
		clauses = append(clauses, bleve.NewDisjunctionQuery(symbolQuery, nameQuery))
	}

	if q.Sector != "" && q.Sector != AllSectors {
		sectorQuery := bleve.NewTermQuery(q.Sector)
		sectorQuery.SetField("sector")
		clauses = append(clauses, sectorQuery)
	}

	if len(clauses) == 0 {
		return bleve.NewMatchAllQuery()
	}
	return bleve.NewConjunctionQuery(clauses...)
}

func (e *BleveEngine) GetByID(id string) *models.Stock {
	i, ok := e.byID[id]
	if !ok {
		return nil
	}
	stock := e.stocks[i]
	return &stock
}

func (e *BleveEngine) GetBySymbol(symbol string) *models.Stock {
	return findStock(e.stocks, func(s models.Stock) bool { return strings.EqualFold(s.Symbol, symbol) })
}

func (e *BleveEngine) Sectors() []string {
	return sectorsOf(e.stocks)
}

func (e *BleveEngine) Close() error {
	return e.index.Close()
}
