package loader

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"investpro/chat"
	"investpro/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/stocks.csv data/market.json data/chat.yaml
var defaults embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// stockColumns is the expected CSV header, in order.
var stockColumns = []string{
	"ID", "Symbol", "Name", "Price", "Change", "ChangePercent", "Volume",
	"MarketCap", "Sector", "Recommendation", "SuggestedInvestment", "RiskLevel", "AnalystRating",
}

const maxAnalystRating = 5.0

func LoadStocks(filePath string) ([]models.Stock, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseStocks(f)
}

// DefaultStocks returns the seeded catalog shipped with the binary.
func DefaultStocks() ([]models.Stock, error) {
	raw, err := defaults.ReadFile("data/stocks.csv")
	if err != nil {
		return nil, err
	}
	return ParseStocks(bytes.NewReader(raw))
}

// ParseStocks reads a catalog CSV. The header row is required and every record must be
// complete; the catalog is static configuration, so a bad row fails the whole load.
func ParseStocks(r io.Reader) ([]models.Stock, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(stockColumns)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	if !strings.EqualFold(records[0][0], stockColumns[0]) {
		return nil, fmt.Errorf("missing header row, want %s", strings.Join(stockColumns, ","))
	}

	seen := make(map[string]struct{}, len(records)-1)
	stocks := make([]models.Stock, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		stock, err := parseStock(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := seen[stock.ID]; dup {
			return nil, fmt.Errorf("line %d: duplicate id %q", line, stock.ID)
		}
		seen[stock.ID] = struct{}{}
		stocks = append(stocks, stock)
	}

	return stocks, nil
}

func parseStock(record []string) (models.Stock, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	var (
		stock models.Stock
		err   error
	)
	stock.ID = record[0]
	stock.Symbol = record[1]
	stock.Name = record[2]
	if stock.ID == "" || stock.Symbol == "" {
		return stock, fmt.Errorf("id and symbol are required")
	}

	if stock.Price, err = decimal.NewFromString(record[3]); err != nil {
		return stock, fmt.Errorf("price: %w", err)
	}
	if stock.Change, err = decimal.NewFromString(record[4]); err != nil {
		return stock, fmt.Errorf("change: %w", err)
	}
	if stock.ChangePercent, err = decimal.NewFromString(record[5]); err != nil {
		return stock, fmt.Errorf("change percent: %w", err)
	}
	stock.Volume = record[6]
	stock.MarketCap = record[7]
	stock.Sector = record[8]
	if stock.Recommendation, err = models.ParseRecommendation(record[9]); err != nil {
		return stock, err
	}
	if stock.SuggestedInvestment, err = decimal.NewFromString(record[10]); err != nil {
		return stock, fmt.Errorf("suggested investment: %w", err)
	}
	if stock.RiskLevel, err = models.ParseRiskLevel(record[11]); err != nil {
		return stock, err
	}
	if stock.AnalystRating, err = strconv.ParseFloat(record[12], 64); err != nil {
		return stock, fmt.Errorf("analyst rating: %w", err)
	}
	if stock.AnalystRating < 0 || stock.AnalystRating > maxAnalystRating {
		return stock, fmt.Errorf("analyst rating %.1f out of range 0-%.0f", stock.AnalystRating, maxAnalystRating)
	}

	return stock, nil
}

func LoadMarketOverview(filePath string) (models.MarketOverview, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return models.MarketOverview{}, err
	}
	return parseMarketOverview(raw)
}

func DefaultMarketOverview() (models.MarketOverview, error) {
	raw, err := defaults.ReadFile("data/market.json")
	if err != nil {
		return models.MarketOverview{}, err
	}
	return parseMarketOverview(raw)
}

func parseMarketOverview(raw []byte) (models.MarketOverview, error) {
	var overview models.MarketOverview
	if err := json.Unmarshal(raw, &overview); err != nil {
		return models.MarketOverview{}, fmt.Errorf("failed to decode market overview: %w", err)
	}
	return overview, nil
}

func LoadChatScript(filePath string) (chat.Script, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return chat.Script{}, err
	}
	return parseChatScript(raw)
}

func DefaultChatScript() (chat.Script, error) {
	raw, err := defaults.ReadFile("data/chat.yaml")
	if err != nil {
		return chat.Script{}, err
	}
	return parseChatScript(raw)
}

func parseChatScript(raw []byte) (chat.Script, error) {
	var script chat.Script
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return chat.Script{}, fmt.Errorf("failed to decode chat script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return chat.Script{}, err
	}
	return script, nil
}
