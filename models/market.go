package models

type MarketIndex struct {
	Name          string `json:"name"`
	Value         string `json:"value"`
	Change        string `json:"change"`
	ChangePercent string `json:"changePercent"`
	IsPositive    bool   `json:"isPositive"`
}

type MarketStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type MarketOverview struct {
	Indices []MarketIndex `json:"indices"`
	Stats   []MarketStat  `json:"stats"`
	Summary string        `json:"summary"`
}
