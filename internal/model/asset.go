package model

// AssetIdentity ties a contract address on a chain to the provider's market
// identifier. It is created at resolution time and never modified.
type AssetIdentity struct {
	Chain    string `json:"chain"`
	Address  string `json:"address"`
	MarketID string `json:"market_id"`
	Symbol   string `json:"symbol"`
}

// CoinInfo is the provider's metadata record for one market identifier.
// Platforms maps provider platform keys to contract addresses.
type CoinInfo struct {
	ID        string
	Symbol    string
	Platforms map[string]string
}

// ChartPoint is one [timestamp, value] sample of a provider chart.
type ChartPoint struct {
	TimestampMs int64
	Value       float64
}

// MarketChart carries the provider's separate price and volume arrays.
type MarketChart struct {
	Prices  []ChartPoint
	Volumes []ChartPoint
}
