package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"pairScope/internal/model"
)

const (
	marketChartEndpoint = "coins/{id}/market_chart"
	contractEndpoint    = "coins/{platform}/contract/{address}"
	coinEndpoint        = "coins/{id}"
)

// MarketChart fetches price and volume history for a market id.
func (c *Client) MarketChart(ctx context.Context, marketID, vsCurrency string, days int) (*model.MarketChart, error) {
	path := fmt.Sprintf("coins/%s/market_chart", url.PathEscape(marketID))
	params := url.Values{
		"vs_currency": {vsCurrency},
		"days":        {strconv.Itoa(days)},
	}

	var resp marketChartResponse
	if err := c.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.Prices == nil {
		return nil, &model.DecodeError{Endpoint: marketChartEndpoint, Reason: "missing prices"}
	}
	if resp.TotalVolumes == nil {
		return nil, &model.DecodeError{Endpoint: marketChartEndpoint, Reason: "missing total_volumes"}
	}

	prices, err := chartPoints(*resp.Prices, "prices")
	if err != nil {
		return nil, err
	}
	volumes, err := chartPoints(*resp.TotalVolumes, "total_volumes")
	if err != nil {
		return nil, err
	}

	return &model.MarketChart{Prices: prices, Volumes: volumes}, nil
}

// CoinByContract looks up the coin whose contract on platform is address.
func (c *Client) CoinByContract(ctx context.Context, platform, address string) (*model.CoinInfo, error) {
	path := fmt.Sprintf("coins/%s/contract/%s", url.PathEscape(platform), url.PathEscape(address))

	var resp coinResponse
	if err := c.Get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return coinInfo(resp, contractEndpoint)
}

// Coin fetches metadata for a market id.
func (c *Client) Coin(ctx context.Context, marketID string) (*model.CoinInfo, error) {
	path := fmt.Sprintf("coins/%s", url.PathEscape(marketID))
	params := url.Values{
		"localization":   {"false"},
		"tickers":        {"false"},
		"market_data":    {"false"},
		"community_data": {"false"},
		"developer_data": {"false"},
	}

	var resp coinResponse
	if err := c.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return coinInfo(resp, coinEndpoint)
}

func coinInfo(resp coinResponse, endpoint string) (*model.CoinInfo, error) {
	if resp.ID == "" {
		return nil, &model.DecodeError{Endpoint: endpoint, Reason: "missing id"}
	}
	if resp.Symbol == "" {
		return nil, &model.DecodeError{Endpoint: endpoint, Reason: "missing symbol"}
	}
	platforms := resp.Platforms
	if platforms == nil {
		platforms = map[string]string{}
	}
	return &model.CoinInfo{ID: resp.ID, Symbol: resp.Symbol, Platforms: platforms}, nil
}

func chartPoints(raw [][]float64, field string) ([]model.ChartPoint, error) {
	points := make([]model.ChartPoint, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, &model.DecodeError{
				Endpoint: marketChartEndpoint,
				Reason:   fmt.Sprintf("%s[%d] has %d elements, want 2", field, i, len(pair)),
			}
		}
		if math.IsNaN(pair[0]) || math.IsInf(pair[0], 0) || math.IsNaN(pair[1]) || math.IsInf(pair[1], 0) {
			return nil, &model.DecodeError{
				Endpoint: marketChartEndpoint,
				Reason:   fmt.Sprintf("%s[%d] is not finite", field, i),
			}
		}
		points = append(points, model.ChartPoint{TimestampMs: int64(pair[0]), Value: pair[1]})
	}
	return points, nil
}
