package coingecko

// marketChartResponse is the body of GET /coins/{id}/market_chart.
//
//	{
//	  "prices": [[1704067200000, 3456.78], [1704070800000, 3460.12]],
//	  "market_caps": [[1704067200000, 415123456789], ...],
//	  "total_volumes": [[1704067200000, 12345678901], ...]
//	}
//
// Pointers distinguish an absent array from an empty one.
type marketChartResponse struct {
	Prices       *[][]float64 `json:"prices"`
	TotalVolumes *[][]float64 `json:"total_volumes"`
}

// coinResponse is the subset of GET /coins/{id} and
// GET /coins/{platform}/contract/{address} that is read.
type coinResponse struct {
	ID        string            `json:"id"`
	Symbol    string            `json:"symbol"`
	Platforms map[string]string `json:"platforms"`
}

// apiError covers both error envelopes the API uses:
// {"error": "coin not found"} and {"status": {"error_message": "..."}}.
type apiError struct {
	Error  string `json:"error"`
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}
