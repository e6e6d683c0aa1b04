package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/example/kpi-dashboard/internal/config"
	"github.com/example/kpi-dashboard/internal/models"
)

// HistoryClient wraps the keyless chart endpoint for time-series queries.
type HistoryClient struct {
	client  *http.Client
	baseURL string
}

func NewHistoryClient(cfg config.Config, client *http.Client) *HistoryClient {
	return &HistoryClient{client: client, baseURL: cfg.ChartBaseURL}
}

// FetchHistory forwards period and interval verbatim to the upstream
// windowing syntax. Null closes are dropped before pairing, so timestamps
// and prices always come back equal length.
func (h *HistoryClient) FetchHistory(ctx context.Context, symbol, period, interval string) (models.HistorySeries, error) {
	closes, stamps, err := fetchChart(ctx, h.client, h.baseURL, symbol, period, interval)
	if err != nil {
		return models.HistorySeries{}, err
	}
	return models.HistorySeries{
		Symbol:     symbol,
		Timestamps: stamps,
		Prices:     closes,
	}, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// fetchChart queries the chart endpoint and returns non-null closes paired
// with their timestamps, ascending as delivered upstream.
func fetchChart(ctx context.Context, client *http.Client, baseURL, symbol, period, interval string) ([]float64, []time.Time, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		baseURL, url.PathEscape(symbol), url.QueryEscape(period), url.QueryEscape(interval))

	var body chartResponse
	if err := getJSON(ctx, client, u, nil, &body); err != nil {
		return nil, nil, err
	}
	if body.Chart.Error != nil {
		return nil, nil, fmt.Errorf("chart %s: %s (%s)", symbol, body.Chart.Error.Description, body.Chart.Error.Code)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil, fmt.Errorf("chart %s: %w", symbol, ErrNoData)
	}

	res := body.Chart.Result[0]
	raw := res.Indicators.Quote[0].Close

	closes := make([]float64, 0, len(raw))
	stamps := make([]time.Time, 0, len(raw))
	for i, c := range raw {
		if c == nil || i >= len(res.Timestamp) {
			continue
		}
		closes = append(closes, *c)
		stamps = append(stamps, time.Unix(res.Timestamp[i], 0).UTC())
	}
	if len(closes) == 0 {
		return nil, nil, fmt.Errorf("chart %s: %w", symbol, ErrNoData)
	}
	return closes, stamps, nil
}
