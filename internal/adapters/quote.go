package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/kpi-dashboard/internal/config"
	"github.com/example/kpi-dashboard/internal/models"
)

var (
	// ErrMissingAPIKey is returned before any network attempt when the
	// keyed quote source has no credential configured.
	ErrMissingAPIKey = errors.New("missing ALPHAVANTAGE_API_KEY")
	// ErrNoData covers upstream responses that are well-formed but empty.
	ErrNoData = errors.New("no data")
)

// QuoteClient wraps the two interchangeable quote strategies: the keyed
// Alpha Vantage GLOBAL_QUOTE lookup and the keyless minute-chart lookup.
type QuoteClient struct {
	client   *http.Client
	alphaURL string
	chartURL string
	apiKey   string
}

func NewQuoteClient(cfg config.Config, client *http.Client) *QuoteClient {
	return &QuoteClient{
		client:   client,
		alphaURL: cfg.AlphaVantageURL,
		chartURL: cfg.ChartBaseURL,
		apiKey:   cfg.AlphaVantageKey,
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Price  string `json:"05. price"`
		Change string `json:"09. change"`
	} `json:"Global Quote"`
}

// FetchQuote is the keyed strategy. The symbol is forwarded as-is; an
// unknown symbol comes back as an empty Global Quote object upstream.
func (q *QuoteClient) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	if q.apiKey == "" {
		return models.Quote{}, ErrMissingAPIKey
	}

	u := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		q.alphaURL, url.QueryEscape(symbol), url.QueryEscape(q.apiKey))

	var body globalQuoteResponse
	if err := getJSON(ctx, q.client, u, nil, &body); err != nil {
		return models.Quote{}, err
	}
	if body.GlobalQuote.Price == "" {
		return models.Quote{}, fmt.Errorf("quote for %q: %w", symbol, ErrNoData)
	}

	price, err := strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil {
		return models.Quote{}, fmt.Errorf("parse price %q: %w", body.GlobalQuote.Price, err)
	}
	change := 0.0
	if body.GlobalQuote.Change != "" {
		if change, err = strconv.ParseFloat(body.GlobalQuote.Change, 64); err != nil {
			return models.Quote{}, fmt.Errorf("parse change %q: %w", body.GlobalQuote.Change, err)
		}
	}

	return models.Quote{
		Symbol:    symbol,
		Price:     price,
		Change:    change,
		Timestamp: time.Now().UTC(),
	}, nil
}

// FetchQuoteChart is the keyless strategy: two days of minute bars, change
// computed as latest close minus the one before it. A series with a single
// point reports zero change.
func (q *QuoteClient) FetchQuoteChart(ctx context.Context, symbol string) (models.Quote, error) {
	closes, _, err := fetchChart(ctx, q.client, q.chartURL, symbol, "2d", "1m")
	if err != nil {
		return models.Quote{}, err
	}

	latest := closes[len(closes)-1]
	prev := latest
	if len(closes) > 1 {
		prev = closes[len(closes)-2]
	}

	return models.Quote{
		Symbol:    symbol,
		Price:     latest,
		Change:    round(latest-prev, 4),
		Timestamp: time.Now().UTC(),
	}, nil
}
