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

// CryptoClient wraps the unauthenticated spot-price lookup.
type CryptoClient struct {
	client  *http.Client
	baseURL string
}

func NewCryptoClient(cfg config.Config, client *http.Client) *CryptoClient {
	return &CryptoClient{client: client, baseURL: cfg.CoinGeckoURL}
}

// FetchCryptoPrice looks up the USD spot price for a coin id. A response
// without a price for the coin is an error, same as every other adapter.
func (c *CryptoClient) FetchCryptoPrice(ctx context.Context, coinID string) (models.CryptoPrice, error) {
	u := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(coinID))

	var body map[string]map[string]float64
	if err := getJSON(ctx, c.client, u, nil, &body); err != nil {
		return models.CryptoPrice{}, err
	}

	price, ok := body[coinID]["usd"]
	if !ok {
		return models.CryptoPrice{}, fmt.Errorf("no usd price for coin %q: %w", coinID, ErrNoData)
	}

	return models.CryptoPrice{
		Coin:      coinID,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}, nil
}
