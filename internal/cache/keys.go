package cache

import (
	"fmt"
	"strings"

	"github.com/example/kpi-dashboard/internal/domain"
)

// Key helpers for the per-panel upstream caches. Symbols and usernames are
// folded to one case so "aapl" and "AAPL" share an entry.

func QuoteKey(source domain.QuoteSource, symbol string) string {
	return fmt.Sprintf("quote:%s:%s", source, strings.ToUpper(symbol))
}

func HistoryKey(symbol, period, interval string) string {
	return fmt.Sprintf("history:%s:%s:%s", strings.ToUpper(symbol), period, interval)
}

func CryptoKey(coinID string) string {
	return "crypto:" + strings.ToLower(coinID)
}

func SocialKey(username string) string {
	return "social:" + strings.ToLower(username)
}
