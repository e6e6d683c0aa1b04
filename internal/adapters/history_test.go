package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/kpi-dashboard/internal/config"
)

func TestFetchHistory_DropsNullsKeepsPairing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7d", r.URL.Query().Get("range"))
		require.Equal(t, "1h", r.URL.Query().Get("interval"))
		w.Write([]byte(chartBody(
			"1700000000,1700003600,1700007200,1700010800",
			"100.0,null,101.5,103.0",
		)))
	}))
	defer srv.Close()

	h := NewHistoryClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	got, err := h.FetchHistory(context.Background(), "AAPL", "7d", "1h")
	require.NoError(t, err)
	require.Equal(t, "AAPL", got.Symbol)
	require.Len(t, got.Prices, 3)
	require.Len(t, got.Timestamps, 3)

	// The null close and its timestamp both dropped; pairing intact.
	require.Equal(t, []float64{100.0, 101.5, 103.0}, got.Prices)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), got.Timestamps[0])
	require.Equal(t, time.Unix(1700007200, 0).UTC(), got.Timestamps[1])
	require.True(t, got.Timestamps[0].Before(got.Timestamps[1]))
}

func TestFetchHistory_EmptyAfterNullRemoval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody("1700000000", "null")))
	}))
	defer srv.Close()

	h := NewHistoryClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	_, err := h.FetchHistory(context.Background(), "AAPL", "7d", "1h")
	require.ErrorIs(t, err, ErrNoData)
}

func TestFetchHistory_UpstreamChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	h := NewHistoryClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	_, err := h.FetchHistory(context.Background(), "NOPE", "7d", "1h")
	require.Error(t, err)
	require.Contains(t, err.Error(), "No data found")
}

func TestFetchHistory_SourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h := NewHistoryClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	_, err := h.FetchHistory(context.Background(), "AAPL", "7d", "1h")
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}
