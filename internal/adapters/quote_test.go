package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/kpi-dashboard/internal/config"
)

// failTripper fails the test if any request goes out.
type failTripper struct{ t *testing.T }

func (f failTripper) RoundTrip(*http.Request) (*http.Response, error) {
	f.t.Fatal("unexpected network call")
	return nil, nil
}

func noNetworkClient(t *testing.T) *http.Client {
	return &http.Client{Transport: failTripper{t: t}}
}

func TestFetchQuote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		require.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		require.Equal(t, "k", r.URL.Query().Get("apikey"))
		w.Write([]byte(`{"Global Quote": {"05. price": "190.25", "09. change": "-1.50"}}`))
	}))
	defer srv.Close()

	q := NewQuoteClient(config.Config{AlphaVantageURL: srv.URL, AlphaVantageKey: "k"}, srv.Client())

	got, err := q.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "AAPL", got.Symbol)
	require.Equal(t, 190.25, got.Price)
	require.Equal(t, -1.50, got.Change)
	require.False(t, got.Timestamp.IsZero())
}

func TestFetchQuote_MissingKeyShortCircuits(t *testing.T) {
	q := NewQuoteClient(config.Config{AlphaVantageURL: "http://example.invalid"}, noNetworkClient(t))

	_, err := q.FetchQuote(context.Background(), "AAPL")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFetchQuote_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	q := NewQuoteClient(config.Config{AlphaVantageURL: srv.URL, AlphaVantageKey: "k"}, srv.Client())

	_, err := q.FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestFetchQuote_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer srv.Close()

	q := NewQuoteClient(config.Config{AlphaVantageURL: srv.URL, AlphaVantageKey: "k"}, srv.Client())

	_, err := q.FetchQuote(context.Background(), "UNKNOWN")
	require.ErrorIs(t, err, ErrNoData)
}

func chartBody(stamps string, closes string) string {
	return `{"chart":{"result":[{"timestamp":[` + stamps + `],"indicators":{"quote":[{"close":[` + closes + `]}]}}],"error":null}}`
}

func TestFetchQuoteChart_ChangeFromLastTwoCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2d", r.URL.Query().Get("range"))
		require.Equal(t, "1m", r.URL.Query().Get("interval"))
		w.Write([]byte(chartBody("1700000000,1700000060,1700000120", "100.0,null,102.5")))
	}))
	defer srv.Close()

	q := NewQuoteClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	got, err := q.FetchQuoteChart(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, 102.5, got.Price)
	require.Equal(t, 2.5, got.Change)
}

func TestFetchQuoteChart_SinglePointZeroChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody("1700000000", "100.0")))
	}))
	defer srv.Close()

	q := NewQuoteClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	got, err := q.FetchQuoteChart(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, 100.0, got.Price)
	require.Zero(t, got.Change)
}

func TestFetchQuoteChart_AllNullCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody("1700000000,1700000060", "null,null")))
	}))
	defer srv.Close()

	q := NewQuoteClient(config.Config{ChartBaseURL: srv.URL}, srv.Client())

	_, err := q.FetchQuoteChart(context.Background(), "AAPL")
	require.ErrorIs(t, err, ErrNoData)
}
