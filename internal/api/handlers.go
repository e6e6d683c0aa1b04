package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/kpi-dashboard/internal/adapters"
	"github.com/example/kpi-dashboard/internal/cache"
	"github.com/example/kpi-dashboard/internal/domain"
	"github.com/example/kpi-dashboard/internal/models"
	"github.com/example/kpi-dashboard/internal/orders"
	"github.com/example/kpi-dashboard/internal/sink"
)

type Server struct {
	R          *gin.Engine
	Quotes     *adapters.QuoteClient
	History    *adapters.HistoryClient
	Crypto     *adapters.CryptoClient
	Social     *adapters.SocialClient
	Aggregator *orders.Aggregator
	Pusher     *sink.Pusher
	Cache      *cache.Cache
	Logger     *zap.Logger
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// inlineError is the uniform failure shape every panel renders in place.
// Adapter and sink failures are data, not transport failures, so they go
// out with a 200.
type inlineError struct {
	Error string `json:"error"`
}

// NewServer wires the router, adapters, aggregator, cache, and middleware.
func NewServer(quotes *adapters.QuoteClient, history *adapters.HistoryClient,
	crypto *adapters.CryptoClient, social *adapters.SocialClient,
	aggregator *orders.Aggregator, pusher *sink.Pusher, c *cache.Cache,
	logger *zap.Logger, corsOrigin string) *Server {

	g := gin.New()

	// Request id
	g.Use(func(cn *gin.Context) {
		id := cn.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		cn.Writer.Header().Set("X-Request-ID", id)
		cn.Next()
	})

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info("http_request",
			zap.String("method", cn.Request.Method),
			zap.String("path", cn.Request.URL.Path),
			zap.Int("status", cn.Writer.Status()),
			zap.String("ip", cn.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	g.Use(gin.Recovery())

	// CORS
	g.Use(func(cn *gin.Context) {
		origin := cn.GetHeader("Origin")
		cn.Writer.Header().Set("Vary", "Origin")
		cn.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		cn.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		cn.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if corsOrigin == "*" {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && origin == corsOrigin {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		}
		if cn.Request.Method == http.MethodOptions {
			cn.AbortWithStatus(http.StatusNoContent)
			return
		}
		cn.Next()
	})

	s := &Server{
		R:          g,
		Quotes:     quotes,
		History:    history,
		Crypto:     crypto,
		Social:     social,
		Aggregator: aggregator,
		Pusher:     pusher,
		Cache:      c,
		Logger:     logger,
	}

	g.GET("/health", func(cn *gin.Context) { cn.JSON(http.StatusOK, gin.H{"ok": true}) })
	g.GET("/api/quote", s.getQuote)
	g.GET("/api/history", s.getHistory)
	g.GET("/api/crypto", s.getCrypto)
	g.GET("/api/social", s.getSocial)
	g.GET("/api/kpis", s.getKPIs)
	g.GET("/api/orders", s.getOrders)
	g.POST("/api/push", s.pushKPIs)

	return s
}

// --- Helpers ---

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, apiError{Code: "bad_request", Message: msg})
}

func (s *Server) internalError(c *gin.Context, where string, err error) {
	s.Logger.Error("internal_error", zap.String("where", where), zap.Error(err))
	c.JSON(http.StatusInternalServerError, apiError{Code: "internal_server_error", Message: "internal server error"})
}

// inline reports an upstream/configuration failure as panel data.
func (s *Server) inline(c *gin.Context, where string, err error) {
	s.Logger.Warn("panel_error", zap.String("where", where), zap.Error(err))
	c.JSON(http.StatusOK, inlineError{Error: err.Error()})
}

func queryOr(c *gin.Context, key, def string) string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return v
	}
	return def
}

func parseWindow(v string, def, min, max int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return def
	}
	return n
}

// --- Handlers ---

func (s *Server) getQuote(c *gin.Context) {
	symbol := queryOr(c, "symbol", "AAPL")
	source, ok := domain.ParseQuoteSource(c.Query("source"))
	if !ok {
		s.badRequest(c, "invalid source (use 'alpha_vantage' or 'chart')")
		return
	}

	key := cache.QuoteKey(source, symbol)
	if v, ok := s.Cache.Get(key); ok {
		c.JSON(http.StatusOK, v)
		return
	}

	var (
		q   models.Quote
		err error
	)
	if source == domain.SourceChart {
		q, err = s.Quotes.FetchQuoteChart(c.Request.Context(), symbol)
	} else {
		q, err = s.Quotes.FetchQuote(c.Request.Context(), symbol)
	}
	if err != nil {
		s.inline(c, "FetchQuote", err)
		return
	}

	s.Cache.Set(key, q)
	c.JSON(http.StatusOK, q)
}

func (s *Server) getHistory(c *gin.Context) {
	symbol := queryOr(c, "symbol", "AAPL")
	period := queryOr(c, "period", "7d")
	interval := queryOr(c, "interval", "1h")

	key := cache.HistoryKey(symbol, period, interval)
	if v, ok := s.Cache.Get(key); ok {
		c.JSON(http.StatusOK, v)
		return
	}

	h, err := s.History.FetchHistory(c.Request.Context(), symbol, period, interval)
	if err != nil {
		s.inline(c, "FetchHistory", err)
		return
	}

	s.Cache.Set(key, h)
	c.JSON(http.StatusOK, h)
}

func (s *Server) getCrypto(c *gin.Context) {
	coin := queryOr(c, "coin", "bitcoin")

	key := cache.CryptoKey(coin)
	if v, ok := s.Cache.Get(key); ok {
		c.JSON(http.StatusOK, v)
		return
	}

	p, err := s.Crypto.FetchCryptoPrice(c.Request.Context(), coin)
	if err != nil {
		s.inline(c, "FetchCryptoPrice", err)
		return
	}

	s.Cache.Set(key, p)
	c.JSON(http.StatusOK, p)
}

func (s *Server) getSocial(c *gin.Context) {
	username := queryOr(c, "username", "twitter")

	key := cache.SocialKey(username)
	if v, ok := s.Cache.Get(key); ok {
		c.JSON(http.StatusOK, v)
		return
	}

	p, err := s.Social.FetchSocialProfile(c.Request.Context(), username)
	if err != nil {
		s.inline(c, "FetchSocialProfile", err)
		return
	}

	s.Cache.Set(key, p)
	c.JSON(http.StatusOK, p)
}

func (s *Server) getKPIs(c *gin.Context) {
	window := parseWindow(c.Query("window"), 60, 1, 7*24*60)

	snap, err := s.Aggregator.WindowedKPIs(c.Request.Context(), window)
	if err != nil {
		s.internalError(c, "WindowedKPIs", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) getOrders(c *gin.Context) {
	window := parseWindow(c.Query("window"), 24, 1, 7*24)

	points, err := s.Aggregator.OrdersInWindow(c.Request.Context(), window)
	if err != nil {
		s.internalError(c, "OrdersInWindow", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": points})
}

type pushRequest struct {
	Destination string `json:"destination"`
}

type pushRow struct {
	Timestamp time.Time `json:"timestamp"`
	models.KpiSnapshot
}

// pushKPIs is the manual trigger: it pushes the current 60-minute snapshot
// to the sink, to the explicit destination if one is in the body.
func (s *Server) pushKPIs(c *gin.Context) {
	var req pushRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.badRequest(c, "invalid JSON body")
			return
		}
	}

	snap, err := s.Aggregator.WindowedKPIs(c.Request.Context(), 60)
	if err != nil {
		s.internalError(c, "WindowedKPIs", err)
		return
	}

	payload := []pushRow{{Timestamp: time.Now().UTC(), KpiSnapshot: snap}}
	receipt, err := s.Pusher.Push(c.Request.Context(), payload, req.Destination)
	if err != nil {
		s.inline(c, "Push", err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
