package models

import "time"

type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

type HistorySeries struct {
	Symbol     string      `json:"symbol"`
	Timestamps []time.Time `json:"timestamps"`
	Prices     []float64   `json:"prices"`
}

type CryptoPrice struct {
	Coin      string    `json:"coin"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// SocialProfile carries the resolved user id only. Engagement endpoints
// are not wired up; Note tells the dashboard as much.
type SocialProfile struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	Note     string `json:"note,omitempty"`
}

type Order struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Amount    float64   `json:"amount"`
}

// OrderPoint is the chart-friendly projection of an Order.
type OrderPoint struct {
	CreatedAt time.Time `json:"created_at"`
	Amount    float64   `json:"amount"`
}

type KpiSnapshot struct {
	TotalSales    float64 `json:"total_sales"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type PushReceipt struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
}
