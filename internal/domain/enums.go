package domain

import "strings"

// QuoteSource selects which upstream strategy the quote adapter uses.
type QuoteSource string

const (
	// SourceAlphaVantage is the keyed single-quote lookup.
	SourceAlphaVantage QuoteSource = "alpha_vantage"
	// SourceChart is the keyless minute-bars lookup; change is derived
	// from the last two closes.
	SourceChart QuoteSource = "chart"
)

func (s QuoteSource) String() string { return string(s) }
func (s QuoteSource) Valid() bool {
	switch s {
	case SourceAlphaVantage, SourceChart:
		return true
	default:
		return false
	}
}

func ParseQuoteSource(s string) (QuoteSource, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alpha_vantage", "alpha":
		return SourceAlphaVantage, true
	case "chart", "keyless":
		return SourceChart, true
	default:
		return "", false
	}
}
