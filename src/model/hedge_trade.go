package model

const (
	HedgeTradeStatusSent   = "SENT"
	HedgeTradeStatusFailed = "FAILED"
)

// HedgeTrade is the reconciliation record of a single hedge attempt.
// The stock-leg accounting advances even when the hedge call fails, so
// the failed rows are the audit trail of unhedged executed quantity.
type HedgeTrade struct {
	Id        int64   `json:"id"`
	AlgoId    string  `json:"algo_id"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Quantity  float64 `json:"quantity"`
	OrderId   string  `json:"order_id"`
	Status    string  `json:"status"`
	Error     string  `json:"error"`
	CreatedAt string  `json:"created_at"`
}
