package model

type BinanceFuturesOrder struct {
	OrderId     int64  `json:"orderId"`
	Symbol      string `json:"symbol"`
	Status      string `json:"status"`
	Price       string `json:"price"`
	OrigQty     string `json:"origQty"`
	ExecutedQty string `json:"executedQty"`
	TimeInForce string `json:"timeInForce"`
	Type        string `json:"type"`
	Side        string `json:"side"`
}

type BinanceFuturesError struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}
