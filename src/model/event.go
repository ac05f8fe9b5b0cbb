package model

// InavUpdate is published on channel "inav-{symbol}" and cached
// under key "inav:{symbol}" as the latest snapshot.
type InavUpdate struct {
	Symbol                  string  `json:"symbol"`
	Inav                    float64 `json:"inav"`
	AmountOfUnderlyingAsset float64 `json:"amount_of_underlying_asset"`
}

// OrderUpdate is published on channel "order-{orderId}" with the
// venue-reported cumulative executed quantity.
type OrderUpdate struct {
	OrderId     string  `json:"order_id"`
	ExecutedQty float64 `json:"exec_qty"`
	Status      string  `json:"status"`
}
