package model

// Flowa wire format. Field names follow the venue's PascalCase payloads,
// prices travel as strings.
type FlowaOrder struct {
	Broker      string  `json:"Broker"`
	Account     string  `json:"Account"`
	Symbol      string  `json:"Symbol"`
	Side        string  `json:"Side"`
	OrderType   string  `json:"OrderType"`
	TimeInForce string  `json:"TimeInForce"`
	Quantity    float64 `json:"Quantity"`
	Price       string  `json:"Price"`
}

type FlowaOrderUpdate struct {
	Price string `json:"Price"`
}

type FlowaOrderResponse struct {
	Success    bool   `json:"Success"`
	Error      string `json:"Error"`
	StrategyId string `json:"StrategyId"`
}

type FlowaOrderState struct {
	StrategyId       string  `json:"StrategyId"`
	Symbol           string  `json:"Symbol"`
	Side             string  `json:"Side"`
	Quantity         float64 `json:"Quantity"`
	Price            float64 `json:"Price"`
	OrderType        string  `json:"OrderType"`
	ExecutedQuantity float64 `json:"ExecutedQuantity"`
	TimeInForce      string  `json:"TimeInForce"`
	Status           string  `json:"Status"`
}

type FlowaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
