package model

import "fmt"

const (
	OrderSideBuy  = "BUY"
	OrderSideSell = "SELL"

	OrderTypeLimit  = "LIMIT"
	OrderTypeMarket = "MARKET"

	TimeInForceDay = "DAY"
	TimeInForceGtc = "GTC"
)

type OrderRequest struct {
	Broker      string  `json:"broker,omitempty"`
	Account     string  `json:"account,omitempty"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price,omitempty"`
	OrderType   string  `json:"order_type"`
	TimeInForce string  `json:"time_in_force,omitempty"`
}

// Order is a validated order request. Construct through NewOrder only,
// a constructed Order is always well-formed.
type Order struct {
	Broker      string  `json:"broker,omitempty"`
	Account     string  `json:"account,omitempty"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price,omitempty"`
	OrderType   string  `json:"order_type"`
	TimeInForce string  `json:"time_in_force,omitempty"`
}

func NewOrder(request OrderRequest) (Order, error) {
	if request.Symbol == "" {
		return Order{}, NewMissingFieldError("symbol")
	}

	if request.Side != OrderSideBuy && request.Side != OrderSideSell {
		return Order{}, ValidationError{
			Field:   "side",
			Message: fmt.Sprintf("Invalid order side: '%s'", request.Side),
		}
	}

	if request.Quantity <= 0 {
		return Order{}, ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("Order quantity must be positive, got %f", request.Quantity),
		}
	}

	switch request.OrderType {
	case OrderTypeLimit:
		if request.Price <= 0 {
			return Order{}, ValidationError{
				Field:   "price",
				Message: fmt.Sprintf("LIMIT order requires a positive price, got %f", request.Price),
			}
		}

		if request.TimeInForce == "" {
			return Order{}, NewMissingFieldError("time_in_force")
		}
	case OrderTypeMarket:
	default:
		return Order{}, ValidationError{
			Field:   "order_type",
			Message: fmt.Sprintf("Invalid order type: '%s'", request.OrderType),
		}
	}

	return Order{
		Broker:      request.Broker,
		Account:     request.Account,
		Symbol:      request.Symbol,
		Side:        request.Side,
		Quantity:    request.Quantity,
		Price:       request.Price,
		OrderType:   request.OrderType,
		TimeInForce: request.TimeInForce,
	}, nil
}

func (o Order) IsBrokered() bool {
	return o.Broker != "" || o.Account != ""
}

type OrderSnapshot struct {
	OrderId     string  `json:"order_id"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	OrderType   string  `json:"order_type"`
	ExecutedQty float64 `json:"exec_qty"`
	TimeInForce string  `json:"time_in_force"`
	Status      string  `json:"status"`
}
