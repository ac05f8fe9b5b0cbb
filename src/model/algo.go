package model

import (
	"fmt"
	"strings"
)

type AlgoStatus string

const (
	AlgoStatusCreated AlgoStatus = "CREATED"
	AlgoStatusRunning AlgoStatus = "RUNNING"
	AlgoStatusStopped AlgoStatus = "STOPPED"
)

const AlgoSpreadCryptoEtf = "spread-crypto-etf"

type EtfDefinition struct {
	Symbol         string
	Underlying     string
	AmountPerShare float64
}

// Creation-unit composition per tradable ETF share.
var EtfUnderlyingAssets = map[string]EtfDefinition{
	"BITH11": {Symbol: "BITH11", Underlying: "BTCUSDT", AmountPerShare: 0.00009847},
	"ETHE11": {Symbol: "ETHE11", Underlying: "ETHUSDT", AmountPerShare: 0.00161803},
	"SOLH11": {Symbol: "SOLH11", Underlying: "SOLUSDT", AmountPerShare: 0.02491214},
}

type AlgoParameters struct {
	Broker          string  `json:"broker"`
	Account         string  `json:"account"`
	Symbol          string  `json:"symbol"`
	Side            string  `json:"side"`
	Quantity        float64 `json:"quantity"`
	SpreadThreshold float64 `json:"spread_threshold"`
}

func (p AlgoParameters) Validate() error {
	if p.Broker == "" {
		return NewMissingFieldError("broker")
	}

	if p.Account == "" {
		return NewMissingFieldError("account")
	}

	if p.Symbol == "" {
		return NewMissingFieldError("symbol")
	}

	if _, ok := EtfUnderlyingAssets[p.Symbol]; !ok {
		allowed := make([]string, 0, len(EtfUnderlyingAssets))
		for symbol := range EtfUnderlyingAssets {
			allowed = append(allowed, symbol)
		}

		return ValidationError{
			Field: "symbol",
			Message: fmt.Sprintf(
				"ETF is not tradable by this strategy, allowed symbols are: %s",
				strings.Join(allowed, ", "),
			),
		}
	}

	if p.Side == "" {
		return NewMissingFieldError("side")
	}

	if p.Side != OrderSideBuy && p.Side != OrderSideSell {
		return ValidationError{
			Field:   "side",
			Message: fmt.Sprintf("Invalid order side: '%s'", p.Side),
		}
	}

	if p.Quantity <= 0 {
		return NewMissingFieldError("quantity")
	}

	if p.SpreadThreshold <= 0 {
		return NewMissingFieldError("spread_threshold")
	}

	return nil
}

func (p AlgoParameters) Underlying() EtfDefinition {
	return EtfUnderlyingAssets[p.Symbol]
}

func (p AlgoParameters) HedgeSide() string {
	if p.Side == OrderSideSell {
		return OrderSideBuy
	}

	return OrderSideSell
}

type Algo struct {
	Id         string         `json:"id"`
	Name       string         `json:"name"`
	Parameters AlgoParameters `json:"parameters"`
	Status     AlgoStatus     `json:"status"`
}

// Resting limit order on the stock leg.
func (a *Algo) StockOrderRequest(price float64) OrderRequest {
	return OrderRequest{
		Broker:      a.Parameters.Broker,
		Account:     a.Parameters.Account,
		Symbol:      a.Parameters.Symbol,
		Side:        a.Parameters.Side,
		Quantity:    a.Parameters.Quantity,
		Price:       price,
		OrderType:   OrderTypeLimit,
		TimeInForce: TimeInForceDay,
	}
}

// Market order on the underlying asset, side inverted against the stock leg.
func (a *Algo) CryptoOrderRequest(quantity float64) OrderRequest {
	return OrderRequest{
		Symbol:    a.Parameters.Underlying().Underlying,
		Side:      a.Parameters.HedgeSide(),
		Quantity:  quantity,
		OrderType: OrderTypeMarket,
	}
}
