package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCreateLimitOrder(t *testing.T) {
	assertion := assert.New(t)

	order, err := NewOrder(OrderRequest{
		Broker:      "935",
		Account:     "84855",
		Symbol:      "BITH11",
		Side:        "BUY",
		Quantity:    100,
		Price:       45.50,
		OrderType:   "LIMIT",
		TimeInForce: "DAY",
	})

	assertion.Nil(err)
	assertion.Equal("BITH11", order.Symbol)
	assertion.Equal(45.50, order.Price)
	assertion.True(order.IsBrokered())
}

func TestCanCreateMarketOrderWithoutPrice(t *testing.T) {
	assertion := assert.New(t)

	order, err := NewOrder(OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      "SELL",
		Quantity:  0.031,
		OrderType: "MARKET",
	})

	assertion.Nil(err)
	assertion.Equal("MARKET", order.OrderType)
	assertion.False(order.IsBrokered())
}

func TestLimitOrderRequiresPositivePrice(t *testing.T) {
	assertion := assert.New(t)

	_, err := NewOrder(OrderRequest{
		Symbol:      "BITH11",
		Side:        "BUY",
		Quantity:    100,
		OrderType:   "LIMIT",
		TimeInForce: "DAY",
	})

	assertion.Error(err)
	validationError, ok := err.(ValidationError)
	assertion.True(ok)
	assertion.Equal("price", validationError.Field)
}

func TestLimitOrderRequiresTimeInForce(t *testing.T) {
	assertion := assert.New(t)

	_, err := NewOrder(OrderRequest{
		Symbol:    "BITH11",
		Side:      "BUY",
		Quantity:  100,
		Price:     45.50,
		OrderType: "LIMIT",
	})

	assertion.Error(err)
	validationError, ok := err.(ValidationError)
	assertion.True(ok)
	assertion.Equal("time_in_force", validationError.Field)
}

func TestOrderQuantityMustBePositive(t *testing.T) {
	assertion := assert.New(t)

	_, err := NewOrder(OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      "BUY",
		Quantity:  0,
		OrderType: "MARKET",
	})

	assertion.Error(err)
	validationError, ok := err.(ValidationError)
	assertion.True(ok)
	assertion.Equal("quantity", validationError.Field)
}

func TestOrderSideMustBeValid(t *testing.T) {
	assertion := assert.New(t)

	_, err := NewOrder(OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      "HOLD",
		Quantity:  1,
		OrderType: "MARKET",
	})

	assertion.Error(err)
	validationError, ok := err.(ValidationError)
	assertion.True(ok)
	assertion.Equal("side", validationError.Field)
}

func TestOrderTypeMustBeValid(t *testing.T) {
	assertion := assert.New(t)

	_, err := NewOrder(OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      "BUY",
		Quantity:  1,
		OrderType: "STOP",
	})

	assertion.Error(err)
	validationError, ok := err.(ValidationError)
	assertion.True(ok)
	assertion.Equal("order_type", validationError.Field)
}
