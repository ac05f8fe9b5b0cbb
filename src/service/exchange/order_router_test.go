package exchange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
)

type OrderAdapterMock struct {
	mock.Mock
}

func (m *OrderAdapterMock) SendOrder(order model.Order) (string, error) {
	args := m.Called(order)

	return args.String(0), args.Error(1)
}

func (m *OrderAdapterMock) GetOrder(orderId string) (model.OrderSnapshot, error) {
	args := m.Called(orderId)

	return args.Get(0).(model.OrderSnapshot), args.Error(1)
}

func (m *OrderAdapterMock) UpdateOrder(orderId string, price float64) error {
	args := m.Called(orderId, price)

	return args.Error(0)
}

func (m *OrderAdapterMock) CancelOrder(orderId string) error {
	args := m.Called(orderId)

	return args.Error(0)
}

type OrderStorageMock struct {
	mock.Mock
}

func (m *OrderStorageMock) Create(venue string, strategy string, orderId string, order model.Order) (*int64, error) {
	args := m.Called(venue, strategy, orderId, order)

	return args.Get(0).(*int64), args.Error(1)
}

func validOrderRequest() model.OrderRequest {
	return model.OrderRequest{
		Broker:      "935",
		Account:     "84855",
		Symbol:      "BITH11",
		Side:        "BUY",
		Quantity:    100,
		Price:       45.50,
		OrderType:   "LIMIT",
		TimeInForce: "DAY",
	}
}

func TestRouterDispatchesToRegisteredAdapter(t *testing.T) {
	assertion := assert.New(t)

	adapter := new(OrderAdapterMock)
	storage := new(OrderStorageMock)
	router := OrderRouter{
		Adapters: map[AdapterKey]OrderAdapterInterface{
			{Venue: VenueFlowa, Strategy: StrategySimpleOrder}: adapter,
		},
		OrderStorage: storage,
	}

	adapter.On("SendOrder", mock.Anything).Return("strategy-id-1", nil)
	primaryKey := int64(1)
	storage.On("Create", VenueFlowa, StrategySimpleOrder, "strategy-id-1", mock.Anything).Return(&primaryKey, nil)

	orderId, err := router.Send(VenueFlowa, StrategySimpleOrder, validOrderRequest())

	assertion.Nil(err)
	assertion.Equal("strategy-id-1", orderId)

	sentOrder := adapter.Calls[0].Arguments.Get(0).(model.Order)
	assertion.Equal("BITH11", sentOrder.Symbol)
	assertion.Equal(45.50, sentOrder.Price)

	storage.AssertNumberOfCalls(t, "Create", 1)
}

func TestRouterRejectsUnknownAdapterPair(t *testing.T) {
	assertion := assert.New(t)

	router := OrderRouter{
		Adapters: map[AdapterKey]OrderAdapterInterface{},
	}

	_, err := router.Send(VenueBinance, StrategyFutures, validOrderRequest())

	assertion.Error(err)

	var unknownAdapterError UnknownAdapterError
	assertion.True(errors.As(err, &unknownAdapterError))
	assertion.Equal("Unsupported exchange adapter: binance/futures", err.Error())
}

func TestRouterRejectsInvalidOrderBeforeDispatch(t *testing.T) {
	assertion := assert.New(t)

	adapter := new(OrderAdapterMock)
	router := OrderRouter{
		Adapters: map[AdapterKey]OrderAdapterInterface{
			{Venue: VenueFlowa, Strategy: StrategySimpleOrder}: adapter,
		},
	}

	request := validOrderRequest()
	request.Quantity = 0

	_, err := router.Send(VenueFlowa, StrategySimpleOrder, request)

	assertion.Error(err)

	var validationError model.ValidationError
	assertion.True(errors.As(err, &validationError))
	assertion.Equal("quantity", validationError.Field)
	adapter.AssertNumberOfCalls(t, "SendOrder", 0)
}

func TestRouterWrapsAdapterSendFailure(t *testing.T) {
	assertion := assert.New(t)

	adapter := new(OrderAdapterMock)
	router := OrderRouter{
		Adapters: map[AdapterKey]OrderAdapterInterface{
			{Venue: VenueFlowa, Strategy: StrategySimpleOrder}: adapter,
		},
	}

	venueErr := errors.New("insufficient buying power")
	adapter.On("SendOrder", mock.Anything).Return("", venueErr)

	_, err := router.Send(VenueFlowa, StrategySimpleOrder, validOrderRequest())

	assertion.Error(err)

	var sendOrderError SendOrderError
	assertion.True(errors.As(err, &sendOrderError))
	assertion.Equal(VenueFlowa, sendOrderError.Venue)
	assertion.Equal(venueErr, errors.Unwrap(err))
}

func TestRouterWrapsUpdateAndCancelFailures(t *testing.T) {
	assertion := assert.New(t)

	adapter := new(OrderAdapterMock)
	router := OrderRouter{
		Adapters: map[AdapterKey]OrderAdapterInterface{
			{Venue: VenueFlowa, Strategy: StrategySimpleOrder}: adapter,
		},
	}

	adapter.On("UpdateOrder", "strategy-id-1", 45.60).Return(errors.New("order is already filled"))
	adapter.On("CancelOrder", "strategy-id-1").Return(errors.New("order is already filled"))

	err := router.Update(VenueFlowa, StrategySimpleOrder, "strategy-id-1", 45.60)
	var updateOrderError UpdateOrderError
	assertion.True(errors.As(err, &updateOrderError))

	err = router.Cancel(VenueFlowa, StrategySimpleOrder, "strategy-id-1")
	var cancelOrderError CancelOrderError
	assertion.True(errors.As(err, &cancelOrderError))
}

func TestRouterReturnsOrderSnapshot(t *testing.T) {
	assertion := assert.New(t)

	adapter := new(OrderAdapterMock)
	router := OrderRouter{
		Adapters: map[AdapterKey]OrderAdapterInterface{
			{Venue: VenueBinance, Strategy: StrategyFutures}: adapter,
		},
	}

	adapter.On("GetOrder", "BTCUSDT:123").Return(model.OrderSnapshot{
		OrderId:     "BTCUSDT:123",
		Symbol:      "BTCUSDT",
		Side:        "SELL",
		Quantity:    0.03,
		ExecutedQty: 0.03,
		Status:      "FILLED",
	}, nil)

	snapshot, err := router.Get(VenueBinance, StrategyFutures, "BTCUSDT:123")

	assertion.Nil(err)
	assertion.Equal("BTCUSDT", snapshot.Symbol)
	assertion.Equal(0.03, snapshot.ExecutedQty)
}
