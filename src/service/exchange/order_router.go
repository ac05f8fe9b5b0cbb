package exchange

import (
	"log"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/repository"
)

const (
	VenueFlowa   = "flowa"
	VenueBinance = "binance"

	StrategySimpleOrder = "simple-order"
	StrategyFutures     = "futures"
)

type OrderAdapterInterface interface {
	SendOrder(order model.Order) (string, error)
	GetOrder(orderId string) (model.OrderSnapshot, error)
	UpdateOrder(orderId string, price float64) error
	CancelOrder(orderId string) error
}

type OrderRouterInterface interface {
	Send(venue string, strategy string, request model.OrderRequest) (string, error)
	Get(venue string, strategy string, orderId string) (model.OrderSnapshot, error)
	Update(venue string, strategy string, orderId string, price float64) error
	Cancel(venue string, strategy string, orderId string) error
}

type AdapterKey struct {
	Venue    string
	Strategy string
}

// OrderRouter validates a raw order request into an immutable Order and
// dispatches it to the adapter registered for the (venue, strategy)
// pair. The registry is resolved at container init, unknown pairs fail
// with UnknownAdapterError.
type OrderRouter struct {
	Adapters     map[AdapterKey]OrderAdapterInterface
	OrderStorage repository.OrderStorageInterface
}

func (r *OrderRouter) resolve(venue string, strategy string) (OrderAdapterInterface, error) {
	adapter, ok := r.Adapters[AdapterKey{Venue: venue, Strategy: strategy}]

	if !ok {
		return nil, UnknownAdapterError{Venue: venue, Strategy: strategy}
	}

	return adapter, nil
}

func (r *OrderRouter) Send(venue string, strategy string, request model.OrderRequest) (string, error) {
	order, err := model.NewOrder(request)

	if err != nil {
		return "", err
	}

	adapter, err := r.resolve(venue, strategy)

	if err != nil {
		return "", err
	}

	orderId, err := adapter.SendOrder(order)

	if err != nil {
		return "", SendOrderError{Venue: venue, Err: err}
	}

	if r.OrderStorage != nil {
		_, saveErr := r.OrderStorage.Create(venue, strategy, orderId, order)

		if saveErr != nil {
			log.Printf("[%s] Could not persist routed order %s: %s", venue, orderId, saveErr.Error())
		}
	}

	return orderId, nil
}

func (r *OrderRouter) Get(venue string, strategy string, orderId string) (model.OrderSnapshot, error) {
	adapter, err := r.resolve(venue, strategy)

	if err != nil {
		return model.OrderSnapshot{}, err
	}

	snapshot, err := adapter.GetOrder(orderId)

	if err != nil {
		return model.OrderSnapshot{}, GetOrderError{Venue: venue, Err: err}
	}

	return snapshot, nil
}

func (r *OrderRouter) Update(venue string, strategy string, orderId string, price float64) error {
	adapter, err := r.resolve(venue, strategy)

	if err != nil {
		return err
	}

	if err = adapter.UpdateOrder(orderId, price); err != nil {
		return UpdateOrderError{Venue: venue, Err: err}
	}

	return nil
}

func (r *OrderRouter) Cancel(venue string, strategy string, orderId string) error {
	adapter, err := r.resolve(venue, strategy)

	if err != nil {
		return err
	}

	if err = adapter.CancelOrder(orderId); err != nil {
		return CancelOrderError{Venue: venue, Err: err}
	}

	return nil
}
