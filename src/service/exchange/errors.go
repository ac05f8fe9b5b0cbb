package exchange

import "fmt"

type SendOrderError struct {
	Venue string
	Err   error
}

func (e SendOrderError) Error() string {
	return fmt.Sprintf("[%s] Could not send order, reason: %s", e.Venue, e.Err.Error())
}

func (e SendOrderError) Unwrap() error {
	return e.Err
}

type GetOrderError struct {
	Venue string
	Err   error
}

func (e GetOrderError) Error() string {
	return fmt.Sprintf("[%s] Could not get order, reason: %s", e.Venue, e.Err.Error())
}

func (e GetOrderError) Unwrap() error {
	return e.Err
}

type UpdateOrderError struct {
	Venue string
	Err   error
}

func (e UpdateOrderError) Error() string {
	return fmt.Sprintf("[%s] Could not update order, reason: %s", e.Venue, e.Err.Error())
}

func (e UpdateOrderError) Unwrap() error {
	return e.Err
}

type CancelOrderError struct {
	Venue string
	Err   error
}

func (e CancelOrderError) Error() string {
	return fmt.Sprintf("[%s] Could not cancel order, reason: %s", e.Venue, e.Err.Error())
}

func (e CancelOrderError) Unwrap() error {
	return e.Err
}

// UnknownAdapterError is a configuration error: the (venue, strategy)
// pair has no adapter registered. Never a silent no-op.
type UnknownAdapterError struct {
	Venue    string
	Strategy string
}

func (e UnknownAdapterError) Error() string {
	return fmt.Sprintf("Unsupported exchange adapter: %s/%s", e.Venue, e.Strategy)
}
