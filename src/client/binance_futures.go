package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
)

// BinanceFutures places the hedge leg on USDT-margined futures with
// signed REST calls. The futures API addresses an order by symbol plus
// order id, so the venue order identifier handed back to the router is
// the composite "SYMBOL:orderId".
type BinanceFutures struct {
	DSN        string
	ApiKey     string
	ApiSecret  string
	HttpClient HttpClientInterface
}

func (b *BinanceFutures) sign(queryString string) string {
	mac := hmac.New(sha256.New, []byte(b.ApiSecret))
	mac.Write([]byte(queryString))

	return fmt.Sprintf("%x", mac.Sum(nil))
}

func (b *BinanceFutures) signedUrl(path string, queryString string) string {
	queryString = fmt.Sprintf("%s&timestamp=%d", queryString, time.Now().UnixMilli())

	return fmt.Sprintf("%s%s?%s&signature=%s", b.DSN, path, queryString, b.sign(queryString))
}

func (b *BinanceFutures) getHeaders() map[string]string {
	return map[string]string{
		"X-MBX-APIKEY": b.ApiKey,
	}
}

func splitCompositeOrderId(orderId string) (string, string, error) {
	parts := strings.SplitN(orderId, ":", 2)

	if len(parts) != 2 {
		return "", "", errors.New(fmt.Sprintf("Invalid futures order id: %s", orderId))
	}

	return parts[0], parts[1], nil
}

func (b *BinanceFutures) parseOrder(response []byte) (model.BinanceFuturesOrder, error) {
	var apiError model.BinanceFuturesError
	if err := json.Unmarshal(response, &apiError); err == nil && apiError.Code != 0 {
		return model.BinanceFuturesOrder{}, errors.New(apiError.Msg)
	}

	var order model.BinanceFuturesOrder
	if err := json.Unmarshal(response, &order); err != nil {
		return model.BinanceFuturesOrder{}, err
	}

	return order, nil
}

func (b *BinanceFutures) SendOrder(order model.Order) (string, error) {
	queryString := fmt.Sprintf(
		"symbol=%s&side=%s&type=%s&quantity=%s",
		order.Symbol,
		order.Side,
		order.OrderType,
		strconv.FormatFloat(order.Quantity, 'f', -1, 64),
	)

	if order.OrderType == model.OrderTypeLimit {
		queryString = fmt.Sprintf(
			"%s&price=%s&timeInForce=%s",
			queryString,
			strconv.FormatFloat(order.Price, 'f', -1, 64),
			order.TimeInForce,
		)
	}

	response, err := b.HttpClient.Post(b.signedUrl("/fapi/v1/order", queryString), nil, b.getHeaders())

	if err != nil {
		return "", err
	}

	futuresOrder, err := b.parseOrder(response)

	if err != nil {
		log.Printf("[%s] Send Order: %s", order.Symbol, err.Error())

		return "", err
	}

	return fmt.Sprintf("%s:%d", futuresOrder.Symbol, futuresOrder.OrderId), nil
}

func (b *BinanceFutures) GetOrder(orderId string) (model.OrderSnapshot, error) {
	symbol, id, err := splitCompositeOrderId(orderId)

	if err != nil {
		return model.OrderSnapshot{}, err
	}

	queryString := fmt.Sprintf("symbol=%s&orderId=%s", symbol, id)
	response, err := b.HttpClient.Get(b.signedUrl("/fapi/v1/order", queryString), b.getHeaders())

	if err != nil {
		return model.OrderSnapshot{}, err
	}

	futuresOrder, err := b.parseOrder(response)

	if err != nil {
		return model.OrderSnapshot{}, err
	}

	price, _ := strconv.ParseFloat(futuresOrder.Price, 64)
	quantity, _ := strconv.ParseFloat(futuresOrder.OrigQty, 64)
	executedQty, _ := strconv.ParseFloat(futuresOrder.ExecutedQty, 64)

	return model.OrderSnapshot{
		OrderId:     orderId,
		Symbol:      futuresOrder.Symbol,
		Side:        futuresOrder.Side,
		Quantity:    quantity,
		Price:       price,
		OrderType:   futuresOrder.Type,
		ExecutedQty: executedQty,
		TimeInForce: futuresOrder.TimeInForce,
		Status:      futuresOrder.Status,
	}, nil
}

// The futures API has no in-place amend for this flow: update is
// cancel plus re-place at the new price.
func (b *BinanceFutures) UpdateOrder(orderId string, price float64) error {
	snapshot, err := b.GetOrder(orderId)

	if err != nil {
		return err
	}

	if err = b.CancelOrder(orderId); err != nil {
		return err
	}

	_, err = b.SendOrder(model.Order{
		Symbol:      snapshot.Symbol,
		Side:        snapshot.Side,
		Quantity:    snapshot.Quantity - snapshot.ExecutedQty,
		Price:       price,
		OrderType:   model.OrderTypeLimit,
		TimeInForce: snapshot.TimeInForce,
	})

	return err
}

func (b *BinanceFutures) CancelOrder(orderId string) error {
	symbol, id, err := splitCompositeOrderId(orderId)

	if err != nil {
		return err
	}

	queryString := fmt.Sprintf("symbol=%s&orderId=%s", symbol, id)
	response, err := b.HttpClient.Delete(b.signedUrl("/fapi/v1/order", queryString), b.getHeaders())

	if err != nil {
		return err
	}

	if _, err = b.parseOrder(response); err != nil {
		log.Printf("[%s] Cancel Order: %s", symbol, err.Error())

		return err
	}

	log.Printf("[%s] Order %s was successfully cancelled", symbol, id)

	return nil
}
