package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"
	"time"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
)

// Flowa is the brokered stock venue behind the ETF leg. Authentication
// is OAuth client-credentials with a token cached for eight hours.
type Flowa struct {
	Endpoint      string
	TokenEndpoint string
	ClientId      string
	ApiSecret     string
	HttpClient    HttpClientInterface

	token          string
	tokenRefreshed time.Time
	tokenMutex     sync.Mutex
}

func (f *Flowa) getToken() (string, error) {
	f.tokenMutex.Lock()
	defer f.tokenMutex.Unlock()

	if f.token != "" && time.Since(f.tokenRefreshed) < time.Hour*8 {
		return f.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "atgapi")
	form.Set("client_id", f.ClientId)
	form.Set("client_secret", f.ApiSecret)

	response, err := f.HttpClient.Post(f.TokenEndpoint, []byte(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})

	if err != nil {
		return "", err
	}

	var tokenResponse model.FlowaTokenResponse
	if err = json.Unmarshal(response, &tokenResponse); err != nil {
		return "", err
	}

	f.token = tokenResponse.AccessToken
	f.tokenRefreshed = time.Now()
	log.Printf("[Flowa] Token was refreshed")

	return f.token, nil
}

func (f *Flowa) getHeaders() (map[string]string, error) {
	token, err := f.getToken()

	if err != nil {
		return nil, err
	}

	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}, nil
}

func (f *Flowa) SendOrder(order model.Order) (string, error) {
	headers, err := f.getHeaders()

	if err != nil {
		return "", err
	}

	flowaOrder := model.FlowaOrder{
		Broker:      order.Broker,
		Account:     order.Account,
		Symbol:      order.Symbol,
		Side:        order.Side,
		OrderType:   order.OrderType,
		TimeInForce: order.TimeInForce,
		Quantity:    order.Quantity,
		Price:       strconv.FormatFloat(order.Price, 'f', -1, 64),
	}

	encoded, _ := json.Marshal(flowaOrder)
	response, err := f.HttpClient.Post(fmt.Sprintf("%s/simple-order", f.Endpoint), encoded, headers)

	if err != nil {
		return "", err
	}

	var orderResponse model.FlowaOrderResponse
	if err = json.Unmarshal(response, &orderResponse); err != nil {
		return "", err
	}

	if !orderResponse.Success {
		return "", errors.New(fmt.Sprintf("Failed to send order, reason: %s", orderResponse.Error))
	}

	log.Printf("[Flowa] Order was sent: %s", orderResponse.StrategyId)

	return orderResponse.StrategyId, nil
}

func (f *Flowa) GetOrder(orderId string) (model.OrderSnapshot, error) {
	headers, err := f.getHeaders()

	if err != nil {
		return model.OrderSnapshot{}, err
	}

	response, err := f.HttpClient.Get(fmt.Sprintf("%s/simple-order/%s", f.Endpoint, orderId), headers)

	if err != nil {
		return model.OrderSnapshot{}, err
	}

	var state model.FlowaOrderState
	if err = json.Unmarshal(response, &state); err != nil {
		return model.OrderSnapshot{}, err
	}

	return model.OrderSnapshot{
		OrderId:     state.StrategyId,
		Symbol:      state.Symbol,
		Side:        state.Side,
		Quantity:    state.Quantity,
		Price:       state.Price,
		OrderType:   state.OrderType,
		ExecutedQty: state.ExecutedQuantity,
		TimeInForce: state.TimeInForce,
		Status:      state.Status,
	}, nil
}

func (f *Flowa) UpdateOrder(orderId string, price float64) error {
	headers, err := f.getHeaders()

	if err != nil {
		return err
	}

	encoded, _ := json.Marshal(model.FlowaOrderUpdate{
		Price: strconv.FormatFloat(price, 'f', -1, 64),
	})

	response, err := f.HttpClient.Put(fmt.Sprintf("%s/simple-order/%s", f.Endpoint, orderId), encoded, headers)

	if err != nil {
		return err
	}

	var orderResponse model.FlowaOrderResponse
	if err = json.Unmarshal(response, &orderResponse); err != nil {
		return err
	}

	if !orderResponse.Success {
		return errors.New(fmt.Sprintf("Failed to update order, reason: %s", orderResponse.Error))
	}

	log.Printf("[Flowa] Order %s was successfully updated", orderId)

	return nil
}

func (f *Flowa) CancelOrder(orderId string) error {
	headers, err := f.getHeaders()

	if err != nil {
		return err
	}

	response, err := f.HttpClient.Delete(fmt.Sprintf("%s/simple-order/%s", f.Endpoint, orderId), headers)

	if err != nil {
		return err
	}

	var orderResponse model.FlowaOrderResponse
	if err = json.Unmarshal(response, &orderResponse); err != nil {
		return err
	}

	if !orderResponse.Success {
		return errors.New(fmt.Sprintf("Failed to cancel order, reason: %s", orderResponse.Error))
	}

	log.Printf("[Flowa] Order %s was successfully cancelled", orderId)

	return nil
}
