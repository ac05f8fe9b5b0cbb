package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/service/exchange"
)

type OrderController struct {
	OrderRouter exchange.OrderRouterInterface
}

func writeRouterError(w http.ResponseWriter, err error) {
	var validationError model.ValidationError
	var unknownAdapterError exchange.UnknownAdapterError

	if errors.As(err, &validationError) || errors.As(err, &unknownAdapterError) {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	http.Error(w, err.Error(), http.StatusBadGateway)
}

func (o *OrderController) PostSendOrderAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	if req.Method != "POST" {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)

		return
	}

	venue := req.URL.Query().Get("exchange_name")
	strategy := req.URL.Query().Get("strategy")

	var orderRequest model.OrderRequest
	if err := json.NewDecoder(req.Body).Decode(&orderRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)

		return
	}

	orderId, err := o.OrderRouter.Send(venue, strategy, orderRequest)

	if err != nil {
		writeRouterError(w, err)

		return
	}

	encoded, _ := json.Marshal(map[string]string{"order_id": orderId})
	fmt.Fprintf(w, string(encoded))
}

func (o *OrderController) GetOrderAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	venue := req.URL.Query().Get("exchange_name")
	strategy := req.URL.Query().Get("strategy")
	orderId := req.URL.Query().Get("order_id")

	snapshot, err := o.OrderRouter.Get(venue, strategy, orderId)

	if err != nil {
		writeRouterError(w, err)

		return
	}

	encoded, _ := json.Marshal(snapshot)
	fmt.Fprintf(w, string(encoded))
}

type updateOrderRequest struct {
	Price float64 `json:"price"`
}

func (o *OrderController) PutUpdateOrderAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	if req.Method != "PUT" {
		http.Error(w, "Only PUT method is allowed", http.StatusMethodNotAllowed)

		return
	}

	venue := req.URL.Query().Get("exchange_name")
	strategy := req.URL.Query().Get("strategy")
	orderId := req.URL.Query().Get("order_id")

	var update updateOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)

		return
	}

	if update.Price <= 0 {
		http.Error(w, "Order price must be positive", http.StatusBadRequest)

		return
	}

	if err := o.OrderRouter.Update(venue, strategy, orderId, update.Price); err != nil {
		writeRouterError(w, err)

		return
	}

	fmt.Fprintf(w, "OK")
}

func (o *OrderController) DeleteCancelOrderAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	if req.Method != "DELETE" {
		http.Error(w, "Only DELETE method is allowed", http.StatusMethodNotAllowed)

		return
	}

	venue := req.URL.Query().Get("exchange_name")
	strategy := req.URL.Query().Get("strategy")
	orderId := req.URL.Query().Get("order_id")

	if err := o.OrderRouter.Cancel(venue, strategy, orderId); err != nil {
		writeRouterError(w, err)

		return
	}

	fmt.Fprintf(w, "OK")
}
