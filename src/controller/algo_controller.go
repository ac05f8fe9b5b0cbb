package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/service/algorithm"
)

type AlgoController struct {
	AlgoManager *algorithm.AlgoManager
}

type startAlgoRequest struct {
	AlgoName string               `json:"algo_name"`
	AlgoData model.AlgoParameters `json:"algo_data"`
}

func (a *AlgoController) PostAlgoAction(w http.ResponseWriter, req *http.Request) {
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

	var startRequest startAlgoRequest
	if err := json.NewDecoder(req.Body).Decode(&startRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)

		return
	}

	algoId, err := a.AlgoManager.Start(startRequest.AlgoName, startRequest.AlgoData)

	if err != nil {
		var validationError model.ValidationError

		if errors.As(err, &validationError) {
			http.Error(w, validationError.Message, http.StatusBadRequest)

			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	encoded, _ := json.Marshal(map[string]string{"algo_id": algoId})
	fmt.Fprintf(w, string(encoded))
}

func (a *AlgoController) DeleteAlgoAction(w http.ResponseWriter, req *http.Request) {
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

	algoId := strings.TrimPrefix(req.URL.Path, "/algo/")

	stopped, err := a.AlgoManager.Stop(algoId)

	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}

	encoded, _ := json.Marshal(map[string]bool{"stopped": stopped})
	fmt.Fprintf(w, string(encoded))
}
