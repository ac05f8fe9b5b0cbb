package algorithm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/repository"
	"gitlab.com/open-soft/go-etf-arbitrage/src/service/exchange"
	"gitlab.com/open-soft/go-etf-arbitrage/src/utils"
)

// Minimum fractional deviation of the computed placement price from the
// resting price before the resting order is repriced.
const DefaultPriceDifThreshold = 0.0015

type EventBusInterface interface {
	GetInav(symbol string) (*model.InavUpdate, error)
	Subscribe(channel string, handler func(message []byte))
	Unsubscribe(channel string)
	Listen(ctx context.Context)
	Close()
}

// SpreadCryptoEtf executes one strategy run: it rests a limit order on
// the ETF leg at a spread from fair value, reprices it as inav moves and
// hedges every new fill with an inverted market order on the underlying
// crypto asset.
//
// Two loops run for the lifetime of the run: the event loop (the bus
// listener, sole writer of the resting-order fields) and the
// cancellation monitor. Shared fields are guarded by stateMutex.
type SpreadCryptoEtf struct {
	Algo              *model.Algo
	Router            exchange.OrderRouterInterface
	Bus               EventBusInterface
	AlgoStorage       repository.AlgoStorageInterface
	Formatter         *utils.Formatter
	Retrier           *exchange.Retrier
	PriceDifThreshold float64

	cancel context.CancelFunc

	stateMutex      sync.Mutex
	stockOrderId    string
	stockOrderPrice float64
	stocksExecQty   float64
	cryptoPerShare  float64
	finishedFlag    bool

	finished  chan struct{}
	cancelled chan struct{}
}

func (a *SpreadCryptoEtf) Run(cancelCtx context.Context, cancel context.CancelFunc, killCtx context.Context) {
	a.cancel = cancel
	a.finished = make(chan struct{})
	a.cancelled = make(chan struct{})

	if a.PriceDifThreshold == 0 {
		a.PriceDifThreshold = DefaultPriceDifThreshold
	}

	etfSymbol := a.Algo.Parameters.Symbol

	inav, err := a.Bus.GetInav(etfSymbol)

	if err != nil {
		log.Printf("[%s] Could not read inav snapshot: %s", etfSymbol, err.Error())

		return
	}

	a.cryptoPerShare = inav.AmountOfUnderlyingAsset

	placementPrice := a.GetOrderPlacementPrice(
		inav.Inav,
		a.Algo.Parameters.Side,
		a.Algo.Parameters.SpreadThreshold,
	)
	a.stockOrderPrice = placementPrice

	orderId, err := a.sendStockOrder(placementPrice)

	if err != nil {
		// No resting order to clean up, the monitor only unwinds.
		log.Printf("[%s] Could not send stock order after multiple retries, reason: %s", etfSymbol, err.Error())
		a.cancel()
	} else {
		a.stateMutex.Lock()
		a.stockOrderId = orderId
		a.stateMutex.Unlock()

		a.Bus.Subscribe(fmt.Sprintf("inav-%s", etfSymbol), a.handleInavUpdate)
		a.Bus.Subscribe(fmt.Sprintf("order-%s", orderId), a.handleOrderUpdate)
	}

	go a.monitorCancellation(cancelCtx)
	go a.Bus.Listen(killCtx)

	select {
	case <-a.finished:
	case <-a.cancelled:
	case <-killCtx.Done():
	}

	a.Bus.Close()
}

func (a *SpreadCryptoEtf) GetOrderPlacementPrice(stockFairPrice float64, side string, spreadThreshold float64) float64 {
	spread := stockFairPrice * spreadThreshold

	if side == model.OrderSideBuy {
		return a.Formatter.FormatPrice(stockFairPrice - spread)
	}

	return a.Formatter.FormatPrice(stockFairPrice + spread)
}

func (a *SpreadCryptoEtf) sendStockOrder(placementPrice float64) (string, error) {
	var orderId string

	err := a.Retrier.Do(a.Algo.Parameters.Symbol, func() error {
		id, sendErr := a.Router.Send(
			exchange.VenueFlowa,
			exchange.StrategySimpleOrder,
			a.Algo.StockOrderRequest(placementPrice),
		)

		if sendErr != nil {
			return sendErr
		}

		orderId = id

		return nil
	})

	return orderId, err
}

func (a *SpreadCryptoEtf) sendCryptoOrder(execQty float64, cryptoPerShare float64) error {
	quantity := a.Formatter.FormatHedgeQuantity(cryptoPerShare * execQty)
	request := a.Algo.CryptoOrderRequest(quantity)

	var orderId string

	err := a.Retrier.Do(request.Symbol, func() error {
		id, sendErr := a.Router.Send(exchange.VenueBinance, exchange.StrategyFutures, request)

		if sendErr != nil {
			return sendErr
		}

		orderId = id

		return nil
	})

	trade := model.HedgeTrade{
		AlgoId:   a.Algo.Id,
		Symbol:   request.Symbol,
		Side:     request.Side,
		Quantity: quantity,
		OrderId:  orderId,
		Status:   model.HedgeTradeStatusSent,
	}

	if err != nil {
		trade.Status = model.HedgeTradeStatusFailed
		trade.Error = err.Error()
	}

	if a.AlgoStorage != nil {
		if _, saveErr := a.AlgoStorage.CreateHedgeTrade(trade); saveErr != nil {
			log.Printf("[%s] Could not persist hedge trade: %s", a.Algo.Id, saveErr.Error())
		}
	}

	return err
}

func (a *SpreadCryptoEtf) updateStockOrder(orderId string, placementPrice float64) error {
	return a.Retrier.Do(a.Algo.Parameters.Symbol, func() error {
		return a.Router.Update(exchange.VenueFlowa, exchange.StrategySimpleOrder, orderId, placementPrice)
	})
}

func (a *SpreadCryptoEtf) cancelStockOrder(orderId string) error {
	return a.Retrier.Do(a.Algo.Parameters.Symbol, func() error {
		return a.Router.Cancel(exchange.VenueFlowa, exchange.StrategySimpleOrder, orderId)
	})
}

func (a *SpreadCryptoEtf) handleInavUpdate(message []byte) {
	var update model.InavUpdate

	if err := json.Unmarshal(message, &update); err != nil {
		log.Printf("[%s] Could not decode inav update: %s", a.Algo.Parameters.Symbol, err.Error())

		return
	}

	if a.IsFinished() {
		return
	}

	if update.Symbol != a.Algo.Parameters.Symbol {
		return
	}

	log.Printf("[%s] Received inav update: %.4f", update.Symbol, update.Inav)

	placementPrice := a.GetOrderPlacementPrice(
		update.Inav,
		a.Algo.Parameters.Side,
		a.Algo.Parameters.SpreadThreshold,
	)

	a.stateMutex.Lock()
	a.cryptoPerShare = update.AmountOfUnderlyingAsset
	orderId := a.stockOrderId
	restingPrice := a.stockOrderPrice
	a.stateMutex.Unlock()

	priceDifRange := restingPrice * a.PriceDifThreshold

	if math.Abs(placementPrice-restingPrice) <= priceDifRange {
		return
	}

	if err := a.updateStockOrder(orderId, placementPrice); err != nil {
		log.Printf("[%s] Could not update stock order after multiple retries, reason: %s", update.Symbol, err.Error())
		a.cancel()

		return
	}

	a.stateMutex.Lock()
	a.stockOrderPrice = placementPrice
	a.stateMutex.Unlock()
}

func (a *SpreadCryptoEtf) handleOrderUpdate(message []byte) {
	var update model.OrderUpdate

	if err := json.Unmarshal(message, &update); err != nil {
		log.Printf("[%s] Could not decode order update: %s", a.Algo.Parameters.Symbol, err.Error())

		return
	}

	log.Printf("[%s] Received an order event: executed %.2f", update.OrderId, update.ExecutedQty)

	requestedQty := a.Algo.Parameters.Quantity

	a.stateMutex.Lock()
	executedQty := a.stocksExecQty
	cryptoPerShare := a.cryptoPerShare
	a.stateMutex.Unlock()

	// Venue truth is cumulative and capped by the requested quantity.
	reportedQty := math.Min(update.ExecutedQty, requestedQty)
	newlyExecQty := reportedQty - executedQty

	if newlyExecQty > 0 {
		if err := a.sendCryptoOrder(newlyExecQty, cryptoPerShare); err != nil {
			log.Printf("[%s] Could not send crypto order after multiple retries, reason: %s", a.Algo.Id, err.Error())
			a.cancel()
		}

		// Tracked fill accounting follows the stock venue, not hedge
		// success. Failed hedges are persisted for reconciliation.
		a.stateMutex.Lock()
		a.stocksExecQty = executedQty + newlyExecQty
		a.stateMutex.Unlock()
	}

	if !a.IsFinished() {
		return
	}

	log.Printf("[%s] Algo has been totally executed", a.Algo.Id)
	a.stopListeners()

	a.stateMutex.Lock()
	alreadyFinished := a.finishedFlag
	a.finishedFlag = true
	a.stateMutex.Unlock()

	if !alreadyFinished {
		// Stops the cancellation monitor too, the run can no longer be
		// cancelled.
		close(a.finished)
	}
}

func (a *SpreadCryptoEtf) IsFinished() bool {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	return a.stocksExecQty >= a.Algo.Parameters.Quantity
}

func (a *SpreadCryptoEtf) ExecutedQuantity() float64 {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	return a.stocksExecQty
}

func (a *SpreadCryptoEtf) RestingOrderPrice() float64 {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	return a.stockOrderPrice
}

func (a *SpreadCryptoEtf) stopListeners() {
	a.stateMutex.Lock()
	orderId := a.stockOrderId
	a.stateMutex.Unlock()

	a.Bus.Unsubscribe(fmt.Sprintf("inav-%s", a.Algo.Parameters.Symbol))
	a.Bus.Unsubscribe(fmt.Sprintf("order-%s", orderId))
}

func (a *SpreadCryptoEtf) monitorCancellation(cancelCtx context.Context) {
	log.Printf("[%s] Cancellation monitor started", a.Algo.Id)

	select {
	case <-a.finished:
		return
	case <-cancelCtx.Done():
	}

	log.Printf("[%s] Cancellation event was triggered", a.Algo.Id)
	a.stopListeners()

	a.stateMutex.Lock()
	orderId := a.stockOrderId
	a.stateMutex.Unlock()

	if orderId != "" {
		log.Printf("[%s] Cancelling stock order %s...", a.Algo.Id, orderId)

		if err := a.cancelStockOrder(orderId); err != nil {
			log.Printf("[%s] Could not cancel stock order after multiple retries, reason: %s", a.Algo.Id, err.Error())
		}
	}

	close(a.cancelled)
}
