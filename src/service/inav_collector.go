package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gitlab.com/open-soft/go-etf-arbitrage/src/client"
	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/utils"
)

// InavCollector streams trades of the underlying crypto assets and
// derives the per-share fair value of each tradable ETF from its
// creation-unit composition. Every derived value is cached as the
// latest snapshot and published on the ETF's inav channel.
type InavCollector struct {
	Bus       *EventBus
	WSDsn     string
	Etfs      []model.EtfDefinition
	Formatter *utils.Formatter
}

func (c *InavCollector) Start() {
	streams := make([]string, 0, len(c.Etfs))
	for _, etf := range c.Etfs {
		streams = append(streams, fmt.Sprintf("%s@trade", strings.ToLower(etf.Underlying)))
	}

	tradeChannel := make(chan []byte)
	client.Listen(c.WSDsn, tradeChannel, streams, 1)

	log.Printf("Inav collector started, streams: %s", strings.Join(streams, ", "))

	go func() {
		for message := range tradeChannel {
			c.handleTrade(message)
		}
	}()
}

func (c *InavCollector) handleTrade(message []byte) {
	var trade model.WSTradeEvent

	if err := json.Unmarshal(message, &trade); err != nil || trade.Symbol == "" {
		return
	}

	price, err := strconv.ParseFloat(trade.Price, 64)

	if err != nil || price <= 0 {
		return
	}

	for _, etf := range c.Etfs {
		if etf.Underlying != trade.Symbol {
			continue
		}

		update := model.InavUpdate{
			Symbol:                  etf.Symbol,
			Inav:                    c.Formatter.ToFixed(price*etf.AmountPerShare, 4),
			AmountOfUnderlyingAsset: etf.AmountPerShare,
		}

		c.Bus.SetInav(update)
		c.Bus.Publish(fmt.Sprintf("inav-%s", etf.Symbol), update)
	}
}
