package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-etf-arbitrage/src/client"
	"gitlab.com/open-soft/go-etf-arbitrage/src/controller"
	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/repository"
	"gitlab.com/open-soft/go-etf-arbitrage/src/service"
	"gitlab.com/open-soft/go-etf-arbitrage/src/service/algorithm"
	"gitlab.com/open-soft/go-etf-arbitrage/src/service/exchange"
	"gitlab.com/open-soft/go-etf-arbitrage/src/utils"
)

func InitServiceContainer() Container {
	db, err := sql.Open("mysql", os.Getenv("DATABASE_DSN"))

	if err != nil {
		log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
	}

	db.SetMaxIdleConns(64)
	db.SetMaxOpenConns(64)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	httpClient := client.HttpClient{}

	flowa := client.Flowa{
		Endpoint:      os.Getenv("FLOWA_ENDPOINT"),
		TokenEndpoint: os.Getenv("FLOWA_TOKEN_ENDPOINT"),
		ClientId:      os.Getenv("FLOWA_CLIENT_ID"),
		ApiSecret:     os.Getenv("FLOWA_API_SECRET"),
		HttpClient:    &httpClient,
	}

	binanceFutures := client.BinanceFutures{
		DSN:        os.Getenv("BINANCE_FUTURES_ENDPOINT"),
		ApiKey:     os.Getenv("BINANCE_FUTURES_API_KEY"),
		ApiSecret:  os.Getenv("BINANCE_FUTURES_API_SECRET"),
		HttpClient: &httpClient,
	}

	orderRepository := repository.OrderRepository{
		DB: db,
	}
	algoRepository := repository.AlgoRepository{
		DB: db,
	}

	orderRouter := exchange.OrderRouter{
		Adapters: map[exchange.AdapterKey]exchange.OrderAdapterInterface{
			{Venue: exchange.VenueFlowa, Strategy: exchange.StrategySimpleOrder}: &flowa,
			{Venue: exchange.VenueBinance, Strategy: exchange.StrategyFutures}:   &binanceFutures,
		},
		OrderStorage: &orderRepository,
	}

	formatter := utils.Formatter{}

	algoManager := algorithm.AlgoManager{
		Factories: map[string]algorithm.AlgoRunnerFactory{
			model.AlgoSpreadCryptoEtf: func(algo *model.Algo) algorithm.AlgoRunnerInterface {
				// Every run owns its bus instance: no shared channel
				// handlers between runs on the same symbol.
				return &algorithm.SpreadCryptoEtf{
					Algo:        algo,
					Router:      &orderRouter,
					Bus:         &service.EventBus{RDB: rdb, Ctx: &ctx},
					AlgoStorage: &algoRepository,
					Formatter:   &formatter,
					Retrier: &exchange.Retrier{
						MaxRetries: 4,
						Delay:      time.Second,
					},
					PriceDifThreshold: algorithm.DefaultPriceDifThreshold,
				}
			},
		},
		AlgoStorage:     &algoRepository,
		GracefulTimeout: algorithm.DefaultGracefulTimeout,
		KillTimeout:     algorithm.DefaultKillTimeout,
	}

	etfs := make([]model.EtfDefinition, 0, len(model.EtfUnderlyingAssets))
	for _, etf := range model.EtfUnderlyingAssets {
		etfs = append(etfs, etf)
	}

	inavCollector := service.InavCollector{
		Bus:       &service.EventBus{RDB: rdb, Ctx: &ctx},
		WSDsn:     os.Getenv("BINANCE_WS_DSN"),
		Etfs:      etfs,
		Formatter: &formatter,
	}

	algoController := controller.AlgoController{
		AlgoManager: &algoManager,
	}

	orderController := controller.OrderController{
		OrderRouter: &orderRouter,
	}

	return Container{
		Db:              db,
		Flowa:           &flowa,
		BinanceFutures:  &binanceFutures,
		OrderRepository: &orderRepository,
		AlgoRepository:  &algoRepository,
		OrderRouter:     &orderRouter,
		AlgoManager:     &algoManager,
		InavCollector:   &inavCollector,
		AlgoController:  &algoController,
		OrderController: &orderController,
	}
}

type Container struct {
	Db              *sql.DB
	Flowa           *client.Flowa
	BinanceFutures  *client.BinanceFutures
	OrderRepository *repository.OrderRepository
	AlgoRepository  *repository.AlgoRepository
	OrderRouter     *exchange.OrderRouter
	AlgoManager     *algorithm.AlgoManager
	InavCollector   *service.InavCollector
	AlgoController  *controller.AlgoController
	OrderController *controller.OrderController
}

func (c *Container) StartHttpServer() {
	http.HandleFunc("/algo", c.AlgoController.PostAlgoAction)
	http.HandleFunc("/algo/", c.AlgoController.DeleteAlgoAction)
	http.HandleFunc("/send-order", c.OrderController.PostSendOrderAction)
	http.HandleFunc("/get-order", c.OrderController.GetOrderAction)
	http.HandleFunc("/update-order", c.OrderController.PutUpdateOrderAction)
	http.HandleFunc("/cancel-order", c.OrderController.DeleteCancelOrderAction)

	log.Fatal(http.ListenAndServe(":8080", nil))
}
