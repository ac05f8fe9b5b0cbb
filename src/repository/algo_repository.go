package repository

import (
	"database/sql"
	"time"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
)

type AlgoStorageInterface interface {
	Create(algo model.Algo) error
	UpdateStatus(algoId string, status model.AlgoStatus) error
	CreateHedgeTrade(trade model.HedgeTrade) (*int64, error)
}

type AlgoRepository struct {
	DB *sql.DB
}

func (repo *AlgoRepository) Create(algo model.Algo) error {
	_, err := repo.DB.Exec(`
		INSERT INTO algos SET
			algo_id = ?,
			name = ?,
			broker = ?,
			account = ?,
			symbol = ?,
			side = ?,
			quantity = ?,
			spread_threshold = ?,
			status = ?,
			created_at = ?
	`,
		algo.Id,
		algo.Name,
		algo.Parameters.Broker,
		algo.Parameters.Account,
		algo.Parameters.Symbol,
		algo.Parameters.Side,
		algo.Parameters.Quantity,
		algo.Parameters.SpreadThreshold,
		algo.Status,
		time.Now().Format("2006-01-02 15:04:05"),
	)

	return err
}

func (repo *AlgoRepository) UpdateStatus(algoId string, status model.AlgoStatus) error {
	_, err := repo.DB.Exec(`UPDATE algos SET status = ? WHERE algo_id = ?`, status, algoId)

	return err
}

func (repo *AlgoRepository) CreateHedgeTrade(trade model.HedgeTrade) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO hedge_trades SET
			algo_id = ?,
			symbol = ?,
			side = ?,
			quantity = ?,
			order_id = ?,
			status = ?,
			error = ?,
			created_at = ?
	`,
		trade.AlgoId,
		trade.Symbol,
		trade.Side,
		trade.Quantity,
		trade.OrderId,
		trade.Status,
		trade.Error,
		time.Now().Format("2006-01-02 15:04:05"),
	)

	if err != nil {
		return nil, err
	}

	lastId, err := res.LastInsertId()

	if err != nil {
		return nil, err
	}

	return &lastId, nil
}

func (repo *AlgoRepository) GetHedgeTradeList(algoId string) []model.HedgeTrade {
	trades := make([]model.HedgeTrade, 0)

	res, err := repo.DB.Query(`
		SELECT
			h.id as Id,
			h.algo_id as AlgoId,
			h.symbol as Symbol,
			h.side as Side,
			h.quantity as Quantity,
			h.order_id as OrderId,
			h.status as Status,
			h.error as Error,
			h.created_at as CreatedAt
		FROM hedge_trades h WHERE h.algo_id = ? ORDER BY h.id ASC
	`, algoId)

	if err != nil {
		return trades
	}

	defer res.Close()

	for res.Next() {
		var trade model.HedgeTrade
		err := res.Scan(
			&trade.Id,
			&trade.AlgoId,
			&trade.Symbol,
			&trade.Side,
			&trade.Quantity,
			&trade.OrderId,
			&trade.Status,
			&trade.Error,
			&trade.CreatedAt,
		)

		if err != nil {
			continue
		}

		trades = append(trades, trade)
	}

	return trades
}
