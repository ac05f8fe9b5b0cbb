package repository

import (
	"database/sql"
	"time"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
)

type OrderStorageInterface interface {
	Create(venue string, strategy string, orderId string, order model.Order) (*int64, error)
}

type OrderRepository struct {
	DB *sql.DB
}

func (repo *OrderRepository) Create(venue string, strategy string, orderId string, order model.Order) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO orders SET
			external_id = ?,
			exchange = ?,
			strategy = ?,
			symbol = ?,
			side = ?,
			quantity = ?,
			price = ?,
			order_type = ?,
			time_in_force = ?,
			broker = ?,
			account = ?,
			created_at = ?
	`,
		orderId,
		venue,
		strategy,
		order.Symbol,
		order.Side,
		order.Quantity,
		order.Price,
		order.OrderType,
		order.TimeInForce,
		order.Broker,
		order.Account,
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

func (repo *OrderRepository) GetOrderList(limit int64) []model.OrderSnapshot {
	orders := make([]model.OrderSnapshot, 0)

	res, err := repo.DB.Query(`
		SELECT
			o.external_id as OrderId,
			o.symbol as Symbol,
			o.side as Side,
			o.quantity as Quantity,
			o.price as Price,
			o.order_type as OrderType,
			o.time_in_force as TimeInForce
		FROM orders o ORDER BY o.id DESC LIMIT ?
	`, limit)

	if err != nil {
		return orders
	}

	defer res.Close()

	for res.Next() {
		var order model.OrderSnapshot
		err := res.Scan(
			&order.OrderId,
			&order.Symbol,
			&order.Side,
			&order.Quantity,
			&order.Price,
			&order.OrderType,
			&order.TimeInForce,
		)

		if err != nil {
			continue
		}

		orders = append(orders, order)
	}

	return orders
}
