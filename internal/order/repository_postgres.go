package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders ("userID", reference, lines, "productIds", quantity, "totalPrice", status, "createdAt")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING "orderID"
	`
	listOrdersByUserQuery = `
		SELECT "orderID", "userID", reference, lines, "productIds", quantity, "totalPrice", status, "createdAt"
		FROM orders
		WHERE "userID" = $1
		ORDER BY "orderID" DESC
	`
	getOrderByReferenceQuery = `
		SELECT "orderID", "userID", reference, lines, "productIds", quantity, "totalPrice", status, "createdAt"
		FROM orders
		WHERE reference = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	linesJSON, err := json.Marshal(ord.Lines)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(insertOrderQuery,
		ord.UserID, ord.Reference, linesJSON, pq.Array(ord.ProductIDs),
		ord.Quantity, ord.Total, ord.Status, ord.CreatedAt,
	).Scan(&ord.OrderID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetByReference(reference string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderByReferenceQuery, reference))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var linesJSON []byte
	var productIDs pq.Int64Array
	if err := row.Scan(&ord.OrderID, &ord.UserID, &ord.Reference, &linesJSON, &productIDs,
		&ord.Quantity, &ord.Total, &ord.Status, &ord.CreatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(linesJSON, &ord.Lines); err != nil {
		return Order{}, err
	}
	ord.ProductIDs = make([]int, 0, len(productIDs))
	for _, id := range productIDs {
		ord.ProductIDs = append(ord.ProductIDs, int(id))
	}
	return ord, nil
}
