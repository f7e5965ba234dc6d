package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/model"
	"github.com/shopspring/decimal"
)

type SQL struct {
	conn *sqlx.DB
}

// ProductRepository reads products and maintains the current_stock cache column. current_stock
// is only written from inside a stock transaction, right after the balance row it mirrors.
type ProductRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductEntity, error)
	SetCurrentStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, stock decimal.Decimal) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	getProduct = `SELECT product_id, name, COALESCE(current_stock, 0) AS current_stock, COALESCE(min_qty, 0) AS min_qty
FROM products WHERE product_id = ?`

	setCurrentStock = `UPDATE products SET current_stock = ? WHERE product_id = ?`
)

// GetByID returns nil, nil when the product does not exist.
func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	var p model.ProductEntity
	if err := s.conn.GetContext(ctx, &p, getProduct, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductEntity, error) {
	var p model.ProductEntity
	if err := tx.GetContext(ctx, &p, getProduct, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQL) SetCurrentStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, stock decimal.Decimal) error {
	_, err := tx.ExecContext(ctx, setCurrentStock, stock, id)
	return err
}
