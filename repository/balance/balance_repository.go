package balance

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/model"
	"github.com/shopspring/decimal"
)

// BalanceRepository owns stock_balances. Every write takes the caller's transaction; rows
// must have been locked with GetForUpdateTx first.
type BalanceRepository interface {
	Get(ctx context.Context, productID, locationID uint64) (*model.BalanceEntity, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64) (*model.BalanceEntity, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64) error
	AddReservedTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, delta decimal.Decimal) error
	AddAvailableTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, delta decimal.Decimal) error
	SetAvailableTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, available decimal.Decimal) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewBalanceRepository(conn *sqlx.DB) BalanceRepository {
	return &SQL{conn: conn}
}

const (
	selectBalance = `SELECT product_id, location_id, available_quantity, reserved_quantity, last_updated
FROM stock_balances WHERE product_id = ? AND location_id = ?`

	selectBalanceForUpdate = selectBalance + ` FOR UPDATE`

	insertBalance = `INSERT IGNORE INTO stock_balances (product_id, location_id, available_quantity, reserved_quantity, last_updated)
VALUES (?, ?, 0, 0, NOW())`

	addReserved = `UPDATE stock_balances SET reserved_quantity = reserved_quantity + ?, last_updated = NOW()
WHERE product_id = ? AND location_id = ?`

	addAvailable = `UPDATE stock_balances SET available_quantity = available_quantity + ?, last_updated = NOW()
WHERE product_id = ? AND location_id = ?`

	setAvailable = `UPDATE stock_balances SET available_quantity = ?, last_updated = NOW()
WHERE product_id = ? AND location_id = ?`
)

// Get returns nil, nil when the product has no balance row.
func (r *SQL) Get(ctx context.Context, productID, locationID uint64) (*model.BalanceEntity, error) {
	var b model.BalanceEntity
	if err := r.conn.GetContext(ctx, &b, selectBalance, productID, locationID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetForUpdateTx locks the balance row until tx ends. Returns nil, nil when absent.
func (r *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64) (*model.BalanceEntity, error) {
	var b model.BalanceEntity
	if err := tx.GetContext(ctx, &b, selectBalanceForUpdate, productID, locationID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// CreateTx inserts an empty balance row; it is a no-op when the row already exists.
func (r *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64) error {
	_, err := tx.ExecContext(ctx, insertBalance, productID, locationID)
	return err
}

func (r *SQL) AddReservedTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, delta decimal.Decimal) error {
	return execOneRow(ctx, tx, addReserved, delta, productID, locationID)
}

func (r *SQL) AddAvailableTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, delta decimal.Decimal) error {
	return execOneRow(ctx, tx, addAvailable, delta, productID, locationID)
}

func (r *SQL) SetAvailableTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, available decimal.Decimal) error {
	return execOneRow(ctx, tx, setAvailable, available, productID, locationID)
}

// execOneRow fails with sql.ErrNoRows when the balance row does not exist, so a missing row
// can never be mistaken for a successful write.
func execOneRow(ctx context.Context, tx *sqlx.Tx, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
