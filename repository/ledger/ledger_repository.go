package ledger

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	"github.com/shopspring/decimal"
)

// LedgerRepository is append-only.
type LedgerRepository interface {
	AppendTx(ctx context.Context, tx *sqlx.Tx, entry *model.LedgerEntryEntity) (uint64, error)
	ListProductIDsTx(ctx context.Context, tx *sqlx.Tx) ([]uint64, error)
	SumByProductTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (decimal.Decimal, error)
	List(ctx context.Context, filter *model.LedgerFilter) ([]model.LedgerEntryEntity, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewLedgerRepository(conn *sqlx.DB) LedgerRepository {
	return &SQL{conn: conn}
}

const (
	insertLedgerEntry = `INSERT INTO stock_ledger (product_id, txn_type, quantity, balance_after, reference_type, reference_id, user_id, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(6))`

	selectLedgerProductIDs = `SELECT DISTINCT product_id FROM stock_ledger ORDER BY product_id`

	// only IN and OUT move available stock
	sumLedgerByProduct = `SELECT COALESCE(SUM(CASE WHEN txn_type = ? THEN quantity WHEN txn_type = ? THEN -quantity ELSE 0 END), 0)
FROM stock_ledger WHERE product_id = ?`

	listLedgerBase = `SELECT ledger_id, product_id, txn_type, quantity, balance_after, reference_type, reference_id, user_id, notes, created_at
FROM stock_ledger WHERE true`
)

func (r *SQL) AppendTx(ctx context.Context, tx *sqlx.Tx, e *model.LedgerEntryEntity) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertLedgerEntry,
		e.ProductID, e.TxnType, e.Quantity, e.BalanceAfter, e.ReferenceType, e.ReferenceID, e.UserID, e.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) ListProductIDsTx(ctx context.Context, tx *sqlx.Tx) ([]uint64, error) {
	ids := make([]uint64, 0)
	if err := tx.SelectContext(ctx, &ids, selectLedgerProductIDs); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SQL) SumByProductTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := tx.GetContext(ctx, &sum, sumLedgerByProduct, constant.TxnTypeIn, constant.TxnTypeOut, productID); err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// List returns entries newest first.
func (r *SQL) List(ctx context.Context, filter *model.LedgerFilter) ([]model.LedgerEntryEntity, error) {
	query := listLedgerBase
	args := make([]any, 0, 3)
	if filter.ProductID != 0 {
		query += " AND product_id = ?"
		args = append(args, filter.ProductID)
	}
	query += " ORDER BY created_at DESC, ledger_id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	items := make([]model.LedgerEntryEntity, 0)
	if err := r.conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}
