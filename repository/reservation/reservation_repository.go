package reservation

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
)

type ReservationRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, r *model.ReservationEntity) error
	GetActiveForUpdateTx(ctx context.Context, tx *sqlx.Tx, reservationID string) (*model.ReservationEntity, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, reservationID string, from, to constant.ReservationStatus) error
	ListActive(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationEntity, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewReservationRepository(conn *sqlx.DB) ReservationRepository {
	return &SQL{conn: conn}
}

const (
	reservationColumns = `reservation_id, product_id, qty, unit, ref_type, ref_id, reserved_by, status, created_at, updated_at`

	insertReservation = `INSERT INTO stock_reservations (reservation_id, product_id, qty, unit, ref_type, ref_id, reserved_by, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	selectActiveForUpdate = `SELECT ` + reservationColumns + ` FROM stock_reservations
WHERE reservation_id = ? AND status = ? FOR UPDATE`

	updateReservationStatus = `UPDATE stock_reservations SET status = ?, updated_at = NOW()
WHERE reservation_id = ? AND status = ?`

	listActiveBase = `SELECT ` + reservationColumns + ` FROM stock_reservations WHERE status = ?`
)

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, res *model.ReservationEntity) error {
	_, err := tx.ExecContext(ctx, insertReservation,
		res.ID, res.ProductID, res.Qty, res.Unit, res.RefType, res.RefID, res.ReservedBy, res.Status)
	return err
}

// GetActiveForUpdateTx returns nil, nil when the reservation does not exist or is no longer ACTIVE.
func (r *SQL) GetActiveForUpdateTx(ctx context.Context, tx *sqlx.Tx, reservationID string) (*model.ReservationEntity, error) {
	var res model.ReservationEntity
	if err := tx.GetContext(ctx, &res, selectActiveForUpdate, reservationID, constant.ReservationStatusActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// UpdateStatusTx moves a reservation from one status to another. It fails with sql.ErrNoRows
// if the reservation is not in the expected status.
func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, reservationID string, from, to constant.ReservationStatus) error {
	res, err := tx.ExecContext(ctx, updateReservationStatus, to, reservationID, from)
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

func (r *SQL) ListActive(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationEntity, error) {
	query := listActiveBase
	args := []any{constant.ReservationStatusActive}
	if filter != nil && filter.ProductID != 0 {
		query += " AND product_id = ?"
		args = append(args, filter.ProductID)
	}
	query += " ORDER BY created_at DESC"

	items := make([]model.ReservationEntity, 0)
	if err := r.conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}
