package alert

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
)

type AlertRepository interface {
	Insert(ctx context.Context, alert *model.StockAlertEntity) error
	HasActive(ctx context.Context, productID uint64, alertType constant.AlertType) (bool, error)
	DeactivateByProduct(ctx context.Context, productID uint64) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewAlertRepository(conn *sqlx.DB) AlertRepository {
	return &SQL{conn: conn}
}

const (
	insertAlert = `INSERT INTO stock_alerts (product_id, alert_type, threshold_value, current_value, is_active, created_at)
VALUES (?, ?, ?, ?, TRUE, NOW())`

	countActiveAlert = `SELECT COUNT(*) FROM stock_alerts WHERE product_id = ? AND alert_type = ? AND is_active = TRUE`

	deactivateAlerts = `UPDATE stock_alerts SET is_active = FALSE WHERE product_id = ? AND is_active = TRUE`
)

func (r *SQL) Insert(ctx context.Context, a *model.StockAlertEntity) error {
	res, err := r.conn.ExecContext(ctx, insertAlert, a.ProductID, a.AlertType, a.ThresholdValue, a.CurrentValue)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.IsActive = true
	return nil
}

func (r *SQL) HasActive(ctx context.Context, productID uint64, alertType constant.AlertType) (bool, error) {
	var n int
	if err := r.conn.GetContext(ctx, &n, countActiveAlert, productID, alertType); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQL) DeactivateByProduct(ctx context.Context, productID uint64) error {
	_, err := r.conn.ExecContext(ctx, deactivateAlerts, productID)
	return err
}
