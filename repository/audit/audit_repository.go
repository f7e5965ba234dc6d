package audit

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/model"
)

type AuditRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, entry *model.AuditLogEntity) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewAuditRepository(conn *sqlx.DB) AuditRepository {
	return &SQL{conn: conn}
}

const insertAuditLog = `INSERT INTO audit_logs (log_id, user_id, role, action, details, created_at) VALUES (?, ?, ?, ?, ?, NOW())`

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, e *model.AuditLogEntity) error {
	var userID any
	if e.UserID != 0 {
		userID = e.UserID
	}
	_, err := tx.ExecContext(ctx, insertAuditLog, e.ID, userID, string(e.Role), e.Action, []byte(e.Details))
	return err
}
