package audit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQL_InsertTx(t *testing.T) {
	details := json.RawMessage(`{"reconciled_products":2}`)
	tests := []struct {
		name   string
		entry  *model.AuditLogEntity
		userID any
	}{
		{
			name:   "user action",
			entry:  &model.AuditLogEntity{ID: "a1", UserID: 7, Role: constant.RoleManager, Action: "COMMIT", Details: details},
			userID: 7,
		},
		{
			name:   "system action stores null user",
			entry:  &model.AuditLogEntity{ID: "a2", Action: "RECONCILE", Details: details},
			userID: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer db.Close()
			conn := sqlx.NewDb(db, "mysql")
			mock.ExpectBegin()
			tx, err := conn.Beginx()
			require.NoError(t, err)

			mock.ExpectExec(insertAuditLog).
				WithArgs(tt.entry.ID, tt.userID, string(tt.entry.Role), tt.entry.Action, []byte(details)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, NewAuditRepository(conn).InsertTx(context.Background(), tx, tt.entry))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
