package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appreconcile "github.com/muhammadheryan/mfg-stock/application/reconcile"
	"github.com/muhammadheryan/mfg-stock/constant"
	stockmocks "github.com/muhammadheryan/mfg-stock/mocks/application/stock"
	auditmocks "github.com/muhammadheryan/mfg-stock/mocks/repository/audit"
	balancemocks "github.com/muhammadheryan/mfg-stock/mocks/repository/balance"
	ledgermocks "github.com/muhammadheryan/mfg-stock/mocks/repository/ledger"
	productmocks "github.com/muhammadheryan/mfg-stock/mocks/repository/product"
	txmocks "github.com/muhammadheryan/mfg-stock/mocks/repository/tx"
	"github.com/muhammadheryan/mfg-stock/model"
	utilsContext "github.com/muhammadheryan/mfg-stock/utils/context"
	cerr "github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	txRepo      *txmocks.TxRepository
	balanceRepo *balancemocks.BalanceRepository
	ledgerRepo  *ledgermocks.LedgerRepository
	productRepo *productmocks.ProductRepository
	auditRepo   *auditmocks.AuditRepository
	notifier    *stockmocks.Notifier
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func balance(productID uint64, available, reserved string) *model.BalanceEntity {
	return &model.BalanceEntity{
		ProductID:         productID,
		LocationID:        constant.DefaultLocationID,
		AvailableQuantity: dec(available),
		ReservedQuantity:  dec(reserved),
	}
}

func TestReconcileApp_ReconcileInventory(t *testing.T) {
	adminCtx := utilsContext.WithSession(context.Background(), model.Session{UserID: 1, Role: constant.RoleAdmin})

	tests := []struct {
		name     string
		ctx      context.Context
		mockCall func(f fields)
		want     int
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: drifted balances are rebuilt from the ledger",
			ctx:  adminCtx,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.ledgerRepo.On("ListProductIDsTx", mock.Anything, tx).Return([]uint64{1, 2}, nil).Once()
				f.balanceRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID).Return(balance(1, "999", "10"), nil).Once()
				f.balanceRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(2), constant.DefaultLocationID).Return(balance(2, "5", "0"), nil).Once()
				f.ledgerRepo.On("SumByProductTx", mock.Anything, tx, uint64(1)).Return(dec("40"), nil).Once()
				f.ledgerRepo.On("SumByProductTx", mock.Anything, tx, uint64(2)).Return(dec("5"), nil).Once()
				f.balanceRepo.On("SetAvailableTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID, decEq("40")).Return(nil).Once()
				f.balanceRepo.On("SetAvailableTx", mock.Anything, tx, uint64(2), constant.DefaultLocationID, decEq("5")).Return(nil).Once()
				f.productRepo.On("SetCurrentStockTx", mock.Anything, tx, uint64(1), decEq("40")).Return(nil).Once()
				f.productRepo.On("SetCurrentStockTx", mock.Anything, tx, uint64(2), decEq("5")).Return(nil).Once()
				f.auditRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(e *model.AuditLogEntity) bool {
					return e.Action == string(constant.StockActionReconcile) && e.UserID == 1 && e.Role == constant.RoleAdmin &&
						string(e.Details) == `{"reconciled_products":2}`
				})).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.notifier.On("StockChanged", mock.Anything, constant.StockActionReconcile,
					mock.MatchedBy(func(b model.BalanceEntity) bool {
						return b.ProductID == 1 && b.AvailableQuantity.Equal(dec("40")) && b.ReservedQuantity.Equal(dec("10"))
					}),
					mock.MatchedBy(func(b model.BalanceEntity) bool { return b.ProductID == 2 }),
				).Once()
			},
			want: 2,
		},
		{
			name: "success: product with ledger history but no balance row",
			ctx:  context.Background(),
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.ledgerRepo.On("ListProductIDsTx", mock.Anything, tx).Return([]uint64{3}, nil).Once()
				f.balanceRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(3), constant.DefaultLocationID).Return(nil, nil).Once()
				f.balanceRepo.On("CreateTx", mock.Anything, tx, uint64(3), constant.DefaultLocationID).Return(nil).Once()
				f.balanceRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(3), constant.DefaultLocationID).Return(balance(3, "0", "0"), nil).Once()
				f.ledgerRepo.On("SumByProductTx", mock.Anything, tx, uint64(3)).Return(dec("12.5"), nil).Once()
				f.balanceRepo.On("SetAvailableTx", mock.Anything, tx, uint64(3), constant.DefaultLocationID, decEq("12.5")).Return(nil).Once()
				f.productRepo.On("SetCurrentStockTx", mock.Anything, tx, uint64(3), decEq("12.5")).Return(nil).Once()
				f.auditRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(e *model.AuditLogEntity) bool {
					return e.UserID == 0
				})).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.notifier.On("StockChanged", mock.Anything, constant.StockActionReconcile, mock.Anything).Once()
			},
			want: 1,
		},
		{
			name: "success: empty ledger reconciles nothing",
			ctx:  adminCtx,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.ledgerRepo.On("ListProductIDsTx", mock.Anything, tx).Return(nil, nil).Once()
				f.auditRepo.On("InsertTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.notifier.On("StockChanged", mock.Anything, constant.StockActionReconcile).Once()
			},
			want: 0,
		},
		{
			name: "error: negative replayed sum aborts the whole run",
			ctx:  adminCtx,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.ledgerRepo.On("ListProductIDsTx", mock.Anything, tx).Return([]uint64{1, 2}, nil).Once()
				f.balanceRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID).Return(balance(1, "10", "0"), nil).Once()
				f.balanceRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(2), constant.DefaultLocationID).Return(balance(2, "10", "0"), nil).Once()
				f.ledgerRepo.On("SumByProductTx", mock.Anything, tx, uint64(1)).Return(dec("10"), nil).Once()
				f.balanceRepo.On("SetAvailableTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID, decEq("10")).Return(nil).Once()
				f.productRepo.On("SetCurrentStockTx", mock.Anything, tx, uint64(1), decEq("10")).Return(nil).Once()
				f.ledgerRepo.On("SumByProductTx", mock.Anything, tx, uint64(2)).Return(dec("-3"), nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: listing ledger products fails",
			ctx:  adminCtx,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.ledgerRepo.On("ListProductIDsTx", mock.Anything, tx).Return(nil, errors.New("timeout")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				txRepo:      txmocks.NewTxRepository(t),
				balanceRepo: balancemocks.NewBalanceRepository(t),
				ledgerRepo:  ledgermocks.NewLedgerRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				auditRepo:   auditmocks.NewAuditRepository(t),
				notifier:    stockmocks.NewNotifier(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := appreconcile.NewReconcileApp(f.txRepo, f.balanceRepo, f.ledgerRepo, f.productRepo, f.auditRepo, f.notifier, nil)

			got, err := app.ReconcileInventory(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReconcileInventory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.ReconciledCount != tt.want {
				t.Fatalf("ReconcileInventory() = %d, want %d", got.ReconciledCount, tt.want)
			}
		})
	}
}
