package stock_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/application/stock"
	"github.com/muhammadheryan/mfg-stock/cmd/config"
	"github.com/muhammadheryan/mfg-stock/constant"
	rabbitmocks "github.com/muhammadheryan/mfg-stock/mocks/thirdparty/rabbitmq"
	balancemocks "github.com/muhammadheryan/mfg-stock/mocks/repository/balance"
	ledgermocks "github.com/muhammadheryan/mfg-stock/mocks/repository/ledger"
	redismocks "github.com/muhammadheryan/mfg-stock/mocks/repository/redis"
	reservationmocks "github.com/muhammadheryan/mfg-stock/mocks/repository/reservation"
	"github.com/muhammadheryan/mfg-stock/model"
	cerr "github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	return &config.Config{Stock: config.StockConfig{LevelCacheTTL: time.Minute, EventDedupeTTL: time.Hour}}
}

func TestStockApp_GetStockLevel(t *testing.T) {
	type fields struct {
		balanceRepo *balancemocks.BalanceRepository
		redisRepo   *redismocks.RedisRepository
	}
	tests := []struct {
		name      string
		productID uint64
		mockCall  func(f fields)
		wantFree  string
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name:      "success: cache miss loads balance and fills cache",
			productID: 1,
			mockCall: func(f fields) {
				f.redisRepo.On("Version", mock.Anything, "stock:level:1").Return("3", nil).Once()
				f.redisRepo.On("Get", mock.Anything, "stock:level:1").Return("", nil).Once()
				f.balanceRepo.On("Get", mock.Anything, uint64(1), constant.DefaultLocationID).Return(&model.BalanceEntity{
					ProductID: 1, LocationID: 1, AvailableQuantity: dec("100"), ReservedQuantity: dec("30"),
				}, nil).Once()
				f.redisRepo.On("SetIfVersion", mock.Anything, "stock:level:1", mock.AnythingOfType("string"), "3", time.Minute).Return(true, nil).Once()
			},
			wantFree: "70",
		},
		{
			name:      "success: level changed during read is returned but not cached",
			productID: 1,
			mockCall: func(f fields) {
				f.redisRepo.On("Version", mock.Anything, "stock:level:1").Return("", nil).Once()
				f.redisRepo.On("Get", mock.Anything, "stock:level:1").Return("", nil).Once()
				f.balanceRepo.On("Get", mock.Anything, uint64(1), constant.DefaultLocationID).Return(&model.BalanceEntity{
					ProductID: 1, LocationID: 1, AvailableQuantity: dec("100"), ReservedQuantity: dec("0"),
				}, nil).Once()
				f.redisRepo.On("SetIfVersion", mock.Anything, "stock:level:1", mock.AnythingOfType("string"), "", time.Minute).Return(false, nil).Once()
			},
			wantFree: "100",
		},
		{
			name:      "success: unreadable version skips cache write",
			productID: 5,
			mockCall: func(f fields) {
				f.redisRepo.On("Version", mock.Anything, "stock:level:5").Return("", errors.New("timeout")).Once()
				f.redisRepo.On("Get", mock.Anything, "stock:level:5").Return("", nil).Once()
				f.balanceRepo.On("Get", mock.Anything, uint64(5), constant.DefaultLocationID).Return(&model.BalanceEntity{
					ProductID: 5, LocationID: 1, AvailableQuantity: dec("8"), ReservedQuantity: dec("2"),
				}, nil).Once()
			},
			wantFree: "6",
		},
		{
			name:      "success: cache hit skips database",
			productID: 1,
			mockCall: func(f fields) {
				raw, _ := json.Marshal(model.StockLevel{ProductID: 1, LocationID: 1, AvailableQuantity: dec("10"), ReservedQuantity: dec("4"), FreeQuantity: dec("6")})
				f.redisRepo.On("Version", mock.Anything, "stock:level:1").Return("1", nil).Once()
				f.redisRepo.On("Get", mock.Anything, "stock:level:1").Return(string(raw), nil).Once()
			},
			wantFree: "6",
		},
		{
			name:      "success: redis failure falls back to database",
			productID: 2,
			mockCall: func(f fields) {
				f.redisRepo.On("Version", mock.Anything, "stock:level:2").Return("", nil).Once()
				f.redisRepo.On("Get", mock.Anything, "stock:level:2").Return("", errors.New("connection refused")).Once()
				f.balanceRepo.On("Get", mock.Anything, uint64(2), constant.DefaultLocationID).Return(&model.BalanceEntity{
					ProductID: 2, LocationID: 1, AvailableQuantity: dec("3"), ReservedQuantity: dec("0"),
				}, nil).Once()
				f.redisRepo.On("SetIfVersion", mock.Anything, "stock:level:2", mock.AnythingOfType("string"), "", time.Minute).Return(false, errors.New("connection refused")).Once()
			},
			wantFree: "3",
		},
		{
			name:      "error: no balance row",
			productID: 9,
			mockCall: func(f fields) {
				f.redisRepo.On("Version", mock.Anything, "stock:level:9").Return("", nil).Once()
				f.redisRepo.On("Get", mock.Anything, "stock:level:9").Return("", nil).Once()
				f.balanceRepo.On("Get", mock.Anything, uint64(9), constant.DefaultLocationID).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:      "error: zero product id",
			productID: 0,
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				balanceRepo: balancemocks.NewBalanceRepository(t),
				redisRepo:   redismocks.NewRedisRepository(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := stock.NewStockApp(testConfig(), f.balanceRepo, ledgermocks.NewLedgerRepository(t), reservationmocks.NewReservationRepository(t), f.redisRepo)

			got, err := app.GetStockLevel(context.Background(), tt.productID)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, cerr.SetCustomError(tt.errCode))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.FreeQuantity.Equal(dec(tt.wantFree)), "free = %s", got.FreeQuantity)
		})
	}
}

func TestStockApp_ListLedger(t *testing.T) {
	tests := []struct {
		name      string
		filter    *model.LedgerFilter
		wantLimit int
		wantErr   bool
	}{
		{name: "default limit", filter: &model.LedgerFilter{ProductID: 1}, wantLimit: constant.LedgerDefaultLimit},
		{name: "nil filter", filter: nil, wantLimit: constant.LedgerDefaultLimit},
		{name: "limit capped", filter: &model.LedgerFilter{Limit: 10000}, wantLimit: constant.LedgerMaxLimit},
		{name: "explicit limit", filter: &model.LedgerFilter{Limit: 5, Offset: 10}, wantLimit: 5},
		{name: "negative offset", filter: &model.LedgerFilter{Offset: -1}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ledgerRepo := ledgermocks.NewLedgerRepository(t)
			if !tt.wantErr {
				ledgerRepo.On("List", mock.Anything, mock.MatchedBy(func(f *model.LedgerFilter) bool {
					return f.Limit == tt.wantLimit
				})).Return([]model.LedgerEntryEntity{{ID: 1, ProductID: 1, TxnType: constant.TxnTypeIn}}, nil).Once()
			}
			app := stock.NewStockApp(testConfig(), balancemocks.NewBalanceRepository(t), ledgerRepo, reservationmocks.NewReservationRepository(t), redismocks.NewRedisRepository(t))

			got, err := app.ListLedger(context.Background(), tt.filter)
			if tt.wantErr {
				assert.ErrorIs(t, err, cerr.SetCustomError(constant.ErrInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Len(t, got.Items, 1)
		})
	}
}

func TestStockApp_ListActiveReservations(t *testing.T) {
	reservationRepo := reservationmocks.NewReservationRepository(t)
	reservationRepo.On("ListActive", mock.Anything, &model.ReservationFilter{ProductID: 4}).Return(nil, nil).Once()
	reservationRepo.On("ListActive", mock.Anything, &model.ReservationFilter{}).Return(nil, errors.New("boom")).Once()
	app := stock.NewStockApp(testConfig(), balancemocks.NewBalanceRepository(t), ledgermocks.NewLedgerRepository(t), reservationRepo, redismocks.NewRedisRepository(t))

	got, err := app.ListActiveReservations(context.Background(), &model.ReservationFilter{ProductID: 4})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = app.ListActiveReservations(context.Background(), nil)
	assert.ErrorIs(t, err, cerr.SetCustomError(constant.ErrInternal))
}

func TestNotifier_StockChanged(t *testing.T) {
	t.Run("invalidates cache and publishes one event per balance", func(t *testing.T) {
		redisRepo := redismocks.NewRedisRepository(t)
		publisher := rabbitmocks.NewStockEventPublisher(t)
		redisRepo.On("Invalidate", mock.Anything, "stock:level:1", "stock:level:2").Return(nil).Once()
		publisher.On("PublishStockMovement", mock.Anything, mock.MatchedBy(func(m model.StockMovementMessage) bool {
			return m.ProductID == 1 && m.Action == constant.StockActionCommit && m.EventID != "" && m.AvailableQuantity.Equal(dec("70"))
		})).Return(nil).Once()
		publisher.On("PublishStockMovement", mock.Anything, mock.MatchedBy(func(m model.StockMovementMessage) bool {
			return m.ProductID == 2
		})).Return(errors.New("channel closed")).Once()

		n := stock.NewNotifier(redisRepo, publisher)
		n.StockChanged(context.Background(), constant.StockActionCommit,
			model.BalanceEntity{ProductID: 1, AvailableQuantity: dec("70")},
			model.BalanceEntity{ProductID: 2, AvailableQuantity: dec("15")},
		)
	})

	t.Run("publisher disabled", func(t *testing.T) {
		redisRepo := redismocks.NewRedisRepository(t)
		redisRepo.On("Invalidate", mock.Anything, "stock:level:3").Return(errors.New("redis down")).Once()

		n := stock.NewNotifier(redisRepo, nil)
		n.StockChanged(context.Background(), constant.StockActionAdjust, model.BalanceEntity{ProductID: 3})
	})

	t.Run("cancelled request context still publishes", func(t *testing.T) {
		redisRepo := redismocks.NewRedisRepository(t)
		publisher := rabbitmocks.NewStockEventPublisher(t)
		redisRepo.On("Invalidate", mock.Anything, "stock:level:4").Return(nil).Once()
		publisher.On("PublishStockMovement", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), mock.Anything).Return(nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stock.NewNotifier(redisRepo, publisher).StockChanged(ctx, constant.StockActionRelease, model.BalanceEntity{ProductID: 4})
	})
}

func TestLockBalances(t *testing.T) {
	t.Run("locks in ascending order and skips duplicates", func(t *testing.T) {
		repo := balancemocks.NewBalanceRepository(t)
		tx := &sqlx.Tx{}
		var order []uint64
		for _, id := range []uint64{2, 7} {
			id := id
			repo.On("GetForUpdateTx", mock.Anything, tx, id, constant.DefaultLocationID).
				Run(func(args mock.Arguments) { order = append(order, id) }).
				Return(&model.BalanceEntity{ProductID: id}, nil).Once()
		}

		got, err := stock.LockBalances(context.Background(), repo, tx, false, 7, 2, 7)
		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 7}, order)
		assert.Len(t, got, 2)
	})

	t.Run("missing row without create is absent", func(t *testing.T) {
		repo := balancemocks.NewBalanceRepository(t)
		tx := &sqlx.Tx{}
		repo.On("GetForUpdateTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID).Return(nil, nil).Once()

		got, err := stock.LockBalances(context.Background(), repo, tx, false, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("create failure is returned", func(t *testing.T) {
		repo := balancemocks.NewBalanceRepository(t)
		tx := &sqlx.Tx{}
		repo.On("GetForUpdateTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID).Return(nil, nil).Once()
		repo.On("CreateTx", mock.Anything, tx, uint64(1), constant.DefaultLocationID).Return(errors.New("fk violation")).Once()

		_, err := stock.LockBalances(context.Background(), repo, tx, true, 1)
		assert.EqualError(t, err, "fk violation")
	})
}

func TestNewAuditEntry(t *testing.T) {
	entry, err := stock.NewAuditEntry(model.Actor{UserID: 5, Role: constant.RoleInventory}, constant.StockActionAdjust, map[string]any{"qty": dec("-2.5")})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, uint64(5), entry.UserID)
	assert.Equal(t, constant.RoleInventory, entry.Role)
	assert.Equal(t, "ADJUST", entry.Action)
	assert.JSONEq(t, `{"qty":"-2.5"}`, string(entry.Details))
}
