package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/muhammadheryan/mfg-stock/constant"
	adjustmentmocks "github.com/muhammadheryan/mfg-stock/mocks/application/adjustment"
	reconcilemocks "github.com/muhammadheryan/mfg-stock/mocks/application/reconcile"
	reservationmocks "github.com/muhammadheryan/mfg-stock/mocks/application/reservation"
	stockmocks "github.com/muhammadheryan/mfg-stock/mocks/application/stock"
	usermocks "github.com/muhammadheryan/mfg-stock/mocks/application/user"
	"github.com/muhammadheryan/mfg-stock/model"
	utilsContext "github.com/muhammadheryan/mfg-stock/utils/context"
	"github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	internalKey   = "scheduler-key"
	reservationID = "6f1c2f0e-7c4b-4c1e-9a57-0c7d1f3c2a11"
)

type fields struct {
	userApp        *usermocks.UserApp
	reservationApp *reservationmocks.ReservationApp
	adjustmentApp  *adjustmentmocks.AdjustmentApp
	reconcileApp   *reconcilemocks.ReconcileApp
	stockApp       *stockmocks.StockApp
}

func newFields(t *testing.T) fields {
	return fields{
		userApp:        usermocks.NewUserApp(t),
		reservationApp: reservationmocks.NewReservationApp(t),
		adjustmentApp:  adjustmentmocks.NewAdjustmentApp(t),
		reconcileApp:   reconcilemocks.NewReconcileApp(t),
		stockApp:       stockmocks.NewStockApp(t),
	}
}

func (f fields) handler() http.Handler {
	return NewTransport(&RestHandler{
		UserApp:        f.userApp,
		ReservationApp: f.reservationApp,
		AdjustmentApp:  f.adjustmentApp,
		ReconcileApp:   f.reconcileApp,
		StockApp:       f.stockApp,
	}, internalKey, prometheus.NewRegistry())
}

// session makes token resolve to a session with role.
func (f fields) session(token string, userID uint64, role constant.Role) {
	f.userApp.On("ValidateToken", mock.Anything, token).Return(&model.Session{UserID: userID, Role: role}, nil).Once()
}

type reply struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, target, token, body string) (*httptest.ResponseRecorder, reply) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out reply
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestTransport_ReserveStock(t *testing.T) {
	body := `{"product_id":1,"qty":"30","unit":"pcs","ref_type":"MO","ref_id":1001}`
	tests := []struct {
		name       string
		token      string
		body       string
		mockCall   func(f fields)
		wantStatus int
		wantCode   string
		check      func(t *testing.T, data json.RawMessage)
	}{
		{
			name:  "success",
			token: "inv",
			body:  body,
			mockCall: func(f fields) {
				f.session("inv", 7, constant.RoleInventory)
				f.reservationApp.On("ReserveStock", mock.Anything, model.Actor{UserID: 7, Role: constant.RoleInventory},
					mock.MatchedBy(func(r *model.ReserveStockRequest) bool {
						return r.ProductID == 1 && r.Qty.Equal(decimal.NewFromInt(30)) && r.RefType == "MO" && r.RefID == 1001
					})).Return(&model.ReserveStockResponse{ReservationID: reservationID}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCode:   "0000",
			check: func(t *testing.T, data json.RawMessage) {
				assert.JSONEq(t, `{"reservation_id":"`+reservationID+`"}`, string(data))
			},
		},
		{
			name:  "insufficient stock carries shortage detail",
			token: "inv",
			body:  body,
			mockCall: func(f fields) {
				f.session("inv", 7, constant.RoleInventory)
				f.reservationApp.On("ReserveStock", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock, model.StockShortage{
						Available: decimal.NewFromInt(70), Requested: decimal.NewFromInt(80),
					})).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0008",
			check: func(t *testing.T, data json.RawMessage) {
				assert.JSONEq(t, `{"available":"70","requested":"80"}`, string(data))
			},
		},
		{
			name:       "missing token",
			body:       body,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "0004",
		},
		{
			name:  "expired token",
			token: "stale",
			body:  body,
			mockCall: func(f fields) {
				f.userApp.On("ValidateToken", mock.Anything, "stale").Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "0004",
		},
		{
			name:  "operator may not reserve",
			token: "op",
			body:  body,
			mockCall: func(f fields) {
				f.session("op", 9, constant.RoleOperator)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "0007",
		},
		{
			name:  "non positive qty is rejected before the app",
			token: "inv",
			body:  `{"product_id":1,"qty":"0","unit":"pcs","ref_type":"MO","ref_id":1001}`,
			mockCall: func(f fields) {
				f.session("inv", 7, constant.RoleInventory)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
		{
			name:  "malformed json",
			token: "inv",
			body:  `{"product_id":`,
			mockCall: func(f fields) {
				f.session("inv", 7, constant.RoleInventory)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			rec, out := do(t, f.handler(), http.MethodPost, "/api/stock/reserve", tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, out.Code)
			if tt.check != nil {
				tt.check(t, out.Data)
			}
		})
	}
}

func TestTransport_SettleReservation(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		token      string
		role       constant.Role
		body       string
		mockCall   func(f fields)
		wantStatus int
		wantCode   string
	}{
		{
			name:  "manager commits with finished product",
			path:  "/api/stock/commit",
			token: "mgr",
			role:  constant.RoleManager,
			body:  `{"reservation_id":"` + reservationID + `","finished_product_id":2,"finished_qty":8}`,
			mockCall: func(f fields) {
				f.reservationApp.On("CommitReservation", mock.Anything, mock.Anything,
					mock.MatchedBy(func(r *model.CommitReservationRequest) bool {
						return r.ReservationID == reservationID && r.FinishedProductID != nil && *r.FinishedProductID == 2 &&
							r.FinishedQty != nil && r.FinishedQty.Equal(decimal.NewFromInt(8))
					})).Return(&model.StockOperationResponse{Success: true}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCode:   "0000",
		},
		{
			name:       "inventory may not commit",
			path:       "/api/stock/commit",
			token:      "inv",
			role:       constant.RoleInventory,
			body:       `{"reservation_id":"` + reservationID + `"}`,
			wantStatus: http.StatusForbidden,
			wantCode:   "0007",
		},
		{
			name:  "settled reservation is not found",
			path:  "/api/stock/commit",
			token: "adm",
			role:  constant.RoleAdmin,
			body:  `{"reservation_id":"` + reservationID + `"}`,
			mockCall: func(f fields) {
				f.reservationApp.On("CommitReservation", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.SetCustomError(constant.ErrReservationNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "0009",
		},
		{
			name:       "reservation id must be a uuid",
			path:       "/api/stock/release",
			token:      "inv",
			role:       constant.RoleInventory,
			body:       `{"reservation_id":"R1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
		{
			name:  "inventory releases",
			path:  "/api/stock/release",
			token: "inv",
			role:  constant.RoleInventory,
			body:  `{"reservation_id":"` + reservationID + `","reason":"order cancelled"}`,
			mockCall: func(f fields) {
				f.reservationApp.On("ReleaseReservation", mock.Anything, model.Actor{UserID: 3, Role: constant.RoleInventory},
					&model.ReleaseReservationRequest{ReservationID: reservationID, Reason: "order cancelled"}).
					Return(&model.StockOperationResponse{Success: true}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCode:   "0000",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			f.session(tt.token, 3, tt.role)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			rec, out := do(t, f.handler(), http.MethodPost, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, out.Code)
		})
	}
}

func TestTransport_AdjustStock(t *testing.T) {
	tests := []struct {
		name       string
		role       constant.Role
		body       string
		mockCall   func(f fields)
		wantStatus int
	}{
		{
			name: "negative correction",
			role: constant.RoleInventory,
			body: `{"product_id":1,"qty":-70,"reason":"write-off"}`,
			mockCall: func(f fields) {
				f.adjustmentApp.On("AdjustStock", mock.Anything, mock.Anything, mock.MatchedBy(func(r *model.AdjustStockRequest) bool {
					return r.Qty.Equal(decimal.NewFromInt(-70)) && r.Reason == "write-off"
				})).Return(&model.AdjustStockResponse{NewBalance: decimal.Zero}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "zero qty",
			role:       constant.RoleAdmin,
			body:       `{"product_id":1,"qty":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "manager may not adjust",
			role:       constant.RoleManager,
			body:       `{"product_id":1,"qty":5}`,
			wantStatus: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			f.session("tok", 4, tt.role)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			rec, _ := do(t, f.handler(), http.MethodPost, "/api/stock/adjust", "tok", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTransport_Reconcile(t *testing.T) {
	systemCtx := mock.MatchedBy(func(ctx context.Context) bool {
		return utilsContext.GetActor(ctx).UserID == 0
	})
	adminCtx := mock.MatchedBy(func(ctx context.Context) bool {
		actor := utilsContext.GetActor(ctx)
		return actor.UserID == 1 && actor.Role == constant.RoleAdmin
	})

	t.Run("admin route carries the session", func(t *testing.T) {
		f := newFields(t)
		f.session("adm", 1, constant.RoleAdmin)
		f.reconcileApp.On("ReconcileInventory", adminCtx).Return(&model.ReconcileResponse{ReconciledCount: 4}, nil).Once()

		rec, out := do(t, f.handler(), http.MethodPost, "/api/stock/reconcile", "adm", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"reconciled_products":4}`, string(out.Data))
	})

	t.Run("manager is forbidden", func(t *testing.T) {
		f := newFields(t)
		f.session("mgr", 2, constant.RoleManager)

		rec, _ := do(t, f.handler(), http.MethodPost, "/api/stock/reconcile", "mgr", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("internal route runs as system", func(t *testing.T) {
		f := newFields(t)
		f.reconcileApp.On("ReconcileInventory", systemCtx).Return(&model.ReconcileResponse{ReconciledCount: 0}, nil).Once()

		rec, _ := do(t, f.handler(), http.MethodPost, "/internal/v1/stock/reconcile", internalKey, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("internal route rejects a wrong key", func(t *testing.T) {
		f := newFields(t)

		rec, out := do(t, f.handler(), http.MethodPost, "/internal/v1/stock/reconcile", "guess", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "0007", out.Code)
	})

	t.Run("corrupted ledger is a server error", func(t *testing.T) {
		f := newFields(t)
		f.reconcileApp.On("ReconcileInventory", mock.Anything).Return(nil, errors.SetCustomError(constant.ErrInternal)).Once()

		rec, out := do(t, f.handler(), http.MethodPost, "/internal/v1/stock/reconcile", internalKey, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "0001", out.Code)
	})
}

func TestTransport_Queries(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		mockCall   func(f fields)
		wantStatus int
	}{
		{
			name:   "stock level",
			target: "/api/stock/levels/12",
			mockCall: func(f fields) {
				f.stockApp.On("GetStockLevel", mock.Anything, uint64(12)).Return(&model.StockLevel{ProductID: 12}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown product",
			target: "/api/stock/levels/404",
			mockCall: func(f fields) {
				f.stockApp.On("GetStockLevel", mock.Anything, uint64(404)).Return(nil, errors.SetCustomError(constant.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "ledger page",
			target: "/api/stock/ledger?product_id=3&limit=10&offset=20",
			mockCall: func(f fields) {
				f.stockApp.On("ListLedger", mock.Anything, &model.LedgerFilter{ProductID: 3, Limit: 10, Offset: 20}).
					Return(&model.LedgerListResponse{Items: []model.LedgerEntryEntity{}, Limit: 10, Offset: 20}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "ledger with bad limit",
			target:     "/api/stock/ledger?limit=ten",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "active reservations",
			target: "/api/stock/reservations?product_id=3",
			mockCall: func(f fields) {
				f.stockApp.On("ListActiveReservations", mock.Anything, &model.ReservationFilter{ProductID: 3}).
					Return([]model.ReservationEntity{}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			f.session("mgr", 2, constant.RoleManager)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			rec, _ := do(t, f.handler(), http.MethodGet, tt.target, "mgr", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTransport_PublicRoutes(t *testing.T) {
	f := newFields(t)
	f.userApp.On("Login", mock.Anything, &model.LoginRequest{Identifier: "rina@plant.id", Password: "secret1"}).
		Return(&model.LoginResponse{Name: "Rina", Role: constant.RoleInventory, Token: "jwt"}, nil).Once()
	h := f.handler()

	rec, out := do(t, h, http.MethodPost, "/login", "", `{"identifier":"rina@plant.id","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0000", out.Code)

	rec, _ = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}
