package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	adjustmentapp "github.com/muhammadheryan/mfg-stock/application/adjustment"
	reconcileapp "github.com/muhammadheryan/mfg-stock/application/reconcile"
	reservationapp "github.com/muhammadheryan/mfg-stock/application/reservation"
	stockapp "github.com/muhammadheryan/mfg-stock/application/stock"
	userapp "github.com/muhammadheryan/mfg-stock/application/user"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	utilsContext "github.com/muhammadheryan/mfg-stock/utils/context"
	"github.com/muhammadheryan/mfg-stock/utils/errors"
	validatorx "github.com/muhammadheryan/mfg-stock/utils/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp        userapp.UserApp
	ReservationApp reservationapp.ReservationApp
	AdjustmentApp  adjustmentapp.AdjustmentApp
	ReconcileApp   reconcileapp.ReconcileApp
	StockApp       stockapp.StockApp
}

var (
	reserveRoles   = []constant.Role{constant.RoleAdmin, constant.RoleManager, constant.RoleInventory}
	commitRoles    = []constant.Role{constant.RoleAdmin, constant.RoleManager}
	adjustRoles    = []constant.Role{constant.RoleAdmin, constant.RoleInventory}
	reconcileRoles = []constant.Role{constant.RoleAdmin}
	readRoles      = []constant.Role{constant.RoleAdmin, constant.RoleManager, constant.RoleInventory}
)

// NewTransport wires every route. gatherer backs /metrics; internalAPIKey guards /internal/.
func NewTransport(rh *RestHandler, internalAPIKey string, gatherer prometheus.Gatherer) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// protected routes
	stock := mux.PathPrefix("/api/stock").Subrouter()
	stock.Handle("/reserve", guard(rh.ReserveStock, reserveRoles)).Methods(http.MethodPost)
	stock.Handle("/commit", guard(rh.CommitReservation, commitRoles)).Methods(http.MethodPost)
	stock.Handle("/release", guard(rh.ReleaseReservation, reserveRoles)).Methods(http.MethodPost)
	stock.Handle("/adjust", guard(rh.AdjustStock, adjustRoles)).Methods(http.MethodPost)
	stock.Handle("/reconcile", guard(rh.ReconcileInventory, reconcileRoles)).Methods(http.MethodPost)
	stock.Handle("/levels/{product_id:[0-9]+}", guard(rh.GetStockLevel, readRoles)).Methods(http.MethodGet)
	stock.Handle("/ledger", guard(rh.ListLedger, readRoles)).Methods(http.MethodGet)
	stock.Handle("/reservations", guard(rh.ListActiveReservations, readRoles)).Methods(http.MethodGet)

	// scheduler routes
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/stock/reconcile", rh.ReconcileInventory).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}

func guard(h http.HandlerFunc, roles []constant.Role) http.Handler {
	return RequireRoles(roles...)(h)
}

// decodeAndValidate reads a JSON body into req and runs struct validation on it.
func decodeAndValidate(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, err.Error())
	}
	return nil
}

func queryUint(r *http.Request, key string) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, key+" must be a positive integer")
	}
	return v, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, key+" must be an integer")
	}
	return v, nil
}

// Register handler
// @Summary Register user
// @Description Register a new user with one of the roles admin, manager, inventory or operator
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} Response
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} Response
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReserveStock handler
// @Summary Reserve stock
// @Description Earmark free stock of a product for a manufacturing or work order
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ReserveStockRequest true "Reserve Request"
// @Success 200 {object} model.ReserveStockResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/stock/reserve [post]
func (s *RestHandler) ReserveStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReserveStockRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReservationApp.ReserveStock(ctx, utilsContext.GetActor(ctx), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CommitReservation handler
// @Summary Commit reservation
// @Description Consume a reservation and optionally receive the finished product
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CommitReservationRequest true "Commit Request"
// @Success 200 {object} model.StockOperationResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/stock/commit [post]
func (s *RestHandler) CommitReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CommitReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReservationApp.CommitReservation(ctx, utilsContext.GetActor(ctx), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReleaseReservation handler
// @Summary Release reservation
// @Description Return reserved stock to the free pool
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ReleaseReservationRequest true "Release Request"
// @Success 200 {object} model.StockOperationResponse
// @Failure 404 {object} Response
// @Router /api/stock/release [post]
func (s *RestHandler) ReleaseReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReleaseReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReservationApp.ReleaseReservation(ctx, utilsContext.GetActor(ctx), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdjustStock handler
// @Summary Adjust stock
// @Description Apply a signed manual correction to a product's available quantity
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AdjustStockRequest true "Adjust Request"
// @Success 200 {object} model.AdjustStockResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/stock/adjust [post]
func (s *RestHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AdjustStockRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.AdjustmentApp.AdjustStock(ctx, utilsContext.GetActor(ctx), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReconcileInventory handler
// @Summary Reconcile inventory
// @Description Rebuild available quantities from the ledger
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ReconcileResponse
// @Failure 500 {object} Response
// @Router /api/stock/reconcile [post]
func (s *RestHandler) ReconcileInventory(w http.ResponseWriter, r *http.Request) {
	res, err := s.ReconcileApp.ReconcileInventory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetStockLevel handler
// @Summary Stock level
// @Description Available, reserved and free quantity of a product
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Param product_id path int true "Product ID"
// @Success 200 {object} model.StockLevel
// @Failure 404 {object} Response
// @Router /api/stock/levels/{product_id} [get]
func (s *RestHandler) GetStockLevel(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(mux.Vars(r)["product_id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.GetStockLevel(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListLedger handler
// @Summary Ledger history
// @Description Ledger entries newest first
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Param product_id query int false "Product ID"
// @Param limit query int false "Page size, default 50, max 500"
// @Param offset query int false "Offset"
// @Success 200 {object} model.LedgerListResponse
// @Failure 400 {object} Response
// @Router /api/stock/ledger [get]
func (s *RestHandler) ListLedger(w http.ResponseWriter, r *http.Request) {
	var (
		filter model.LedgerFilter
		err    error
	)
	if filter.ProductID, err = queryUint(r, "product_id"); err != nil {
		writeError(w, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.StockApp.ListLedger(r.Context(), &filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListActiveReservations handler
// @Summary Active reservations
// @Description ACTIVE reservations newest first
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Param product_id query int false "Product ID"
// @Success 200 {array} model.ReservationEntity
// @Router /api/stock/reservations [get]
func (s *RestHandler) ListActiveReservations(w http.ResponseWriter, r *http.Request) {
	productID, err := queryUint(r, "product_id")
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.StockApp.ListActiveReservations(r.Context(), &model.ReservationFilter{ProductID: productID})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
