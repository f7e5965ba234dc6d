package reservation

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/application/stock"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	auditrepo "github.com/muhammadheryan/mfg-stock/repository/audit"
	balancerepo "github.com/muhammadheryan/mfg-stock/repository/balance"
	ledgerrepo "github.com/muhammadheryan/mfg-stock/repository/ledger"
	productrepo "github.com/muhammadheryan/mfg-stock/repository/product"
	reservationrepo "github.com/muhammadheryan/mfg-stock/repository/reservation"
	txrepo "github.com/muhammadheryan/mfg-stock/repository/tx"
	"github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"github.com/muhammadheryan/mfg-stock/utils/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReservationApp earmarks stock for production orders and settles the earmark
// either by consuming it (commit) or by giving it back (release).
type ReservationApp interface {
	ReserveStock(ctx context.Context, actor model.Actor, req *model.ReserveStockRequest) (*model.ReserveStockResponse, error)
	CommitReservation(ctx context.Context, actor model.Actor, req *model.CommitReservationRequest) (*model.StockOperationResponse, error)
	ReleaseReservation(ctx context.Context, actor model.Actor, req *model.ReleaseReservationRequest) (*model.StockOperationResponse, error)
}

type reservationAppImpl struct {
	txRepo          txrepo.TxRepository
	balanceRepo     balancerepo.BalanceRepository
	reservationRepo reservationrepo.ReservationRepository
	ledgerRepo      ledgerrepo.LedgerRepository
	productRepo     productrepo.ProductRepository
	auditRepo       auditrepo.AuditRepository
	notifier        stock.Notifier
	metrics         *metrics.StockMetrics
}

func NewReservationApp(
	txRepo txrepo.TxRepository,
	balanceRepo balancerepo.BalanceRepository,
	reservationRepo reservationrepo.ReservationRepository,
	ledgerRepo ledgerrepo.LedgerRepository,
	productRepo productrepo.ProductRepository,
	auditRepo auditrepo.AuditRepository,
	notifier stock.Notifier,
	metrics *metrics.StockMetrics,
) ReservationApp {
	return &reservationAppImpl{
		txRepo:          txRepo,
		balanceRepo:     balanceRepo,
		reservationRepo: reservationRepo,
		ledgerRepo:      ledgerRepo,
		productRepo:     productRepo,
		auditRepo:       auditRepo,
		notifier:        notifier,
		metrics:         metrics,
	}
}

func (s *reservationAppImpl) ReserveStock(ctx context.Context, actor model.Actor, req *model.ReserveStockRequest) (*model.ReserveStockResponse, error) {
	start := time.Now()
	resp, err := s.reserveStock(ctx, actor, req)
	s.metrics.Observe(constant.StockActionReserve, start, err)
	return resp, err
}

func (s *reservationAppImpl) reserveStock(ctx context.Context, actor model.Actor, req *model.ReserveStockRequest) (*model.ReserveStockResponse, error) {
	if req == nil || req.ProductID == 0 || !req.Qty.IsPositive() || !stock.ValidQty(req.Qty) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReserveStock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	bal, err := s.balanceRepo.GetForUpdateTx(ctx, tx, req.ProductID, constant.DefaultLocationID)
	if err != nil {
		logger.Error("[ReserveStock] lock balance", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if bal == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	free := bal.FreeToReserve()
	if free.LessThan(req.Qty) {
		logger.Info("[ReserveStock] insufficient stock", zap.Uint64("product_id", req.ProductID), zap.String("free", free.String()), zap.String("requested", req.Qty.String()))
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock, model.StockShortage{Available: free, Requested: req.Qty})
	}

	res := &model.ReservationEntity{
		ID:         uuid.NewString(),
		ProductID:  req.ProductID,
		Qty:        req.Qty,
		Unit:       req.Unit,
		RefType:    req.RefType,
		RefID:      req.RefID,
		ReservedBy: actor.UserID,
		Status:     constant.ReservationStatusActive,
	}
	if err := s.reservationRepo.InsertTx(ctx, tx, res); err != nil {
		logger.Error("[ReserveStock] insert reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.balanceRepo.AddReservedTx(ctx, tx, req.ProductID, constant.DefaultLocationID, req.Qty); err != nil {
		logger.Error("[ReserveStock] increase reserved", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.audit(ctx, tx, actor, constant.StockActionReserve, map[string]any{
		"reservation_id": res.ID,
		"product_id":     res.ProductID,
		"qty":            res.Qty,
		"unit":           res.Unit,
		"ref_type":       res.RefType,
		"ref_id":         res.RefID,
	}); err != nil {
		logger.Error("[ReserveStock] write audit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReserveStock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	bal.ReservedQuantity = bal.ReservedQuantity.Add(req.Qty)
	s.notifier.StockChanged(ctx, constant.StockActionReserve, *bal)

	return &model.ReserveStockResponse{ReservationID: res.ID}, nil
}

func (s *reservationAppImpl) CommitReservation(ctx context.Context, actor model.Actor, req *model.CommitReservationRequest) (*model.StockOperationResponse, error) {
	start := time.Now()
	resp, err := s.commitReservation(ctx, actor, req)
	s.metrics.Observe(constant.StockActionCommit, start, err)
	return resp, err
}

func (s *reservationAppImpl) commitReservation(ctx context.Context, actor model.Actor, req *model.CommitReservationRequest) (*model.StockOperationResponse, error) {
	if req == nil || req.ReservationID == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if req.FinishedQty != nil && (req.FinishedQty.IsNegative() || !stock.ValidQty(*req.FinishedQty)) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	var finishedID uint64
	finishedQty := decimal.Zero
	if req.FinishedProductID != nil && *req.FinishedProductID != 0 && req.FinishedQty != nil && req.FinishedQty.IsPositive() {
		finishedID = *req.FinishedProductID
		finishedQty = *req.FinishedQty
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CommitReservation] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	res, err := s.reservationRepo.GetActiveForUpdateTx(ctx, tx, req.ReservationID)
	if err != nil {
		logger.Error("[CommitReservation] lock reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if res == nil {
		return nil, errors.SetCustomError(constant.ErrReservationNotFound)
	}

	if finishedID != 0 {
		product, err := s.productRepo.GetByIDTx(ctx, tx, finishedID)
		if err != nil {
			logger.Error("[CommitReservation] get finished product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if product == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
	}

	lockIDs := []uint64{res.ProductID}
	if finishedID != 0 {
		lockIDs = append(lockIDs, finishedID)
	}
	balances, err := stock.LockBalances(ctx, s.balanceRepo, tx, finishedID != 0, lockIDs...)
	if err != nil {
		logger.Error("[CommitReservation] lock balances", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	bal, ok := balances[res.ProductID]
	if !ok {
		logger.Error("[CommitReservation] reservation without balance row", zap.String("reservation_id", res.ID), zap.Uint64("product_id", res.ProductID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if bal.AvailableQuantity.LessThan(res.Qty) {
		logger.Info("[CommitReservation] insufficient stock", zap.String("reservation_id", res.ID), zap.String("available", bal.AvailableQuantity.String()), zap.String("requested", res.Qty.String()))
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock, model.StockShortage{Available: bal.AvailableQuantity, Requested: res.Qty})
	}
	if finishedID != 0 {
		after := balances[finishedID].AvailableQuantity.Add(finishedQty)
		if finishedID == res.ProductID {
			after = after.Sub(res.Qty)
		}
		if !stock.ValidQty(after) {
			logger.Info("[CommitReservation] finished balance out of range", zap.Uint64("product_id", finishedID), zap.String("balance_after", after.String()))
			return nil, errors.SetCustomError(constant.ErrInvalidRequest)
		}
	}

	if err := s.settle(ctx, tx, res, bal, constant.ReservationStatusCommitted); err != nil {
		logger.Error("[CommitReservation] settle reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	bal.AvailableQuantity = bal.AvailableQuantity.Sub(res.Qty)
	if err := s.balanceRepo.AddAvailableTx(ctx, tx, res.ProductID, constant.DefaultLocationID, res.Qty.Neg()); err != nil {
		logger.Error("[CommitReservation] consume available", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.productRepo.SetCurrentStockTx(ctx, tx, res.ProductID, bal.AvailableQuantity); err != nil {
		logger.Error("[CommitReservation] mirror current stock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	changed := []model.BalanceEntity{*bal}
	if finishedID != 0 {
		fbal := balances[finishedID]
		if err := s.receiveFinished(ctx, tx, actor, res, fbal, finishedQty); err != nil {
			logger.Error("[CommitReservation] receive finished product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if finishedID == res.ProductID {
			changed[0] = *fbal
		} else {
			changed = append(changed, *fbal)
		}
	}

	details := map[string]any{
		"reservation_id": res.ID,
		"product_id":     res.ProductID,
		"qty":            res.Qty,
	}
	if finishedID != 0 {
		details["finished_product_id"] = finishedID
		details["finished_qty"] = finishedQty
	}
	if err := s.audit(ctx, tx, actor, constant.StockActionCommit, details); err != nil {
		logger.Error("[CommitReservation] write audit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CommitReservation] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.notifier.StockChanged(ctx, constant.StockActionCommit, changed...)
	return &model.StockOperationResponse{Success: true}, nil
}

// receiveFinished books the output of a production order into stock. fbal is updated in place.
func (s *reservationAppImpl) receiveFinished(ctx context.Context, tx *sqlx.Tx, actor model.Actor, res *model.ReservationEntity, fbal *model.BalanceEntity, qty decimal.Decimal) error {
	balanceAfter := fbal.AvailableQuantity.Add(qty)
	refID := res.RefID
	if _, err := s.ledgerRepo.AppendTx(ctx, tx, &model.LedgerEntryEntity{
		ProductID:     fbal.ProductID,
		TxnType:       constant.TxnTypeIn,
		Quantity:      qty,
		BalanceAfter:  balanceAfter,
		ReferenceType: constant.RefTypeMO,
		ReferenceID:   &refID,
		UserID:        actor.UserID,
		Notes:         constant.ProductionCompletionNote,
	}); err != nil {
		return err
	}
	if err := s.balanceRepo.AddAvailableTx(ctx, tx, fbal.ProductID, constant.DefaultLocationID, qty); err != nil {
		return err
	}
	if err := s.productRepo.SetCurrentStockTx(ctx, tx, fbal.ProductID, balanceAfter); err != nil {
		return err
	}
	fbal.AvailableQuantity = balanceAfter
	return nil
}

func (s *reservationAppImpl) ReleaseReservation(ctx context.Context, actor model.Actor, req *model.ReleaseReservationRequest) (*model.StockOperationResponse, error) {
	start := time.Now()
	resp, err := s.releaseReservation(ctx, actor, req)
	s.metrics.Observe(constant.StockActionRelease, start, err)
	return resp, err
}

func (s *reservationAppImpl) releaseReservation(ctx context.Context, actor model.Actor, req *model.ReleaseReservationRequest) (*model.StockOperationResponse, error) {
	if req == nil || req.ReservationID == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReleaseReservation] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	res, err := s.reservationRepo.GetActiveForUpdateTx(ctx, tx, req.ReservationID)
	if err != nil {
		logger.Error("[ReleaseReservation] lock reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if res == nil {
		return nil, errors.SetCustomError(constant.ErrReservationNotFound)
	}

	bal, err := s.balanceRepo.GetForUpdateTx(ctx, tx, res.ProductID, constant.DefaultLocationID)
	if err != nil {
		logger.Error("[ReleaseReservation] lock balance", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if bal == nil {
		logger.Error("[ReleaseReservation] reservation without balance row", zap.String("reservation_id", res.ID), zap.Uint64("product_id", res.ProductID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.settle(ctx, tx, res, bal, constant.ReservationStatusReleased); err != nil {
		logger.Error("[ReleaseReservation] settle reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.audit(ctx, tx, actor, constant.StockActionRelease, map[string]any{
		"reservation_id": res.ID,
		"product_id":     res.ProductID,
		"qty":            res.Qty,
		"reason":         req.Reason,
	}); err != nil {
		logger.Error("[ReleaseReservation] write audit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReleaseReservation] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.notifier.StockChanged(ctx, constant.StockActionRelease, *bal)
	return &model.StockOperationResponse{Success: true}, nil
}

var errReservedUnderflow = stderrors.New("reserved quantity lower than reservation")

// settle moves an active reservation to its terminal status and drops its earmark.
// bal is updated in place.
func (s *reservationAppImpl) settle(ctx context.Context, tx *sqlx.Tx, res *model.ReservationEntity, bal *model.BalanceEntity, to constant.ReservationStatus) error {
	if bal.ReservedQuantity.LessThan(res.Qty) {
		return errReservedUnderflow
	}
	if err := s.reservationRepo.UpdateStatusTx(ctx, tx, res.ID, constant.ReservationStatusActive, to); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return stderrors.New("reservation left ACTIVE state while locked")
		}
		return err
	}
	if err := s.balanceRepo.AddReservedTx(ctx, tx, res.ProductID, constant.DefaultLocationID, res.Qty.Neg()); err != nil {
		return err
	}
	bal.ReservedQuantity = bal.ReservedQuantity.Sub(res.Qty)
	return nil
}

func (s *reservationAppImpl) audit(ctx context.Context, tx *sqlx.Tx, actor model.Actor, action constant.StockAction, details map[string]any) error {
	entry, err := stock.NewAuditEntry(actor, action, details)
	if err != nil {
		return err
	}
	return s.auditRepo.InsertTx(ctx, tx, entry)
}
