package adjustment

import (
	"context"
	"time"

	"github.com/muhammadheryan/mfg-stock/application/stock"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	auditrepo "github.com/muhammadheryan/mfg-stock/repository/audit"
	balancerepo "github.com/muhammadheryan/mfg-stock/repository/balance"
	ledgerrepo "github.com/muhammadheryan/mfg-stock/repository/ledger"
	productrepo "github.com/muhammadheryan/mfg-stock/repository/product"
	txrepo "github.com/muhammadheryan/mfg-stock/repository/tx"
	"github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"github.com/muhammadheryan/mfg-stock/utils/metrics"
	"go.uber.org/zap"
)

type AdjustmentApp interface {
	AdjustStock(ctx context.Context, actor model.Actor, req *model.AdjustStockRequest) (*model.AdjustStockResponse, error)
}

type adjustmentAppImpl struct {
	txRepo      txrepo.TxRepository
	balanceRepo balancerepo.BalanceRepository
	ledgerRepo  ledgerrepo.LedgerRepository
	productRepo productrepo.ProductRepository
	auditRepo   auditrepo.AuditRepository
	notifier    stock.Notifier
	metrics     *metrics.StockMetrics
}

func NewAdjustmentApp(txRepo txrepo.TxRepository, balanceRepo balancerepo.BalanceRepository, ledgerRepo ledgerrepo.LedgerRepository, productRepo productrepo.ProductRepository, auditRepo auditrepo.AuditRepository, notifier stock.Notifier, metrics *metrics.StockMetrics) AdjustmentApp {
	return &adjustmentAppImpl{
		txRepo:      txRepo,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
		metrics:     metrics,
	}
}

// AdjustStock applies a signed manual correction to a product's available quantity and
// records it in the ledger. A product without a balance row starts from zero.
func (s *adjustmentAppImpl) AdjustStock(ctx context.Context, actor model.Actor, req *model.AdjustStockRequest) (*model.AdjustStockResponse, error) {
	start := time.Now()
	resp, err := s.adjustStock(ctx, actor, req)
	s.metrics.Observe(constant.StockActionAdjust, start, err)
	return resp, err
}

func (s *adjustmentAppImpl) adjustStock(ctx context.Context, actor model.Actor, req *model.AdjustStockRequest) (*model.AdjustStockResponse, error) {
	if req == nil || req.ProductID == 0 || req.Qty.IsZero() || !stock.ValidQty(req.Qty) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AdjustStock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	product, err := s.productRepo.GetByIDTx(ctx, tx, req.ProductID)
	if err != nil {
		logger.Error("[AdjustStock] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	balances, err := stock.LockBalances(ctx, s.balanceRepo, tx, true, req.ProductID)
	if err != nil {
		logger.Error("[AdjustStock] lock balance", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	bal, ok := balances[req.ProductID]
	if !ok {
		logger.Error("[AdjustStock] balance row missing after create", zap.Uint64("product_id", req.ProductID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	newBalance := bal.AvailableQuantity.Add(req.Qty)
	if newBalance.IsNegative() {
		logger.Info("[AdjustStock] insufficient stock", zap.Uint64("product_id", req.ProductID), zap.String("available", bal.AvailableQuantity.String()), zap.String("qty", req.Qty.String()))
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock, model.StockShortage{Available: bal.AvailableQuantity, Requested: req.Qty.Abs()})
	}

	if !stock.ValidQty(newBalance) {
		logger.Info("[AdjustStock] balance out of range", zap.Uint64("product_id", req.ProductID), zap.String("new_balance", newBalance.String()))
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	txnType := constant.TxnTypeIn
	if req.Qty.IsNegative() {
		txnType = constant.TxnTypeOut
	}
	if _, err := s.ledgerRepo.AppendTx(ctx, tx, &model.LedgerEntryEntity{
		ProductID:     req.ProductID,
		TxnType:       txnType,
		Quantity:      req.Qty.Abs(),
		BalanceAfter:  newBalance,
		ReferenceType: constant.RefTypeManual,
		UserID:        actor.UserID,
		Notes:         req.Reason,
	}); err != nil {
		logger.Error("[AdjustStock] append ledger", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.balanceRepo.SetAvailableTx(ctx, tx, req.ProductID, constant.DefaultLocationID, newBalance); err != nil {
		logger.Error("[AdjustStock] set available", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.productRepo.SetCurrentStockTx(ctx, tx, req.ProductID, newBalance); err != nil {
		logger.Error("[AdjustStock] mirror current stock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entry, err := stock.NewAuditEntry(actor, constant.StockActionAdjust, map[string]any{
		"product_id":  req.ProductID,
		"qty":         req.Qty,
		"unit":        req.Unit,
		"reason":      req.Reason,
		"new_balance": newBalance,
	})
	if err == nil {
		err = s.auditRepo.InsertTx(ctx, tx, entry)
	}
	if err != nil {
		logger.Error("[AdjustStock] write audit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AdjustStock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	bal.AvailableQuantity = newBalance
	s.notifier.StockChanged(ctx, constant.StockActionAdjust, *bal)

	return &model.AdjustStockResponse{NewBalance: newBalance}, nil
}
