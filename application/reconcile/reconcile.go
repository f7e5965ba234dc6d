package reconcile

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
	utilsContext "github.com/muhammadheryan/mfg-stock/utils/context"
	"github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"github.com/muhammadheryan/mfg-stock/utils/metrics"
	"go.uber.org/zap"
)

// ReconcileApp rebuilds balance available quantities from the ledger.
type ReconcileApp interface {
	ReconcileInventory(ctx context.Context) (*model.ReconcileResponse, error)
}

type reconcileAppImpl struct {
	txRepo      txrepo.TxRepository
	balanceRepo balancerepo.BalanceRepository
	ledgerRepo  ledgerrepo.LedgerRepository
	productRepo productrepo.ProductRepository
	auditRepo   auditrepo.AuditRepository
	notifier    stock.Notifier
	metrics     *metrics.StockMetrics
}

func NewReconcileApp(txRepo txrepo.TxRepository, balanceRepo balancerepo.BalanceRepository, ledgerRepo ledgerrepo.LedgerRepository, productRepo productrepo.ProductRepository, auditRepo auditrepo.AuditRepository, notifier stock.Notifier, metrics *metrics.StockMetrics) ReconcileApp {
	return &reconcileAppImpl{
		txRepo:      txRepo,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
		metrics:     metrics,
	}
}

// ReconcileInventory overwrites available_quantity with Σ IN − Σ OUT for every product with
// ledger history. Reserved quantities are left untouched. The acting user is taken from ctx.
func (s *reconcileAppImpl) ReconcileInventory(ctx context.Context) (*model.ReconcileResponse, error) {
	start := time.Now()
	resp, err := s.reconcileInventory(ctx)
	s.metrics.Observe(constant.StockActionReconcile, start, err)
	return resp, err
}

func (s *reconcileAppImpl) reconcileInventory(ctx context.Context) (*model.ReconcileResponse, error) {
	actor := utilsContext.GetActor(ctx)

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReconcileInventory] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	productIDs, err := s.ledgerRepo.ListProductIDsTx(ctx, tx)
	if err != nil {
		logger.Error("[ReconcileInventory] list ledger products", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	balances, err := stock.LockBalances(ctx, s.balanceRepo, tx, true, productIDs...)
	if err != nil {
		logger.Error("[ReconcileInventory] lock balances", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	changed := make([]model.BalanceEntity, 0, len(productIDs))
	for _, id := range productIDs {
		bal, ok := balances[id]
		if !ok {
			logger.Error("[ReconcileInventory] balance row missing after create", zap.Uint64("product_id", id))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		calculated, err := s.ledgerRepo.SumByProductTx(ctx, tx, id)
		if err != nil {
			logger.Error("[ReconcileInventory] sum ledger", zap.Uint64("product_id", id), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if calculated.IsNegative() {
			logger.Error("[ReconcileInventory] ledger replays to a negative balance", zap.Uint64("product_id", id), zap.String("calculated", calculated.String()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		if !calculated.Equal(bal.AvailableQuantity) {
			logger.Warn("[ReconcileInventory] balance drift corrected", zap.Uint64("product_id", id), zap.String("stored", bal.AvailableQuantity.String()), zap.String("calculated", calculated.String()))
		}
		if err := s.balanceRepo.SetAvailableTx(ctx, tx, id, constant.DefaultLocationID, calculated); err != nil {
			logger.Error("[ReconcileInventory] set available", zap.Uint64("product_id", id), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.productRepo.SetCurrentStockTx(ctx, tx, id, calculated); err != nil {
			logger.Error("[ReconcileInventory] mirror current stock", zap.Uint64("product_id", id), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		bal.AvailableQuantity = calculated
		changed = append(changed, *bal)
	}

	entry, err := stock.NewAuditEntry(actor, constant.StockActionReconcile, map[string]any{
		"reconciled_products": len(productIDs),
	})
	if err == nil {
		err = s.auditRepo.InsertTx(ctx, tx, entry)
	}
	if err != nil {
		logger.Error("[ReconcileInventory] write audit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReconcileInventory] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Info("[ReconcileInventory] done", zap.Int("reconciled_products", len(productIDs)))
	s.notifier.StockChanged(ctx, constant.StockActionReconcile, changed...)
	return &model.ReconcileResponse{ReconciledCount: len(productIDs)}, nil
}
