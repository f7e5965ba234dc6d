package alert

import (
	"context"

	"github.com/muhammadheryan/mfg-stock/cmd/config"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	alertrepo "github.com/muhammadheryan/mfg-stock/repository/alert"
	productrepo "github.com/muhammadheryan/mfg-stock/repository/product"
	redisrepo "github.com/muhammadheryan/mfg-stock/repository/redis"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"go.uber.org/zap"
)

type AlertApp interface {
	HandleStockMovement(ctx context.Context, msg model.StockMovementMessage) error
}

type alertAppImpl struct {
	config      *config.Config
	redisRepo   redisrepo.Repository
	productRepo productrepo.ProductRepository
	alertRepo   alertrepo.AlertRepository
}

func NewAlertApp(config *config.Config, redisRepo redisrepo.Repository, productRepo productrepo.ProductRepository, alertRepo alertrepo.AlertRepository) AlertApp {
	return &alertAppImpl{config: config, redisRepo: redisRepo, productRepo: productRepo, alertRepo: alertRepo}
}

func dedupeKey(eventID string) string {
	return "stock_event:" + eventID
}

// HandleStockMovement raises or clears threshold alerts for the product in msg.
// A returned error asks the consumer to redeliver the message.
func (s *alertAppImpl) HandleStockMovement(ctx context.Context, msg model.StockMovementMessage) (err error) {
	if msg.EventID == "" || msg.ProductID == 0 {
		logger.Warn("[HandleStockMovement] drop malformed event", zap.String("event_id", msg.EventID), zap.Uint64("product_id", msg.ProductID))
		return nil
	}

	key := dedupeKey(msg.EventID)
	fresh, err := s.redisRepo.SetIfAbsent(ctx, key, string(msg.Action), s.config.Stock.EventDedupeTTL)
	if err != nil {
		logger.Error("[HandleStockMovement] dedupe", zap.String("event_id", msg.EventID), zap.String("error", err.Error()))
		return err
	}
	if !fresh {
		logger.Debug("[HandleStockMovement] duplicate event", zap.String("event_id", msg.EventID))
		return nil
	}
	// a failed attempt must not mark the event as seen
	defer func() {
		if err != nil {
			if delErr := s.redisRepo.Delete(ctx, key); delErr != nil {
				logger.Warn("[HandleStockMovement] clear dedupe key", zap.String("event_id", msg.EventID), zap.String("error", delErr.Error()))
			}
		}
	}()

	product, err := s.productRepo.GetByID(ctx, msg.ProductID)
	if err != nil {
		logger.Error("[HandleStockMovement] get product", zap.Uint64("product_id", msg.ProductID), zap.String("error", err.Error()))
		return err
	}
	if product == nil {
		logger.Warn("[HandleStockMovement] unknown product", zap.Uint64("product_id", msg.ProductID))
		return nil
	}

	available := msg.AvailableQuantity
	var alertType constant.AlertType
	switch {
	case !available.IsPositive():
		alertType = constant.AlertTypeOutOfStock
	case available.LessThanOrEqual(product.MinQty):
		alertType = constant.AlertTypeLowStock
	default:
		if err = s.alertRepo.DeactivateByProduct(ctx, msg.ProductID); err != nil {
			logger.Error("[HandleStockMovement] deactivate alerts", zap.Uint64("product_id", msg.ProductID), zap.String("error", err.Error()))
		}
		return err
	}

	active, err := s.alertRepo.HasActive(ctx, msg.ProductID, alertType)
	if err != nil {
		logger.Error("[HandleStockMovement] check active alert", zap.Uint64("product_id", msg.ProductID), zap.String("error", err.Error()))
		return err
	}
	if active {
		return nil
	}

	// only the current condition stays active
	if err = s.alertRepo.DeactivateByProduct(ctx, msg.ProductID); err != nil {
		logger.Error("[HandleStockMovement] deactivate alerts", zap.Uint64("product_id", msg.ProductID), zap.String("error", err.Error()))
		return err
	}
	if err = s.alertRepo.Insert(ctx, &model.StockAlertEntity{
		ProductID:      msg.ProductID,
		AlertType:      alertType,
		ThresholdValue: product.MinQty,
		CurrentValue:   available,
	}); err != nil {
		logger.Error("[HandleStockMovement] insert alert", zap.Uint64("product_id", msg.ProductID), zap.String("error", err.Error()))
		return err
	}

	logger.Info("[HandleStockMovement] alert raised", zap.Uint64("product_id", msg.ProductID), zap.String("alert_type", string(alertType)), zap.String("available", available.String()))
	return nil
}
