package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	redisrepo "github.com/muhammadheryan/mfg-stock/repository/redis"
	"github.com/muhammadheryan/mfg-stock/thirdparty/rabbitmq"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"go.uber.org/zap"
)

// LevelCacheKey is the redis key holding the cached stock level of a product.
func LevelCacheKey(productID uint64) string {
	return fmt.Sprintf("stock:level:%d", productID)
}

// Notifier runs the side effects of a committed stock mutation.
// Failures are logged and never reach the caller.
type Notifier interface {
	StockChanged(ctx context.Context, action constant.StockAction, balances ...model.BalanceEntity)
}

type notifier struct {
	redisRepo redisrepo.Repository
	publisher rabbitmq.StockEventPublisher
}

// NewNotifier builds a Notifier. publisher may be nil when messaging is disabled.
func NewNotifier(redisRepo redisrepo.Repository, publisher rabbitmq.StockEventPublisher) Notifier {
	return &notifier{redisRepo: redisRepo, publisher: publisher}
}

func (n *notifier) StockChanged(ctx context.Context, action constant.StockAction, balances ...model.BalanceEntity) {
	if len(balances) == 0 {
		return
	}
	// the request may be gone by now, the mutation is already committed
	ctx = context.WithoutCancel(ctx)

	keys := make([]string, 0, len(balances))
	for _, b := range balances {
		keys = append(keys, LevelCacheKey(b.ProductID))
	}
	if n.redisRepo != nil {
		if err := n.redisRepo.Invalidate(ctx, keys...); err != nil {
			logger.Warn("[StockChanged] invalidate stock level cache", zap.Strings("keys", keys), zap.String("error", err.Error()))
		}
	}

	if n.publisher == nil {
		return
	}
	now := time.Now().UTC()
	for _, b := range balances {
		msg := model.StockMovementMessage{
			EventID:           uuid.NewString(),
			Action:            action,
			ProductID:         b.ProductID,
			AvailableQuantity: b.AvailableQuantity,
			ReservedQuantity:  b.ReservedQuantity,
			OccurredAt:        now,
		}
		if err := n.publisher.PublishStockMovement(ctx, msg); err != nil {
			logger.Error("[StockChanged] publish stock movement", zap.Uint64("product_id", b.ProductID), zap.String("error", err.Error()))
		}
	}
}
