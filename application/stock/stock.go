package stock

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/mfg-stock/cmd/config"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	balancerepo "github.com/muhammadheryan/mfg-stock/repository/balance"
	ledgerrepo "github.com/muhammadheryan/mfg-stock/repository/ledger"
	redisrepo "github.com/muhammadheryan/mfg-stock/repository/redis"
	reservationrepo "github.com/muhammadheryan/mfg-stock/repository/reservation"
	"github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"go.uber.org/zap"
)

// StockApp serves the read side of the stock subsystem.
type StockApp interface {
	GetStockLevel(ctx context.Context, productID uint64) (*model.StockLevel, error)
	ListLedger(ctx context.Context, filter *model.LedgerFilter) (*model.LedgerListResponse, error)
	ListActiveReservations(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationEntity, error)
}

type stockAppImpl struct {
	config          *config.Config
	balanceRepo     balancerepo.BalanceRepository
	ledgerRepo      ledgerrepo.LedgerRepository
	reservationRepo reservationrepo.ReservationRepository
	redisRepo       redisrepo.Repository
}

func NewStockApp(config *config.Config, balanceRepo balancerepo.BalanceRepository, ledgerRepo ledgerrepo.LedgerRepository, reservationRepo reservationrepo.ReservationRepository, redisRepo redisrepo.Repository) StockApp {
	return &stockAppImpl{
		config:          config,
		balanceRepo:     balanceRepo,
		ledgerRepo:      ledgerRepo,
		reservationRepo: reservationRepo,
		redisRepo:       redisRepo,
	}
}

func (s *stockAppImpl) GetStockLevel(ctx context.Context, productID uint64) (*model.StockLevel, error) {
	if productID == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	key := LevelCacheKey(productID)
	// read before the balance so a mutation committed in between is seen as a version change
	version, verErr := s.redisRepo.Version(ctx, key)
	if verErr != nil {
		logger.Warn("[GetStockLevel] read cache version", zap.String("key", key), zap.String("error", verErr.Error()))
	}
	cached, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		logger.Warn("[GetStockLevel] read cache", zap.String("key", key), zap.String("error", err.Error()))
	}
	if cached != "" {
		var level model.StockLevel
		if err := json.Unmarshal([]byte(cached), &level); err == nil {
			return &level, nil
		}
		logger.Warn("[GetStockLevel] discard malformed cache entry", zap.String("key", key))
	}

	bal, err := s.balanceRepo.Get(ctx, productID, constant.DefaultLocationID)
	if err != nil {
		logger.Error("[GetStockLevel] get balance", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if bal == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	level := &model.StockLevel{
		ProductID:         bal.ProductID,
		LocationID:        bal.LocationID,
		AvailableQuantity: bal.AvailableQuantity,
		ReservedQuantity:  bal.ReservedQuantity,
		FreeQuantity:      bal.FreeToReserve(),
		LastUpdated:       bal.LastUpdated,
	}
	if verErr != nil {
		return level, nil
	}
	if raw, err := json.Marshal(level); err == nil {
		stored, err := s.redisRepo.SetIfVersion(ctx, key, string(raw), version, s.config.Stock.LevelCacheTTL)
		if err != nil {
			logger.Warn("[GetStockLevel] write cache", zap.String("key", key), zap.String("error", err.Error()))
		} else if !stored {
			logger.Debug("[GetStockLevel] skip cache write, level changed during read", zap.String("key", key))
		}
	}
	return level, nil
}

func (s *stockAppImpl) ListLedger(ctx context.Context, filter *model.LedgerFilter) (*model.LedgerListResponse, error) {
	f := model.LedgerFilter{}
	if filter != nil {
		f = *filter
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if f.Limit == 0 {
		f.Limit = constant.LedgerDefaultLimit
	}
	if f.Limit > constant.LedgerMaxLimit {
		f.Limit = constant.LedgerMaxLimit
	}

	items, err := s.ledgerRepo.List(ctx, &f)
	if err != nil {
		logger.Error("[ListLedger] list ledger", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if items == nil {
		items = []model.LedgerEntryEntity{}
	}
	return &model.LedgerListResponse{Items: items, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *stockAppImpl) ListActiveReservations(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationEntity, error) {
	if filter == nil {
		filter = &model.ReservationFilter{}
	}
	items, err := s.reservationRepo.ListActive(ctx, filter)
	if err != nil {
		logger.Error("[ListActiveReservations] list reservations", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if items == nil {
		items = []model.ReservationEntity{}
	}
	return items, nil
}
