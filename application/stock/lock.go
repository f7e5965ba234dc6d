package stock

import (
	"context"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	balancerepo "github.com/muhammadheryan/mfg-stock/repository/balance"
)

// LockBalances locks the default-location balance rows of productIDs in ascending id order,
// so that two transactions touching the same products cannot deadlock on each other.
// Products without a balance row are absent from the result unless create is set, in which
// case an empty row is inserted and locked.
func LockBalances(ctx context.Context, repo balancerepo.BalanceRepository, tx *sqlx.Tx, create bool, productIDs ...uint64) (map[uint64]*model.BalanceEntity, error) {
	ids := slices.Clone(productIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	locked := make(map[uint64]*model.BalanceEntity, len(ids))
	for _, id := range ids {
		bal, err := repo.GetForUpdateTx(ctx, tx, id, constant.DefaultLocationID)
		if err != nil {
			return nil, err
		}
		if bal == nil && create {
			if err := repo.CreateTx(ctx, tx, id, constant.DefaultLocationID); err != nil {
				return nil, err
			}
			bal, err = repo.GetForUpdateTx(ctx, tx, id, constant.DefaultLocationID)
			if err != nil {
				return nil, err
			}
		}
		if bal != nil {
			locked[id] = bal
		}
	}
	return locked, nil
}
