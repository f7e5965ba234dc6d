// Package memstore is an in-memory stand-in for the MySQL repositories used by tests
// that need real transactional behaviour: row locks held until commit or rollback,
// writes undone on rollback, and injectable faults.
package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	"github.com/shopspring/decimal"
)

type balanceKey struct {
	productID  uint64
	locationID uint64
}

type txState struct {
	undo  []func()
	locks []string
}

// Store holds every table touched by the stock applications.
type Store struct {
	mu   sync.Mutex
	cond *sync.Cond

	balances     map[balanceKey]*model.BalanceEntity
	reservations map[string]*model.ReservationEntity
	ledger       []model.LedgerEntryEntity
	products     map[uint64]*model.ProductEntity
	audits       []model.AuditLogEntity

	locks  map[string]*sqlx.Tx
	txs    map[*sqlx.Tx]*txState
	faults map[string]error
	nextID uint64
}

func New() *Store {
	s := &Store{
		balances:     map[balanceKey]*model.BalanceEntity{},
		reservations: map[string]*model.ReservationEntity{},
		products:     map[uint64]*model.ProductEntity{},
		locks:        map[string]*sqlx.Tx{},
		txs:          map[*sqlx.Tx]*txState{},
		faults:       map[string]error{},
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// SeedProduct inserts a product with a balance row at the default location.
func (s *Store) SeedProduct(productID uint64, available, minQty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[productID] = &model.ProductEntity{ID: productID, Name: fmt.Sprintf("product-%d", productID), CurrentStock: available, MinQty: minQty}
	s.balances[balanceKey{productID, constant.DefaultLocationID}] = &model.BalanceEntity{
		ProductID:         productID,
		LocationID:        constant.DefaultLocationID,
		AvailableQuantity: available,
		ReservedQuantity:  decimal.Zero,
		LastUpdated:       time.Now(),
	}
}

// SeedProductOnly inserts a product without a balance row.
func (s *Store) SeedProductOnly(productID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[productID] = &model.ProductEntity{ID: productID, Name: fmt.Sprintf("product-%d", productID)}
}

// SeedLedger appends committed ledger rows directly.
func (s *Store) SeedLedger(entries ...model.LedgerEntryEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.nextID++
		e.ID = s.nextID
		e.CreatedAt = time.Now()
		s.ledger = append(s.ledger, e)
	}
}

// SetAvailable overwrites a balance outside of any transaction, to simulate drift.
func (s *Store) SetAvailable(productID uint64, available decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.balances[balanceKey{productID, constant.DefaultLocationID}]; ok {
		b.AvailableQuantity = available
	}
}

// FailOn makes the next call of op return err. op is "<Repository>.<Method>", e.g. "Ledger.AppendTx".
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	err, ok := s.faults[op]
	if ok {
		delete(s.faults, op)
	}
	return err
}

// Balance returns a copy of the committed-or-pending balance row, or nil.
func (s *Store) Balance(productID uint64) *model.BalanceEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[balanceKey{productID, constant.DefaultLocationID}]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func (s *Store) Product(productID uint64) *model.ProductEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (s *Store) Reservation(id string) *model.ReservationEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil
	}
	cp := *r
	return &cp
}

func (s *Store) Reservations() []model.ReservationEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ReservationEntity, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, *r)
	}
	return out
}

func (s *Store) Ledger() []model.LedgerEntryEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.LedgerEntryEntity(nil), s.ledger...)
}

func (s *Store) Audits() []model.AuditLogEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditLogEntity(nil), s.audits...)
}

// OpenTxs reports transactions that were begun and never finished.
func (s *Store) OpenTxs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// lock blocks until tx owns key. Must be called with s.mu held.
func (s *Store) lock(tx *sqlx.Tx, key string) error {
	st, ok := s.txs[tx]
	if !ok {
		return sql.ErrTxDone
	}
	for {
		holder, held := s.locks[key]
		if !held {
			s.locks[key] = tx
			st.locks = append(st.locks, key)
			return nil
		}
		if holder == tx {
			return nil
		}
		s.cond.Wait()
		if _, ok := s.txs[tx]; !ok {
			return sql.ErrTxDone
		}
	}
}

// record registers an undo step for tx. Must be called with s.mu held.
func (s *Store) record(tx *sqlx.Tx, undo func()) {
	st := s.txs[tx]
	st.undo = append(st.undo, undo)
}

func (s *Store) finish(tx *sqlx.Tx, rollback bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.txs[tx]
	if !ok {
		return sql.ErrTxDone
	}
	if rollback {
		for i := len(st.undo) - 1; i >= 0; i-- {
			st.undo[i]()
		}
	}
	for _, k := range st.locks {
		delete(s.locks, k)
	}
	delete(s.txs, tx)
	s.cond.Broadcast()
	return nil
}

func balanceLockKey(productID, locationID uint64) string {
	return fmt.Sprintf("balance:%d:%d", productID, locationID)
}

func reservationLockKey(id string) string {
	return "reservation:" + id
}

// TxRepo implements repository/tx.TxRepository.
type TxRepo struct{ s *Store }

func (s *Store) TxRepo() *TxRepo { return &TxRepo{s} }

func (r *TxRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Tx.BeginTx"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx := new(sqlx.Tx)
	s.txs[tx] = &txState{}
	return tx, nil
}

func (r *TxRepo) CommitTx(tx *sqlx.Tx) error {
	r.s.mu.Lock()
	err := r.s.fault("Tx.CommitTx")
	r.s.mu.Unlock()
	if err != nil {
		_ = r.s.finish(tx, true)
		return err
	}
	return r.s.finish(tx, false)
}

func (r *TxRepo) RollbackTx(tx *sqlx.Tx) error {
	return r.s.finish(tx, true)
}

// BalanceRepo implements repository/balance.BalanceRepository.
type BalanceRepo struct{ s *Store }

func (s *Store) BalanceRepo() *BalanceRepo { return &BalanceRepo{s} }

func (r *BalanceRepo) Get(ctx context.Context, productID, locationID uint64) (*model.BalanceEntity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Balance.Get"); err != nil {
		return nil, err
	}
	b, ok := s.balances[balanceKey{productID, locationID}]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BalanceRepo) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64) (*model.BalanceEntity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Balance.GetForUpdateTx"); err != nil {
		return nil, err
	}
	if err := s.lock(tx, balanceLockKey(productID, locationID)); err != nil {
		return nil, err
	}
	b, ok := s.balances[balanceKey{productID, locationID}]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BalanceRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Balance.CreateTx"); err != nil {
		return err
	}
	if err := s.lock(tx, balanceLockKey(productID, locationID)); err != nil {
		return err
	}
	key := balanceKey{productID, locationID}
	if _, ok := s.balances[key]; ok {
		return nil
	}
	s.balances[key] = &model.BalanceEntity{ProductID: productID, LocationID: locationID, LastUpdated: time.Now()}
	s.record(tx, func() { delete(s.balances, key) })
	return nil
}

func (r *BalanceRepo) update(tx *sqlx.Tx, op string, productID, locationID uint64, apply func(b *model.BalanceEntity)) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault(op); err != nil {
		return err
	}
	if err := s.lock(tx, balanceLockKey(productID, locationID)); err != nil {
		return err
	}
	b, ok := s.balances[balanceKey{productID, locationID}]
	if !ok {
		return sql.ErrNoRows
	}
	prev := *b
	apply(b)
	b.LastUpdated = time.Now()
	s.record(tx, func() { *b = prev })
	return nil
}

func (r *BalanceRepo) AddReservedTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, delta decimal.Decimal) error {
	return r.update(tx, "Balance.AddReservedTx", productID, locationID, func(b *model.BalanceEntity) {
		b.ReservedQuantity = b.ReservedQuantity.Add(delta)
	})
}

func (r *BalanceRepo) AddAvailableTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, delta decimal.Decimal) error {
	return r.update(tx, "Balance.AddAvailableTx", productID, locationID, func(b *model.BalanceEntity) {
		b.AvailableQuantity = b.AvailableQuantity.Add(delta)
	})
}

func (r *BalanceRepo) SetAvailableTx(ctx context.Context, tx *sqlx.Tx, productID, locationID uint64, available decimal.Decimal) error {
	return r.update(tx, "Balance.SetAvailableTx", productID, locationID, func(b *model.BalanceEntity) {
		b.AvailableQuantity = available
	})
}

// ReservationRepo implements repository/reservation.ReservationRepository.
type ReservationRepo struct{ s *Store }

func (s *Store) ReservationRepo() *ReservationRepo { return &ReservationRepo{s} }

func (r *ReservationRepo) InsertTx(ctx context.Context, tx *sqlx.Tx, res *model.ReservationEntity) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Reservation.InsertTx"); err != nil {
		return err
	}
	if _, ok := s.txs[tx]; !ok {
		return sql.ErrTxDone
	}
	if _, ok := s.reservations[res.ID]; ok {
		return fmt.Errorf("duplicate reservation id %s", res.ID)
	}
	if err := s.lock(tx, reservationLockKey(res.ID)); err != nil {
		return err
	}
	cp := *res
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.reservations[res.ID] = &cp
	s.record(tx, func() { delete(s.reservations, res.ID) })
	return nil
}

func (r *ReservationRepo) GetActiveForUpdateTx(ctx context.Context, tx *sqlx.Tx, reservationID string) (*model.ReservationEntity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Reservation.GetActiveForUpdateTx"); err != nil {
		return nil, err
	}
	if err := s.lock(tx, reservationLockKey(reservationID)); err != nil {
		return nil, err
	}
	res, ok := s.reservations[reservationID]
	if !ok || res.Status != constant.ReservationStatusActive {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, reservationID string, from, to constant.ReservationStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Reservation.UpdateStatusTx"); err != nil {
		return err
	}
	if err := s.lock(tx, reservationLockKey(reservationID)); err != nil {
		return err
	}
	res, ok := s.reservations[reservationID]
	if !ok || res.Status != from {
		return sql.ErrNoRows
	}
	prev := *res
	res.Status = to
	res.UpdatedAt = time.Now()
	s.record(tx, func() { *res = prev })
	return nil
}

func (r *ReservationRepo) ListActive(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationEntity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Reservation.ListActive"); err != nil {
		return nil, err
	}
	var out []model.ReservationEntity
	for _, res := range s.reservations {
		if res.Status != constant.ReservationStatusActive {
			continue
		}
		if filter != nil && filter.ProductID != 0 && res.ProductID != filter.ProductID {
			continue
		}
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// LedgerRepo implements repository/ledger.LedgerRepository.
type LedgerRepo struct{ s *Store }

func (s *Store) LedgerRepo() *LedgerRepo { return &LedgerRepo{s} }

func (r *LedgerRepo) AppendTx(ctx context.Context, tx *sqlx.Tx, entry *model.LedgerEntryEntity) (uint64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Ledger.AppendTx"); err != nil {
		return 0, err
	}
	if _, ok := s.txs[tx]; !ok {
		return 0, sql.ErrTxDone
	}
	s.nextID++
	e := *entry
	e.ID = s.nextID
	e.CreatedAt = time.Now()
	s.ledger = append(s.ledger, e)
	s.record(tx, func() {
		s.ledger = slices.DeleteFunc(s.ledger, func(l model.LedgerEntryEntity) bool { return l.ID == e.ID })
	})
	return e.ID, nil
}

func (r *LedgerRepo) ListProductIDsTx(ctx context.Context, tx *sqlx.Tx) ([]uint64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Ledger.ListProductIDsTx"); err != nil {
		return nil, err
	}
	seen := map[uint64]bool{}
	var ids []uint64
	for _, e := range s.ledger {
		if !seen[e.ProductID] {
			seen[e.ProductID] = true
			ids = append(ids, e.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *LedgerRepo) SumByProductTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (decimal.Decimal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Ledger.SumByProductTx"); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range s.ledger {
		if e.ProductID != productID {
			continue
		}
		switch e.TxnType {
		case constant.TxnTypeIn:
			sum = sum.Add(e.Quantity)
		case constant.TxnTypeOut:
			sum = sum.Sub(e.Quantity)
		}
	}
	return sum, nil
}

func (r *LedgerRepo) List(ctx context.Context, filter *model.LedgerFilter) ([]model.LedgerEntryEntity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Ledger.List"); err != nil {
		return nil, err
	}
	var out []model.LedgerEntryEntity
	for i := len(s.ledger) - 1; i >= 0; i-- {
		e := s.ledger[i]
		if filter != nil && filter.ProductID != 0 && e.ProductID != filter.ProductID {
			continue
		}
		out = append(out, e)
	}
	if filter != nil {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
		if filter.Limit > 0 && filter.Limit < len(out) {
			out = out[:filter.Limit]
		}
	}
	return out, nil
}

// ProductRepo implements repository/product.ProductRepository.
type ProductRepo struct{ s *Store }

func (s *Store) ProductRepo() *ProductRepo { return &ProductRepo{s} }

func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Product.GetByID"); err != nil {
		return nil, err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductEntity, error) {
	r.s.mu.Lock()
	if _, ok := r.s.txs[tx]; !ok {
		r.s.mu.Unlock()
		return nil, sql.ErrTxDone
	}
	r.s.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) SetCurrentStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, stock decimal.Decimal) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Product.SetCurrentStockTx"); err != nil {
		return err
	}
	if _, ok := s.txs[tx]; !ok {
		return sql.ErrTxDone
	}
	p, ok := s.products[id]
	if !ok {
		return sql.ErrNoRows
	}
	prev := p.CurrentStock
	p.CurrentStock = stock
	s.record(tx, func() { p.CurrentStock = prev })
	return nil
}

// AuditRepo implements repository/audit.AuditRepository.
type AuditRepo struct{ s *Store }

func (s *Store) AuditRepo() *AuditRepo { return &AuditRepo{s} }

func (r *AuditRepo) InsertTx(ctx context.Context, tx *sqlx.Tx, entry *model.AuditLogEntity) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("Audit.InsertTx"); err != nil {
		return err
	}
	if _, ok := s.txs[tx]; !ok {
		return sql.ErrTxDone
	}
	s.audits = append(s.audits, *entry)
	id := entry.ID
	s.record(tx, func() {
		s.audits = slices.DeleteFunc(s.audits, func(a model.AuditLogEntity) bool { return a.ID == id })
	})
	return nil
}
