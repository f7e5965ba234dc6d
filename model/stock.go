package model

import (
	"encoding/json"
	"time"

	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/shopspring/decimal"
)

// Actor is the authenticated caller. Role is recorded for audit only.
type Actor struct {
	UserID uint64
	Role   constant.Role
}

type BalanceEntity struct {
	ProductID         uint64          `db:"product_id" json:"product_id"`
	LocationID        uint64          `db:"location_id" json:"location_id"`
	AvailableQuantity decimal.Decimal `db:"available_quantity" json:"available_quantity"`
	ReservedQuantity  decimal.Decimal `db:"reserved_quantity" json:"reserved_quantity"`
	LastUpdated       time.Time       `db:"last_updated" json:"last_updated"`
}

// FreeToReserve is the quantity not yet earmarked by active reservations.
func (b *BalanceEntity) FreeToReserve() decimal.Decimal {
	return b.AvailableQuantity.Sub(b.ReservedQuantity)
}

type ReservationEntity struct {
	ID         string                     `db:"reservation_id" json:"reservation_id"`
	ProductID  uint64                     `db:"product_id" json:"product_id"`
	Qty        decimal.Decimal            `db:"qty" json:"qty"`
	Unit       string                     `db:"unit" json:"unit"`
	RefType    string                     `db:"ref_type" json:"ref_type"`
	RefID      uint64                     `db:"ref_id" json:"ref_id"`
	ReservedBy uint64                     `db:"reserved_by" json:"reserved_by"`
	Status     constant.ReservationStatus `db:"status" json:"status"`
	CreatedAt  time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time                  `db:"updated_at" json:"updated_at"`
}

type LedgerEntryEntity struct {
	ID            uint64           `db:"ledger_id" json:"ledger_id"`
	ProductID     uint64           `db:"product_id" json:"product_id"`
	TxnType       constant.TxnType `db:"txn_type" json:"txn_type"`
	Quantity      decimal.Decimal  `db:"quantity" json:"quantity"`
	BalanceAfter  decimal.Decimal  `db:"balance_after" json:"balance_after"`
	ReferenceType string           `db:"reference_type" json:"reference_type"`
	ReferenceID   *uint64          `db:"reference_id" json:"reference_id,omitempty"`
	UserID        uint64           `db:"user_id" json:"user_id"`
	Notes         string           `db:"notes" json:"notes"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

// LedgerProductSum is the replayed ledger total for one product.
type LedgerProductSum struct {
	ProductID  uint64          `db:"product_id"`
	Calculated decimal.Decimal `db:"calculated_stock"`
}

type LedgerFilter struct {
	ProductID uint64
	Limit     int
	Offset    int
}

type ReservationFilter struct {
	ProductID uint64
}

type ProductEntity struct {
	ID           uint64          `db:"product_id" json:"product_id"`
	Name         string          `db:"name" json:"name"`
	CurrentStock decimal.Decimal `db:"current_stock" json:"current_stock"`
	MinQty       decimal.Decimal `db:"min_qty" json:"min_qty"`
}

type AuditLogEntity struct {
	ID      string          `db:"log_id"`
	UserID  uint64          `db:"user_id"`
	Role    constant.Role   `db:"role"`
	Action  string          `db:"action"`
	Details json.RawMessage `db:"details"`
}

type StockAlertEntity struct {
	ID             uint64             `db:"alert_id" json:"alert_id"`
	ProductID      uint64             `db:"product_id" json:"product_id"`
	AlertType      constant.AlertType `db:"alert_type" json:"alert_type"`
	ThresholdValue decimal.Decimal    `db:"threshold_value" json:"threshold_value"`
	CurrentValue   decimal.Decimal    `db:"current_value" json:"current_value"`
	IsActive       bool               `db:"is_active" json:"is_active"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
}

// StockShortage is attached to insufficient stock errors.
type StockShortage struct {
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}

type ReserveStockRequest struct {
	ProductID uint64          `json:"product_id" validate:"required"`
	Qty       decimal.Decimal `json:"qty" validate:"gt=0"`
	Unit      string          `json:"unit" validate:"required,max=16"`
	RefType   string          `json:"ref_type" validate:"required,max=32"`
	RefID     uint64          `json:"ref_id" validate:"required"`
}

type ReserveStockResponse struct {
	ReservationID string `json:"reservation_id"`
}

type CommitReservationRequest struct {
	ReservationID     string           `json:"reservation_id" validate:"required,uuid"`
	FinishedProductID *uint64          `json:"finished_product_id,omitempty"`
	FinishedQty       *decimal.Decimal `json:"finished_qty,omitempty"`
}

type ReleaseReservationRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	Reason        string `json:"reason" validate:"max=255"`
}

type StockOperationResponse struct {
	Success bool `json:"success"`
}

type AdjustStockRequest struct {
	ProductID uint64          `json:"product_id" validate:"required"`
	Qty       decimal.Decimal `json:"qty" validate:"ne=0"`
	Unit      string          `json:"unit" validate:"max=16"`
	Reason    string          `json:"reason" validate:"max=255"`
}

type AdjustStockResponse struct {
	NewBalance decimal.Decimal `json:"new_balance"`
}

type ReconcileResponse struct {
	ReconciledCount int `json:"reconciled_products"`
}

type StockLevel struct {
	ProductID         uint64          `json:"product_id"`
	LocationID        uint64          `json:"location_id"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	FreeQuantity      decimal.Decimal `json:"free_quantity"`
	LastUpdated       time.Time       `json:"last_updated"`
}

type LedgerListResponse struct {
	Items  []LedgerEntryEntity `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// StockMovementMessage is published after every committed stock mutation.
type StockMovementMessage struct {
	EventID           string               `json:"event_id"`
	Action            constant.StockAction `json:"action"`
	ProductID         uint64               `json:"product_id"`
	AvailableQuantity decimal.Decimal      `json:"available_quantity"`
	ReservedQuantity  decimal.Decimal      `json:"reserved_quantity"`
	OccurredAt        time.Time            `json:"occurred_at"`
}
