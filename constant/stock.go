package constant

// DefaultLocationID is the only stocking location the balance rows are kept for.
const DefaultLocationID uint64 = 1

type TxnType string

const (
	TxnTypeIn       TxnType = "IN"
	TxnTypeOut      TxnType = "OUT"
	TxnTypeAdjust   TxnType = "ADJUST"
	TxnTypeReserved TxnType = "RESERVED"
	TxnTypeReleased TxnType = "RELEASED"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCommitted ReservationStatus = "COMMITTED"
	ReservationStatusReleased  ReservationStatus = "RELEASED"
)

const (
	RefTypeManual = "MANUAL"
	RefTypeMO     = "MO"
	RefTypeWO     = "WO"
)

const ProductionCompletionNote = "Production completion"

type StockAction string

const (
	StockActionReserve   StockAction = "RESERVE"
	StockActionCommit    StockAction = "COMMIT"
	StockActionRelease   StockAction = "RELEASE"
	StockActionAdjust    StockAction = "ADJUST"
	StockActionReconcile StockAction = "RECONCILE"
)

type AlertType string

const (
	AlertTypeLowStock   AlertType = "LOW_STOCK"
	AlertTypeOutOfStock AlertType = "OUT_OF_STOCK"
)

const (
	LedgerDefaultLimit = 50
	LedgerMaxLimit     = 500
)
