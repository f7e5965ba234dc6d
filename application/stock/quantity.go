package stock

import "github.com/shopspring/decimal"

// Quantity columns are DECIMAL(10,3).
const QtyScale int32 = 3

var MaxQty = decimal.New(9999999999, -QtyScale)

// ValidQty reports whether q can be stored in a quantity column without rounding or overflow.
func ValidQty(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QtyScale)) && q.Abs().LessThanOrEqual(MaxQty)
}
