package validatorx_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	validatorx "github.com/muhammadheryan/mfg-stock/utils/validator"
)

type qtyRequest struct {
	Qty  decimal.Decimal `validate:"gt=0"`
	Unit string          `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     qtyRequest
		wantErr bool
	}{
		{name: "valid", req: qtyRequest{Qty: decimal.RequireFromString("0.5"), Unit: "kg"}},
		{name: "zero qty", req: qtyRequest{Qty: decimal.Zero, Unit: "kg"}, wantErr: true},
		{name: "negative qty", req: qtyRequest{Qty: decimal.NewFromInt(-3), Unit: "kg"}, wantErr: true},
		{name: "missing unit", req: qtyRequest{Qty: decimal.NewFromInt(1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatorx.ValidateStruct(&tt.req)
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}
