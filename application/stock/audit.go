package stock

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
)

// NewAuditEntry builds the audit row written alongside a stock mutation.
func NewAuditEntry(actor model.Actor, action constant.StockAction, details map[string]any) (*model.AuditLogEntity, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return &model.AuditLogEntity{
		ID:      uuid.NewString(),
		UserID:  actor.UserID,
		Role:    actor.Role,
		Action:  string(action),
		Details: raw,
	}, nil
}
