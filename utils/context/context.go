package context

import (
	"context"

	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetRole(ctx context.Context) (constant.Role, bool) {
	v := ctx.Value(constant.RoleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(constant.Role)
	return role, ok
}

// WithSession stores the authenticated user id and role in ctx.
func WithSession(ctx context.Context, session model.Session) context.Context {
	ctx = context.WithValue(ctx, constant.UserIDKey, session.UserID)
	return context.WithValue(ctx, constant.RoleKey, session.Role)
}

// GetActor returns the caller stored by WithSession. A missing session yields the zero actor,
// which audit rows record as the system user.
func GetActor(ctx context.Context) model.Actor {
	id, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)
	return model.Actor{UserID: id, Role: role}
}
