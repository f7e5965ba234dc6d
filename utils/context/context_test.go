package context_test

import (
	"context"
	"testing"

	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	utilsContext "github.com/muhammadheryan/mfg-stock/utils/context"
	"github.com/stretchr/testify/assert"
)

func TestWithSession(t *testing.T) {
	ctx := utilsContext.WithSession(context.Background(), model.Session{UserID: 7, Role: constant.RoleManager})

	id, ok := utilsContext.GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)

	role, ok := utilsContext.GetRole(ctx)
	assert.True(t, ok)
	assert.Equal(t, constant.RoleManager, role)

	assert.Equal(t, model.Actor{UserID: 7, Role: constant.RoleManager}, utilsContext.GetActor(ctx))
}

func TestGetActor_NoSession(t *testing.T) {
	assert.Equal(t, model.Actor{}, utilsContext.GetActor(context.Background()))
}
