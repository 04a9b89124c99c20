package usecase_test

import (
	"context"
	"testing"

	"mealdash/internal/domain/model"
	repo "mealdash/internal/repository"
	"mealdash/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type statusTestEnv struct {
	tx     *TxManagerMock
	orders *OrderRepoMock
	audit  *AuditRepoMock

	uc *usecase.OrderStatusUsecase
}

func newStatusTestEnv() *statusTestEnv {
	env := &statusTestEnv{
		tx:     new(TxManagerMock),
		orders: new(OrderRepoMock),
		audit:  new(AuditRepoMock),
	}
	env.tx.Repos = &TxReposMock{orders: env.orders, auditLogs: env.audit}
	env.uc = usecase.NewOrderStatusUsecase(env.tx)
	return env
}

func TestOrderStatusUsecase_Advance_PlacedToConfirmed_AuditsTheMove(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 7, Status: model.OrderStatusPlaced}, nil)
	env.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusConfirmed).Return(nil)
	env.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 1 &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceID == 42 &&
			l.BeforeJSON == `{"status":"PLACED"}` &&
			l.AfterJSON == `{"status":"CONFIRMED"}`
	})).Return(nil)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CONFIRMED"})
	assert.NoError(t, err)

	env.orders.AssertExpectations(t)
	env.audit.AssertExpectations(t)
}

func TestOrderStatusUsecase_Advance_SkippingAStepIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, Status: model.OrderStatusPlaced}, nil)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "DELIVERED"})
	assert.ErrorIs(t, err, usecase.ErrInvalidTransition)

	env.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderStatusUsecase_Advance_SameStatusIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, Status: model.OrderStatusConfirmed}, nil)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CONFIRMED"})
	assert.ErrorIs(t, err, usecase.ErrInvalidTransition)
}

func TestOrderStatusUsecase_Advance_BackToPlacedIsInvalid(t *testing.T) {
	env := newStatusTestEnv()

	err := env.uc.AdvanceStatus(context.Background(), 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "PLACED"})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestOrderStatusUsecase_Advance_UnknownStatus(t *testing.T) {
	env := newStatusTestEnv()

	err := env.uc.AdvanceStatus(context.Background(), 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "SHIPPED"})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestOrderStatusUsecase_Advance_TerminalOrder(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, Status: model.OrderStatusCancelled}, nil)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CONFIRMED"})
	assert.ErrorIs(t, err, usecase.ErrTerminalState)
}

func TestOrderStatusUsecase_Advance_ForwardMoveNeedsAdmin(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	// the owner asks for a kitchen-side move
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 1, Status: model.OrderStatusConfirmed}, nil)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleUser, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "PREPARING"})
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestOrderStatusUsecase_Advance_OwnerMayCancelConfirmed(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 1, Status: model.OrderStatusConfirmed}, nil)
	env.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusCancelled).Return(nil)
	env.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleUser, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CANCELLED"})
	assert.NoError(t, err)
}

func TestOrderStatusUsecase_Advance_StrangerMayNotCancel(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 7, Status: model.OrderStatusPlaced}, nil)

	err := env.uc.AdvanceStatus(ctx, 2, model.RoleUser, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CANCELLED"})
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestOrderStatusUsecase_Advance_LateCancelNeedsAdmin(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 1, Status: model.OrderStatusOutForDelivery}, nil)
	env.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusCancelled).Return(nil)
	env.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	// owner is refused once the kitchen started
	err := env.uc.AdvanceStatus(ctx, 1, model.RoleUser, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CANCELLED"})
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	// staff may still pull the plug
	err = env.uc.AdvanceStatus(ctx, 99, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 42, NewStatus: "CANCELLED"})
	assert.NoError(t, err)
}

func TestOrderStatusUsecase_Advance_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	env := newStatusTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	err := env.uc.AdvanceStatus(ctx, 1, model.RoleAdmin, usecase.AdvanceStatusInput{OrderID: 99, NewStatus: "CONFIRMED"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
