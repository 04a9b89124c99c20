package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealdash/internal/domain/model"
	repo "mealdash/internal/repository"

	"github.com/rs/zerolog/log"
)

// OrderStatusUsecase owns every status change after checkout. The legality
// of a move lives in the model's transition table; this layer adds the
// actor/role contract and the audit trail.
type OrderStatusUsecase struct {
	tx repo.TransactionManager
}

func NewOrderStatusUsecase(tx repo.TransactionManager) *OrderStatusUsecase {
	return &OrderStatusUsecase{tx: tx}
}

type AdvanceStatusInput struct {
	OrderID   int64
	NewStatus string
}

// AdvanceStatus moves an order one step forward, or to CANCELLED. Owners may
// cancel while the order is pre-PREPARING; everything else requires ADMIN.
func (u *OrderStatusUsecase) AdvanceStatus(ctx context.Context, actorID int64, actorRole model.Role, in AdvanceStatusInput) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}
	if in.OrderID <= 0 {
		return fmt.Errorf("%w: invalid id", ErrValidation)
	}

	newStatus := model.OrderStatus(in.NewStatus)
	if !newStatus.Valid() || newStatus == model.OrderStatusPlaced {
		return fmt.Errorf("%w: invalid status", ErrValidation)
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if o.Status.Terminal() {
			return ErrTerminalState
		}
		if !o.Status.CanTransitionTo(newStatus) {
			return ErrInvalidTransition
		}

		required := model.RequiredRoleFor(o.Status, newStatus)
		if required == model.RoleAdmin && actorRole != model.RoleAdmin {
			return ErrForbidden
		}
		if required == model.RoleUser && actorRole != model.RoleAdmin && actorID != o.UserID {
			// owner-only move requested by a stranger
			return ErrForbidden
		}

		beforeStatus := o.Status
		if err := r.Orders().UpdateStatus(ctx, in.OrderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return repo.ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		audit := model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   in.OrderID,
			BeforeJSON:   `{"status":"` + string(beforeStatus) + `"}`,
			AfterJSON:    `{"status":"` + string(newStatus) + `"}`,
			CreatedAt:    time.Now(),
		}
		if err := r.AuditLogs().Create(ctx, audit); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		log.Info().
			Int64("order_id", in.OrderID).
			Int64("actor_id", actorID).
			Str("from", string(beforeStatus)).
			Str("to", string(newStatus)).
			Msg("order status updated")

		return nil
	})
}
