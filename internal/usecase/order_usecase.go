package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mealdash/internal/domain/model"
	"mealdash/internal/payment"
	repo "mealdash/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OrderUsecase converts a cart into an order and owns the customer-facing
// order operations. Checkout is one transaction: snapshot, payment, order
// row, items, cart clear — all of it commits or none of it does.
type OrderUsecase struct {
	tx    repo.TransactionManager
	users repo.UserRepository
	pay   payment.Processor

	deliveryWindow time.Duration
	serviceFee     int64
	paymentTimeout time.Duration
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	pay payment.Processor,
	deliveryWindow time.Duration,
	serviceFee int64,
	paymentTimeout time.Duration,
) *OrderUsecase {
	return &OrderUsecase{
		tx:             tx,
		users:          users,
		pay:            pay,
		deliveryWindow: deliveryWindow,
		serviceFee:     serviceFee,
		paymentTimeout: paymentTimeout,
	}
}

type CheckoutInput struct {
	RequestedDeliveryAt time.Time
	DeliveryAddress     string
	IdempotencyKey      string
}

type OrderItemOutput struct {
	MealID   int64  `json:"meal_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type OrderOutput struct {
	ID                  int64             `json:"id"`
	Reference           string            `json:"reference"`
	UserID              int64             `json:"user_id"`
	Status              string            `json:"status"`
	TotalPrice          int64             `json:"total_price"`
	DeliveryAddress     string            `json:"delivery_address"`
	RequestedDeliveryAt time.Time         `json:"requested_delivery_at"`
	OrderedAt           time.Time         `json:"ordered_at"`
	Items               []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}

	now := time.Now()
	if !in.RequestedDeliveryAt.After(now) {
		return OrderOutput{}, fmt.Errorf("%w: delivery time must be in the future", ErrValidation)
	}
	if in.RequestedDeliveryAt.After(now.Add(u.deliveryWindow)) {
		return OrderOutput{}, fmt.Errorf("%w: delivery time outside the service window", ErrValidation)
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, fmt.Errorf("%w: invalid idempotency key", ErrValidation)
	}

	address := strings.TrimSpace(in.DeliveryAddress)
	if address == "" {
		// fall back to the profile address
		user, err := u.users.FindByID(ctx, userID)
		if err != nil {
			return OrderOutput{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if user == nil {
			return OrderOutput{}, ErrUnauthorized
		}
		address = strings.TrimSpace(user.Address)
	}
	if address == "" {
		return OrderOutput{}, fmt.Errorf("%w: delivery address required", ErrValidation)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// same key, same order
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		// snapshot prices at checkout time
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var total int64

		for _, ci := range cartItems {
			m, err := r.Meals().FindByID(ctx, ci.MealID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && !m.IsAvailable) {
				return fmt.Errorf("%w: meal no longer available", ErrValidation)
			}
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}

			orderItems = append(orderItems, model.OrderItem{
				MealID:            ci.MealID,
				MealNameSnapshot:  m.Name,
				UnitPriceSnapshot: m.Price,
				Quantity:          ci.Quantity,
				CreatedAt:         now,
			})

			total += m.Price * ci.Quantity
		}

		total += u.serviceFee

		// Flip the cart out of ACTIVE first; losing the flip means another
		// checkout for this user already claimed these lines.
		won, err := r.Carts().MarkCheckedOut(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if !won {
			return ErrConflict
		}

		reference := uuid.NewString()

		// Payment runs inside the transaction with a bounded timeout. Any
		// error or timeout rolls the whole checkout back, cart untouched.
		payCtx, cancel := context.WithTimeout(ctx, u.paymentTimeout)
		defer cancel()
		if err := u.pay.Charge(payCtx, userID, total, reference); err != nil {
			return fmt.Errorf("%w: payment failed: %v", ErrValidation, err)
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:              userID,
			Reference:           reference,
			Status:              model.OrderStatusPlaced,
			TotalPrice:          total,
			DeliveryAddress:     address,
			RequestedDeliveryAt: in.RequestedDeliveryAt,
			IdempotencyKey:      key,
			OrderedAt:           now,
			UpdatedAt:           now,
		})
		if err != nil {
			// concurrent submit with the same key: replay the winner
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return fmt.Errorf("%w: %v", ErrInternal, err3)
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return ErrConflict
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		created := model.Order{
			ID:                  orderID,
			UserID:              userID,
			Reference:           reference,
			Status:              model.OrderStatusPlaced,
			TotalPrice:          total,
			DeliveryAddress:     address,
			RequestedDeliveryAt: in.RequestedDeliveryAt,
			OrderedAt:           now,
		}
		out = toOrderOutput(created, orderItems)

		log.Info().
			Int64("user_id", userID).
			Int64("order_id", orderID).
			Int64("total_cents", total).
			Msg("order placed")

		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders pages through the user's orders, newest first. Restartable:
// the same page always re-reads from the store.
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, ErrUnauthorized
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Orders: outs, Total: total, Page: page, Limit: limit}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}
	if orderID <= 0 {
		return OrderOutput{}, fmt.Errorf("%w: invalid id", ErrValidation)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if o.UserID != userID {
			// someone else's order reads as absent
			return repo.ErrNotFound
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelMyOrder is the owner's cancellation path, allowed only while the
// kitchen has not started (PLACED/CONFIRMED). Later cancellation goes
// through the staff status endpoint.
func (u *OrderUsecase) CancelMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}
	if orderID <= 0 {
		return OrderOutput{}, fmt.Errorf("%w: invalid id", ErrValidation)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if o.UserID != userID {
			return repo.ErrNotFound
		}

		if o.Status.Terminal() {
			return ErrTerminalState
		}
		if model.RequiredRoleFor(o.Status, model.OrderStatusCancelled) != model.RoleUser {
			return fmt.Errorf("%w: preparation already started", ErrForbidden)
		}
		if !o.Status.CanTransitionTo(model.OrderStatusCancelled) {
			return ErrInvalidTransition
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return repo.ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// AdminListOrders is the back-office view: every user's orders, with
// optional status/user/date filters.
func (u *OrderUsecase) AdminListOrders(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return OrderListOutput{}, fmt.Errorf("%w: invalid status", ErrValidation)
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Orders: outs, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MealID:   it.MealID,
			Name:     it.MealNameSnapshot,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		ID:                  o.ID,
		Reference:           o.Reference,
		UserID:              o.UserID,
		Status:              string(o.Status),
		TotalPrice:          o.TotalPrice,
		DeliveryAddress:     o.DeliveryAddress,
		RequestedDeliveryAt: o.RequestedDeliveryAt,
		OrderedAt:           o.OrderedAt,
		Items:               outItems,
	}
}
