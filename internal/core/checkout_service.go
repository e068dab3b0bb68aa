package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/db"
	"github.com/jumacaq/Megamoda-store/internal/models"
	"github.com/jumacaq/Megamoda-store/internal/paypal"
)

var (
	// ErrEmptyCart guards intent creation and finalization: no payment and no
	// order without at least one line item.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownIntent means the provider callback referenced a payment id we
	// never recorded a correlation for. There is no retry path; the checkout
	// state, if any, lives on the provider side and needs support.
	ErrUnknownIntent = errors.New("unknown payment intent")

	// ErrOrderNotPersisted means the order write itself failed. Nothing else
	// has been touched at that point: stock and cart are exactly as before.
	ErrOrderNotPersisted = errors.New("order could not be persisted")
)

// PaymentDeclinedError is a provider-reported decline of an execute call,
// carrying the provider's message for display. The payment did not happen.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined by provider: %s", e.Message)
}

// checkoutService implements CheckoutService. It is the only component that
// talks to the payment provider, and the only writer of orders, correlation
// records and stock.
type checkoutService struct {
	paypalClient paypal.Client
	userRepo     db.UserRepository
	cartRepo     db.CartRepository
	productRepo  db.ProductRepository
	orderRepo    db.OrderRepository
	paymentRepo  db.PaymentIntentRepository
	logger       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(
	paypalClient paypal.Client,
	userRepo db.UserRepository,
	cartRepo db.CartRepository,
	productRepo db.ProductRepository,
	orderRepo db.OrderRepository,
	paymentRepo db.PaymentIntentRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		paypalClient: paypalClient,
		userRepo:     userRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		logger:       logger,
	}
}

// BeginCheckout snapshots the user's cart into a provider payment and records
// the {payment id -> user id} correlation. The record must exist before the
// buyer leaves for the provider: the return redirect carries no session, and
// the correlation is the only way back to the user. Order matters — if the
// provider call fails nothing is persisted, and if the correlation write
// fails the approval URL is withheld so the buyer is never redirected into an
// unresolvable checkout.
func (s *checkoutService) BeginCheckout(ctx context.Context, userID string) (*CheckoutSession, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]paypal.Item, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, paypal.Item{
			Name:     line.Name,
			SKU:      line.ProductID,
			Price:    fmt.Sprintf("%.2f", line.Price),
			Currency: "USD",
			Quantity: line.Quantity,
		})
	}
	total := CartTotal(cart.Items).StringFixed(2)

	created, err := s.paypalClient.CreatePayment(ctx, items, total)
	if err != nil {
		return nil, fmt.Errorf("create provider payment: %w", err)
	}

	rec := &models.PaymentIntentRecord{
		PaymentID: created.PaymentID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.paymentRepo.Record(ctx, rec); err != nil {
		return nil, fmt.Errorf("record payment correlation for '%s': %w", created.PaymentID, err)
	}

	s.logger.Info("Checkout started",
		zap.String("user_id", userID),
		zap.String("payment_id", created.PaymentID),
		zap.String("total", total))

	return &CheckoutSession{
		PaymentID:   created.PaymentID,
		ApprovalURL: created.ApprovalURL,
	}, nil
}

// ResolveUser recovers the buyer from a provider payment id via the
// correlation record written at BeginCheckout.
func (s *checkoutService) ResolveUser(ctx context.Context, paymentID string) (*models.User, error) {
	rec, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment id '%s'", ErrUnknownIntent, paymentID)
		}
		return nil, fmt.Errorf("failed to load correlation record for '%s': %w", paymentID, err)
	}

	user, err := s.userRepo.GetByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user '%s' referenced by payment '%s'", ErrUserNotFound, rec.UserID, paymentID)
		}
		return nil, fmt.Errorf("failed to load user '%s' for payment '%s': %w", rec.UserID, paymentID, err)
	}
	return user, nil
}

// CompleteCheckout is the callback-request side of the protocol: identity is
// recovered from the correlation record, the payment is executed exactly
// once, and the cart is finalized into an order. A repeated callback for an
// already-finalized payment returns the existing order without touching the
// provider again.
func (s *checkoutService) CompleteCheckout(ctx context.Context, paymentID, payerID string) (*CheckoutResult, error) {
	user, err := s.ResolveUser(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.orderRepo.GetByPaymentID(ctx, paymentID); err == nil {
		s.logger.Info("Duplicate callback for finalized payment, returning existing order",
			zap.String("payment_id", paymentID),
			zap.String("order_number", existing.OrderNumber))
		return &CheckoutResult{Order: existing, User: user}, nil
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to probe existing order for '%s': %w", paymentID, err)
	}

	approved, providerMsg, err := s.paypalClient.ExecutePayment(ctx, paymentID, payerID)
	if err != nil {
		return nil, fmt.Errorf("execute provider payment '%s': %w", paymentID, err)
	}
	if !approved {
		return nil, &PaymentDeclinedError{Message: providerMsg}
	}

	// The items finalized are the ones on record at execution time. The cart
	// could in principle change between approval and this read; reading once
	// and passing the snapshot down keeps order and total consistent.
	cart, err := s.cartRepo.Get(ctx, user.UID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart after payment '%s': %w", paymentID, err)
	}

	order, err := s.Finalize(ctx, user, cart.Items, paymentID)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Order: order, User: user}, nil
}

// Finalize performs the terminal transition from paid cart to durable order.
// Steps, in order: empty guard, idempotency probe, order write, stock
// decrement, cart delete. A failed order write aborts with nothing changed.
// Failures after the order exists are logged as warnings and do not undo it —
// the payment has already happened and the buyer must see their order.
func (s *checkoutService) Finalize(ctx context.Context, user *models.User, items []models.CartItem, paymentID string) (*models.Order, error) {
	if user == nil {
		return nil, errors.New("a resolved user is required for finalization")
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if existing, err := s.orderRepo.GetByPaymentID(ctx, paymentID); err == nil {
		return existing, nil
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to probe existing order for '%s': %w", paymentID, err)
	}

	total, _ := CartTotal(items).Float64()
	order := &models.Order{
		UserID:      user.UID,
		UserName:    user.Nombre,
		UserEmail:   user.Email,
		Items:       items,
		Total:       total,
		Status:      models.OrderStatusCompleted,
		PaymentID:   paymentID,
		CreatedAt:   time.Now(),
		OrderNumber: NewOrderNumber(),
	}

	orderID, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderNotPersisted, err)
	}
	order.ID = orderID

	s.decrementStock(ctx, items)

	if err := s.cartRepo.Delete(ctx, user.UID); err != nil {
		s.logger.Warn("Order created but cart could not be cleared",
			zap.String("user_id", user.UID),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}

	s.logger.Info("Order finalized",
		zap.String("user_id", user.UID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total))

	return order, nil
}

// decrementStock lowers each purchased product's stock by the bought
// quantity, floored at zero. Failures here are warnings: the order already
// exists and stock drift is preferable to hiding a paid order.
func (s *checkoutService) decrementStock(ctx context.Context, items []models.CartItem) {
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Warn("Stock update skipped: product not readable",
				zap.String("product_id", item.ProductID),
				zap.Error(err))
			continue
		}

		newStock := product.Stock - item.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := s.productRepo.SetStock(ctx, item.ProductID, newStock); err != nil {
			s.logger.Warn("Stock update failed",
				zap.String("product_id", item.ProductID),
				zap.Int64("wanted_stock", newStock),
				zap.Error(err))
		}
	}
}

// NewOrderNumber builds a human-readable order identifier. The random suffix
// keeps two orders within the same second from colliding.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), uuid.NewString()[:4])
}
