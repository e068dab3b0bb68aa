package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jumacaq/Megamoda-store/internal/models"
	"github.com/jumacaq/Megamoda-store/internal/paypal"
)

// Shared testify doubles for the repository and provider interfaces the core
// services depend on.

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) GetByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	args := m.Called(ctx, uid, at)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Add(ctx context.Context, product *models.Product) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}

func (m *ProductRepoMock) SetStock(ctx context.Context, productID string, stock int64) error {
	args := m.Called(ctx, productID, stock)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Get(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*models.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Set(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *CartRepoMock) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *models.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *OrderRepoMock) GetByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	args := m.Called(ctx, paymentID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type PaymentIntentRepoMock struct{ mock.Mock }

func (m *PaymentIntentRepoMock) Record(ctx context.Context, rec *models.PaymentIntentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *PaymentIntentRepoMock) GetByID(ctx context.Context, paymentID string) (*models.PaymentIntentRecord, error) {
	args := m.Called(ctx, paymentID)
	rec, _ := args.Get(0).(*models.PaymentIntentRecord)
	return rec, args.Error(1)
}

type PaypalClientMock struct{ mock.Mock }

func (m *PaypalClientMock) CreatePayment(ctx context.Context, items []paypal.Item, total string) (*paypal.CreatePaymentResult, error) {
	args := m.Called(ctx, items, total)
	res, _ := args.Get(0).(*paypal.CreatePaymentResult)
	return res, args.Error(1)
}

func (m *PaypalClientMock) ExecutePayment(ctx context.Context, paymentID, payerID string) (bool, string, error) {
	args := m.Called(ctx, paymentID, payerID)
	return args.Bool(0), args.String(1), args.Error(2)
}
