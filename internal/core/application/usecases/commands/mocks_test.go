package commands_test

import (
	"context"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/draft"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/core/domain/model/risk"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllDispatched(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDraftRepository struct{ mock.Mock }

func (m *MockDraftRepository) Upsert(ctx context.Context, d *draft.Draft) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDraftRepository) GetBySession(ctx context.Context, sessionID string) (*draft.Draft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*draft.Draft), args.Error(1)
}

func (m *MockDraftRepository) PurgeUnconvertedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (pricing.Coupon, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(pricing.Coupon), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockZoneRepository struct{ mock.Mock }

func (m *MockZoneRepository) GetByName(ctx context.Context, name string) (pricing.DeliveryZone, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(pricing.DeliveryZone), args.Error(1)
}

func (m *MockZoneRepository) GetAll(ctx context.Context) ([]pricing.DeliveryZone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]pricing.DeliveryZone), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDraftUoW struct{ mock.Mock }

func (m *MockDraftUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDraftUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDraftUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDraftUoW) DraftRepository() ports.DraftRepository {
	args := m.Called()
	return args.Get(0).(ports.DraftRepository)
}

type MockDraftUoWFactory struct{ mock.Mock }

func (m *MockDraftUoWFactory) Create() commands.DraftUoW {
	args := m.Called()
	return args.Get(0).(commands.DraftUoW)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) DraftRepository() ports.DraftRepository {
	args := m.Called()
	return args.Get(0).(ports.DraftRepository)
}

func (m *MockCheckoutUoW) CouponRepository() ports.CouponRepository {
	args := m.Called()
	return args.Get(0).(ports.CouponRepository)
}

func (m *MockCheckoutUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockCourierClient struct{ mock.Mock }

func (m *MockCourierClient) CreateConsignment(
	ctx context.Context, req services.ConsignmentRequest,
) (ports.Consignment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Consignment), args.Error(1)
}

func (m *MockCourierClient) GetConsignmentStatus(ctx context.Context, consignmentID string) (string, error) {
	args := m.Called(ctx, consignmentID)
	return args.String(0), args.Error(1)
}

func (m *MockCourierClient) GetBalance(ctx context.Context) (ports.CourierBalance, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.CourierBalance), args.Error(1)
}

type MockRiskClient struct{ mock.Mock }

func (m *MockRiskClient) Lookup(ctx context.Context, phone string) ([]risk.CourierHistory, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]risk.CourierHistory), args.Error(1)
}

type MockPaymentClient struct{ mock.Mock }

func (m *MockPaymentClient) CreateCharge(
	ctx context.Context, invoice string, amount int64,
) (ports.PaymentCharge, error) {
	args := m.Called(ctx, invoice, amount)
	return args.Get(0).(ports.PaymentCharge), args.Error(1)
}

func (m *MockPaymentClient) VerifyTransaction(ctx context.Context, transactionID string) (string, error) {
	args := m.Called(ctx, transactionID)
	return args.String(0), args.Error(1)
}
