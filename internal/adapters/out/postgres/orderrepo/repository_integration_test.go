package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository using a PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(orderNumber string) *order.Order {
	phone, err := kernel.NewPhone("01712345678")
	suite.Require().NoError(err)
	customer, err := order.NewCustomer("Rahim Uddin", phone, "12 Lake Road", "Dhaka")
	suite.Require().NoError(err)

	mug, err := order.NewItem(kernel.NewUUID(), "p1", "Ceramic Mug", "Blue", 2, 250)
	suite.Require().NoError(err)
	plate, err := order.NewItem(kernel.NewUUID(), "p2", "Dinner Plate", "", 1, 400)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), orderNumber, customer, []order.Item{mug, plate},
		pricing.Result{Subtotal: 900, DiscountAmount: 90, DeliveryCharge: 60, Total: 870, PartialAmount: 87},
		order.MethodCashOnDelivery, "WELCOME10",
		time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	original := suite.createTestOrder("ORD-1001")

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.ID().IsEqual(retrieved.ID()))
	suite.Equal("ORD-1001", retrieved.OrderNumber())
	suite.Equal("Rahim Uddin", retrieved.Customer().Name())
	suite.Equal("01712345678", retrieved.Customer().Phone().String())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(order.PaymentUnpaid, retrieved.PaymentStatus())
	suite.Equal(int64(900), retrieved.Subtotal())
	suite.Equal(int64(870), retrieved.TotalAmount())
	suite.Equal("WELCOME10", retrieved.CouponCode())
	suite.Len(retrieved.Items(), 2)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(retrieved)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByOrderNumber() {
	ctx := context.Background()
	original := suite.createTestOrder("ORD-1002")

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetByOrderNumber(ctx, "ORD-1002")
	suite.Require().NoError(err)
	suite.True(original.ID().IsEqual(retrieved.ID()))

	_, err = suite.repository.GetByOrderNumber(ctx, "ORD-9999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsMutableState() {
	ctx := context.Background()
	original := suite.createTestOrder("ORD-1003")

	suite.tracker.On("TrackAggregate", original.ID(), original).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	now := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)
	suite.Require().NoError(original.TransitionTo(order.StatusConfirmed, now))
	suite.Require().NoError(original.MarkDispatched("CN-55", "TRK-55", "pending_pickup", now))
	suite.Require().NoError(suite.repository.Update(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusShipped, retrieved.Status())
	suite.Equal("CN-55", retrieved.ConsignmentID())
	suite.Equal("TRK-55", retrieved.TrackingCode())
	suite.Equal("pending_pickup", retrieved.CourierStatus())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()
	unknown := suite.createTestOrder("ORD-1004")

	err := suite.repository.Update(ctx, unknown)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllDispatched_SkipsTerminalCourierStatuses() {
	ctx := context.Background()
	now := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)

	inTransit := suite.createTestOrder("ORD-2001")
	suite.Require().NoError(inTransit.TransitionTo(order.StatusConfirmed, now))
	suite.Require().NoError(inTransit.MarkDispatched("CN-1", "TRK-1", "in_transit", now))

	delivered := suite.createTestOrder("ORD-2002")
	suite.Require().NoError(delivered.TransitionTo(order.StatusConfirmed, now))
	suite.Require().NoError(delivered.MarkDispatched("CN-2", "TRK-2", "delivered", now))

	pendingOnly := suite.createTestOrder("ORD-2003")

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, inTransit))
	suite.Require().NoError(suite.repository.Add(ctx, delivered))
	suite.Require().NoError(suite.repository.Add(ctx, pendingOnly))

	dispatched, err := suite.repository.GetAllDispatched(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(dispatched, 1)
	suite.Equal("ORD-2001", dispatched[0].OrderNumber())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
