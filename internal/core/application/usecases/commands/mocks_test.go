package commands_test

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/ports"

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

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, p *rider.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, p *rider.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Profile), args.Error(1)
}

func (m *MockRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Profile), args.Error(1)
}

type MockEarningRepository struct{ mock.Mock }

func (m *MockEarningRepository) Add(ctx context.Context, e *rider.Earning) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEarningRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*payment.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

// GetByReferenceForUpdate also accepts a func(string) *payment.Transaction return
// value for transactions created earlier in the same test.
func (m *MockTransactionRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Transaction, error) {
	args := m.Called(ctx, reference)
	if fn, ok := args.Get(0).(func(string) *payment.Transaction); ok {
		return fn(reference), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]*payment.Transaction, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Transaction), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, ping rider.LocationPing) error {
	args := m.Called(ctx, ping)
	return args.Error(0)
}

// MockUoW hands out the repository mocks it was built with.
type MockUoW struct {
	mock.Mock
	orders       *MockOrderRepository
	users        *MockUserRepository
	riders       *MockRiderRepository
	earnings     *MockEarningRepository
	transactions *MockTransactionRepository
	locations    *MockLocationRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:       new(MockOrderRepository),
		users:        new(MockUserRepository),
		riders:       new(MockRiderRepository),
		earnings:     new(MockEarningRepository),
		transactions: new(MockTransactionRepository),
		locations:    new(MockLocationRepository),
	}
}

// expectTx registers Begin, Commit and Rollback. Pass commit=false when the
// unit of work is expected to fail before committing.
func (m *MockUoW) expectTx(ctx context.Context, commit bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if commit {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Once()
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.orders }
func (m *MockUoW) UserRepository() ports.UserRepository { return m.users }
func (m *MockUoW) RiderRepository() ports.RiderRepository { return m.riders }
func (m *MockUoW) EarningRepository() ports.EarningRepository { return m.earnings }
func (m *MockUoW) TransactionRepository() ports.TransactionRepository { return m.transactions }
func (m *MockUoW) LocationRepository() ports.LocationRepository { return m.locations }

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.riders.AssertExpectations(t)
	m.earnings.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
	m.locations.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// singleUoW returns a factory that always hands out uow.
func singleUoW(uow *MockUoW) *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(uow)
	return f
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) NotifyOrderCreated(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotificationSink) NotifyRiderAssigned(ctx context.Context, o *order.Order, p *rider.Profile) {
	m.Called(ctx, o, p)
}

type MockProofStorage struct{ mock.Mock }

func (m *MockProofStorage) PresignUpload(ctx context.Context, key, contentType string) (ports.PresignedURL, error) {
	args := m.Called(ctx, key, contentType)
	return args.Get(0).(ports.PresignedURL), args.Error(1)
}

func (m *MockProofStorage) PresignDownload(ctx context.Context, key string) (ports.PresignedURL, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ports.PresignedURL), args.Error(1)
}

func (m *MockProofStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Initialize(ctx context.Context, req ports.InitializePaymentRequest) (payment.Checkout, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.Checkout), args.Error(1)
}

func (m *MockPaymentGateway) Verify(ctx context.Context, reference string) (payment.Outcome, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(payment.Outcome), args.Error(1)
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (ports.WebhookEvent, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(ports.WebhookEvent), args.Error(1)
}
