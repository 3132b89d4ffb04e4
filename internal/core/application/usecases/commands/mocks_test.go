package commands_test

import (
	"context"
	"time"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func idPtr(v int64) *kernel.ID {
	id := kernel.ID(v)
	return &id
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetFirstAwaitingBroker(ctx context.Context) (*shipment.Shipment, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) CountActiveByBroker(ctx context.Context, ids []kernel.ID) (map[kernel.ID]int, error) {
	args := m.Called(ctx, ids)
	counts, _ := args.Get(0).(map[kernel.ID]int)
	return counts, args.Error(1)
}

type MockExceptionRepository struct{ mock.Mock }

func (m *MockExceptionRepository) Add(ctx context.Context, e *exception.Exception) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExceptionRepository) Update(ctx context.Context, e *exception.Exception) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExceptionRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*exception.Exception, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*exception.Exception)
	return e, args.Error(1)
}

func (m *MockExceptionRepository) ListUnresolved(ctx context.Context, shipmentID kernel.ID) ([]*exception.Exception, error) {
	args := m.Called(ctx, shipmentID)
	list, _ := args.Get(0).([]*exception.Exception)
	return list, args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

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

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) ExceptionRepository() ports.ExceptionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExceptionRepository)
}

func (m *MockUoW) AuditLogRepository() ports.AuditLogRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditLogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockBrokerDirectory struct{ mock.Mock }

func (m *MockBrokerDirectory) Brokers(ctx context.Context) ([]kernel.ID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]kernel.ID)
	return ids, args.Error(1)
}

func (m *MockBrokerDirectory) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDocumentChecker struct{ mock.Mock }

func (m *MockDocumentChecker) HasRequiredDocuments(ctx context.Context, shipmentID kernel.ID) (bool, error) {
	args := m.Called(ctx, shipmentID)
	return args.Bool(0), args.Error(1)
}

// uowFixture wires one MockUoW with permissive repository accessors.
type uowFixture struct {
	uow        *MockUoW
	shipments  *MockShipmentRepository
	exceptions *MockExceptionRepository
	audit      *MockAuditLogRepository
	factory    *MockUoWFactory
	shipFact   *MockShipmentUoWFactory
}

func newUoWFixture() *uowFixture {
	f := &uowFixture{
		uow:        new(MockUoW),
		shipments:  new(MockShipmentRepository),
		exceptions: new(MockExceptionRepository),
		audit:      new(MockAuditLogRepository),
		factory:    new(MockUoWFactory),
		shipFact:   new(MockShipmentUoWFactory),
	}
	f.uow.On("ShipmentRepository").Return(f.shipments).Maybe()
	f.uow.On("ExceptionRepository").Return(f.exceptions).Maybe()
	f.uow.On("AuditLogRepository").Return(f.audit).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()
	f.shipFact.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *uowFixture) assertExpectations(t mock.TestingT) {
	f.uow.AssertExpectations(t)
	f.shipments.AssertExpectations(t)
	f.exceptions.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

// storedShipment rehydrates a shipment as the repository would return it.
func storedShipment(id int64, status shipment.Status, brokerID *kernel.ID) *shipment.Shipment {
	snap := shipment.Snapshot{
		ID:               kernel.ID(id),
		Reference:        "SHP-1700000000000",
		OwnerID:          3,
		Name:             "Laptops",
		Status:           status,
		AssignedBrokerID: brokerID,
		CreatedAt:        testNow.Add(-time.Hour),
		UpdatedAt:        testNow.Add(-time.Hour),
	}
	if status == shipment.Approved || status == shipment.Completed {
		token := kernel.NewClearanceToken()
		issued := testNow.Add(-time.Minute)
		snap.ClearanceToken = &token
		snap.TokenIssuedAt = &issued
	}
	s, err := shipment.RestoreShipment(snap)
	if err != nil {
		panic(err)
	}
	return s
}

func storedException(id, shipmentID int64, code string, severity exception.Severity) *exception.Exception {
	e, err := exception.RestoreException(exception.Snapshot{
		ID:         kernel.ID(id),
		ShipmentID: kernel.ID(shipmentID),
		Code:       code,
		Message:    "needs attention",
		Severity:   severity,
		CreatedAt:  testNow.Add(-time.Hour),
	})
	if err != nil {
		panic(err)
	}
	return e
}

func auditWith(action audit.Action) any {
	return mock.MatchedBy(func(e *audit.Entry) bool { return e.Action() == action })
}
