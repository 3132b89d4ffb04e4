package workflow_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/core/ports"
	"preclear/internal/pkg/errs"
)

// memStore is an in-memory stand-in for the database. A unit of work holds
// the store mutex from Begin until Rollback, which handlers always defer.
// Audit entries become visible only on commit.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	shipments  map[kernel.ID]*shipment.Shipment
	exceptions map[kernel.ID]*exception.Exception
	audit      []*audit.Entry
}

func newMemStore() *memStore {
	return &memStore{
		shipments:  make(map[kernel.ID]*shipment.Shipment),
		exceptions: make(map[kernel.ID]*exception.Exception),
	}
}

func (s *memStore) id() kernel.ID {
	s.nextID++
	return kernel.ID(s.nextID)
}

func (s *memStore) auditFor(shipmentID kernel.ID) []*audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*audit.Entry
	for _, e := range s.audit {
		if e.ShipmentID() != nil && *e.ShipmentID() == shipmentID {
			out = append(out, e)
		}
	}
	return out
}

type memUoW struct {
	store   *memStore
	pending []*audit.Entry
}

func (u *memUoW) Begin(context.Context) error {
	u.store.mu.Lock()
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	u.store.audit = append(u.store.audit, u.pending...)
	u.pending = nil
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	u.pending = nil
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) ShipmentRepository() ports.ShipmentRepository   { return memShipments{u} }
func (u *memUoW) ExceptionRepository() ports.ExceptionRepository { return memExceptions{u} }
func (u *memUoW) AuditLogRepository() ports.AuditLogRepository   { return memAudit{u} }

type uowFactory struct{ store *memStore }

func (f uowFactory) Create() commands.UoW { return &memUoW{store: f.store} }

type shipmentUoWFactory struct{ store *memStore }

func (f shipmentUoWFactory) Create() commands.ShipmentUoW { return &memUoW{store: f.store} }

type memShipments struct{ u *memUoW }

func (r memShipments) Add(_ context.Context, s *shipment.Shipment) error {
	if err := s.BindID(r.u.store.id()); err != nil {
		return err
	}
	r.u.store.shipments[s.ID()] = s
	return nil
}

func (r memShipments) Update(_ context.Context, s *shipment.Shipment) error {
	if _, ok := r.u.store.shipments[s.ID()]; !ok {
		return errs.NewObjectNotFoundError("shipment", s.ID().Int64())
	}
	r.u.store.shipments[s.ID()] = s
	return nil
}

func (r memShipments) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	return r.GetForUpdate(ctx, id)
}

func (r memShipments) GetForUpdate(_ context.Context, id kernel.ID) (*shipment.Shipment, error) {
	s, ok := r.u.store.shipments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id.Int64())
	}
	return s, nil
}

func (r memShipments) GetFirstAwaitingBroker(context.Context) (*shipment.Shipment, error) {
	var first *shipment.Shipment
	for _, s := range r.u.store.shipments {
		if s.Status() != shipment.UnderReview || s.AssignedBrokerID() != nil {
			continue
		}
		if first == nil || s.CreatedAt().Before(first.CreatedAt()) ||
			(s.CreatedAt().Equal(first.CreatedAt()) && s.ID() < first.ID()) {
			first = s
		}
	}
	if first == nil {
		return nil, errs.NewObjectNotFoundError("shipment", "first awaiting broker")
	}
	return first, nil
}

func (r memShipments) CountActiveByBroker(_ context.Context, ids []kernel.ID) (map[kernel.ID]int, error) {
	counts := make(map[kernel.ID]int, len(ids))
	for _, id := range ids {
		counts[id] = 0
	}
	for _, s := range r.u.store.shipments {
		if b := s.AssignedBrokerID(); b != nil && !s.Status().IsTerminal() {
			if _, ok := counts[*b]; ok {
				counts[*b]++
			}
		}
	}
	return counts, nil
}

type memExceptions struct{ u *memUoW }

func (r memExceptions) Add(_ context.Context, e *exception.Exception) error {
	if err := e.BindID(r.u.store.id()); err != nil {
		return err
	}
	r.u.store.exceptions[e.ID()] = e
	return nil
}

func (r memExceptions) Update(_ context.Context, e *exception.Exception) error {
	r.u.store.exceptions[e.ID()] = e
	return nil
}

func (r memExceptions) GetForUpdate(_ context.Context, id kernel.ID) (*exception.Exception, error) {
	e, ok := r.u.store.exceptions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("exception", id.Int64())
	}
	return e, nil
}

func (r memExceptions) ListUnresolved(_ context.Context, shipmentID kernel.ID) ([]*exception.Exception, error) {
	var out []*exception.Exception
	for _, e := range r.u.store.exceptions {
		if e.ShipmentID() == shipmentID && !e.Resolved() {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *exception.Exception) int {
		return cmp.Compare(b.ID(), a.ID())
	})
	return out, nil
}

type memAudit struct{ u *memUoW }

func (r memAudit) Append(_ context.Context, e *audit.Entry) error {
	r.u.pending = append(r.u.pending, e)
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) last() ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

type staticBrokers []kernel.ID

func (b staticBrokers) Brokers(context.Context) ([]kernel.ID, error) { return b, nil }

func (b staticBrokers) Exists(_ context.Context, id kernel.ID) (bool, error) {
	return slices.Contains(b, id), nil
}

type countingMetrics struct {
	mu            sync.Mutex
	transitions   int
	failures      map[string]int
	notifications int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{failures: make(map[string]int)}
}

func (m *countingMetrics) TransitionApplied(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions++
}

func (m *countingMetrics) OperationFailed(_, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[kind]++
}

func (m *countingMetrics) NotificationFailed(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications++
}

var errNotifierDown = errors.New("notifier down")
