package services

import (
	"errors"
	"fmt"
	"time"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
)

var (
	// ErrBrokerNotFound is returned when no broker is available for dispatch.
	ErrBrokerNotFound = errors.New("broker not found")

	// ErrShipmentNotAwaitingBroker is returned when the shipment is not under
	// review or already has a broker.
	ErrShipmentNotAwaitingBroker = errors.New("shipment is not awaiting a broker")
)

// BrokerLoad is the number of active (non-terminal) shipments a broker holds.
type BrokerLoad struct {
	BrokerID        kernel.ID
	ActiveShipments int
}

// BrokerDispatcher is a domain service that picks the responsible broker for a
// shipment waiting in review.
//
// Business rules:
//   - only under_review shipments without a broker are dispatched
//   - the broker with the fewest active shipments wins
//   - ties go to the lowest broker id
//
// Example usage:
//
//	dispatcher := NewBrokerDispatcher()
//	brokerID, err := dispatcher.Dispatch(s, loads, time.Now())
//	if errors.Is(err, ErrBrokerNotFound) {
//	    // no brokers configured
//	    return
//	}
type BrokerDispatcher struct{}

func NewBrokerDispatcher() BrokerDispatcher {
	return BrokerDispatcher{}
}

// Dispatch selects a broker from loads and assigns it to s.
func (d BrokerDispatcher) Dispatch(s *shipment.Shipment, loads []BrokerLoad, now time.Time) (kernel.ID, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if s.Status() != shipment.UnderReview || s.AssignedBrokerID() != nil {
		return 0, fmt.Errorf("%w: shipment %s is %s", ErrShipmentNotAwaitingBroker, s.Reference(), s.Status())
	}

	best, err := d.findLeastLoaded(loads)
	if err != nil {
		return 0, err
	}

	if err := s.AssignBroker(best, now); err != nil {
		return 0, err
	}

	return best, nil
}

func (d BrokerDispatcher) findLeastLoaded(loads []BrokerLoad) (kernel.ID, error) {
	var (
		best     kernel.ID
		bestLoad int
		found    bool
	)

	for _, l := range loads {
		if err := l.BrokerID.Validate(); err != nil {
			return 0, err
		}

		if !found || l.ActiveShipments < bestLoad || (l.ActiveShipments == bestLoad && l.BrokerID < best) {
			best = l.BrokerID
			bestLoad = l.ActiveShipments
			found = true
		}
	}

	if !found {
		return 0, ErrBrokerNotFound
	}

	return best, nil
}
