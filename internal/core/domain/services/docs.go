// Package services provides domain services that make decisions spanning more
// than one aggregate.
//
// The package includes:
//   - BrokerDispatcher: picks the least-loaded broker for a shipment waiting in review
package services
