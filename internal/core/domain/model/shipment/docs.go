// Package shipment provides the Shipment aggregate and its clearance state
// machine.
//
// The package includes:
//   - Shipment: the aggregate root owning status, broker assignment, clearance
//     token and notes
//   - Status: the lifecycle states and the immutable allowed-transition table
//   - Reference and ReferenceGenerator: the human-facing "SHP-…" reference
//   - Details and Summary: shipper-declared descriptive fields
//
// Key business rules:
//   - shipments start in draft and only move along table edges
//   - a transition into the current status is a no-op success
//   - completed and cancelled are terminal; cancelled is reachable from every
//     other state
//   - approval issues the clearance token
package shipment
