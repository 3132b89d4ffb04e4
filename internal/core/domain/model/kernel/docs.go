// Package kernel provides the value objects shared by every aggregate of the
// pre-clearance domain.
//
// The package includes:
//   - ID: the positive numeric identity of shipments, exceptions, audit entries,
//     users and brokers
//   - ClearanceToken: the token issued to a shipper when a shipment is approved
//
// Both types are immutable and safe for concurrent use.
package kernel
