// Package workflow is the entry point used by inbound adapters. Orchestrator
// turns lifecycle verbs into status changes, delegates every mutation to a
// command handler and, once the handler has committed, tells the interested
// party through the configured ports.Notifier.
//
// A notification is sent only when something changed. Delivery failures are
// logged and counted; they never fail the call that caused them.
package workflow
