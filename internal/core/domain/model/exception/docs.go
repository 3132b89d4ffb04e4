// Package exception models compliance exceptions raised against shipments.
//
// An Exception is created unresolved, resolved at most once, and kept forever
// for audit. Severity is advisory; the approval gate that treats unresolved
// "error" exceptions as blocking lives in the workflow layer.
package exception
