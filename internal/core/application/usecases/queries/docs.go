// Package queries holds the read side of the workflow engine. Handlers run
// plain SQL through GORM and return flat read models; they never load
// aggregates and never take row locks.
package queries
