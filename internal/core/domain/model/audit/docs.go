// Package audit defines append-only audit records. Entries are built once and
// handed to the audit repository; nothing in this module updates or deletes them.
package audit
