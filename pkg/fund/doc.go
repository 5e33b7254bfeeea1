// Package fund defines the domain model for the pension fund engine: the
// persisted Document and the entities it owns (users, funds, portfolio
// links, the transaction ledger, and the last-notification slot).
//
// The Document is deliberately denormalized. It is the unit of persistence
// and is always read and written atomically as one JSON blob; entities
// reference each other by ID only, with no enforced referential integrity
// beyond lookups failing to find a match.
package fund
