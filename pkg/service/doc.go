// Package service implements the mock data engine behind the pension fund
// application: login, user administration, fund subscription, and
// transaction history, all against a single denormalized document held in
// a persistence slot.
//
// The design reproduces the mock's defining trait on purpose: there is no
// caching, no indexing, and no partial write. Every operation is a plain
// read-modify-write of the entire document. What the mock left unsafe is
// tightened here: calls are serialized through a single-writer mutex,
// duplicate subscriptions are rejected, and every outbound user projection
// has its password stripped.
package service
