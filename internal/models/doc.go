// Package models defines the data model for the concert discovery service.
//
// Domain records (Artist, Event, FlightOffer) are normalized forms of
// upstream API payloads, flattened only as far as display requires. The
// Persisted* variants add identity and timestamps for the SQLite lookup
// cache in internal/repositories.
package models
