// Package store defines the persistence contract for the card
// collection and the storage error taxonomy.
//
// The collection is persisted as two independent records, the full
// cards sequence and the full folders sequence, written wholesale on
// every mutation. Implementations live under internal/platform.
package store
