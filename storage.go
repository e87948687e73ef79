package main

import "context"

// EventJournal defines possible operations on the catalog activity journal.
type EventJournal interface {
	Append(ctx context.Context, event CatalogEvent) error
	GetAll(ctx context.Context) ([]CatalogEvent, error)
}
