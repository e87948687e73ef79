package main

import "time"

// Event kinds published on catalog changes.
const (
	BookAddedEvent   = "book.added"
	BookRemovedEvent = "book.removed"
)

// CatalogEvent records a single change applied to the catalog.
type CatalogEvent struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	At     time.Time `json:"at"`
}

// NewCatalogEvent builds an event of the given kind about a book.
func NewCatalogEvent(id, kind string, book *Book, at time.Time) CatalogEvent {
	return CatalogEvent{
		ID:     id,
		Kind:   kind,
		Title:  book.Title(),
		Author: book.Author(),
		At:     at,
	}
}
