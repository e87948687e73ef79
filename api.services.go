package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type CatalogServiceProvider interface {
	Add(ctx context.Context, title, author string) (*Book, error)
	Remove(ctx context.Context, title, author string) (*Book, error)
	SearchByTitle(ctx context.Context, title string) []*Book
	SearchByAuthor(ctx context.Context, author string) []*Book
	GetAll(ctx context.Context) []*Book
	Count(ctx context.Context) int
	Activity(ctx context.Context) ([]CatalogEvent, error)
}

// CatalogService serializes access to a single Library and
// publishes an event for each change applied to it.
type CatalogService struct {
	logger     *zap.Logger
	config     *Config
	clock      Clocker
	idsHandler UIDHandler
	queue      Queuer
	journal    EventJournal

	mu      sync.RWMutex
	library *Library
}

func NewCatalogService(logger *zap.Logger, config *Config, clock Clocker, idsHandler UIDHandler, queue Queuer, journal EventJournal) CatalogServiceProvider {
	return &CatalogService{
		logger:     logger,
		config:     config,
		clock:      clock,
		idsHandler: idsHandler,
		queue:      queue,
		journal:    journal,
		library:    NewLibrary(),
	}
}

func (cs *CatalogService) Add(ctx context.Context, title, author string) (*Book, error) {
	book, err := NewBook(title, author)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	err = cs.library.AddBook(book)
	cs.mu.Unlock()
	if err != nil {
		return nil, err
	}

	cs.publish(ctx, AddedQueue, BookAddedEvent, book)
	return book, nil
}

// Remove deletes the first catalog entry equal to the book described by
// title and author. The returned book is the stored entry, with its
// original letter case.
func (cs *CatalogService) Remove(ctx context.Context, title, author string) (*Book, error) {
	book, err := NewBook(title, author)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	var stored *Book
	for _, b := range cs.library.SearchByTitle(title) {
		if b.Equal(book) {
			stored = b
			break
		}
	}
	err = cs.library.RemoveBook(book)
	cs.mu.Unlock()
	if err != nil {
		return nil, err
	}

	cs.publish(ctx, RemovedQueue, BookRemovedEvent, stored)
	return stored, nil
}

func (cs *CatalogService) SearchByTitle(_ context.Context, title string) []*Book {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.library.SearchByTitle(title)
}

func (cs *CatalogService) SearchByAuthor(_ context.Context, author string) []*Book {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.library.SearchByAuthor(author)
}

func (cs *CatalogService) GetAll(_ context.Context) []*Book {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.library.GetAllBooks()
}

func (cs *CatalogService) Count(_ context.Context) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.library.Len()
}

// Activity returns the latest journal entries, oldest first.
func (cs *CatalogService) Activity(ctx context.Context) ([]CatalogEvent, error) {
	events, err := cs.journal.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit := cs.config.Catalog.ActivityLimit; limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// publish pushes a change event. A failure is only logged since the
// catalog change itself already succeeded.
func (cs *CatalogService) publish(ctx context.Context, qid, kind string, book *Book) {
	event := NewCatalogEvent(cs.idsHandler.Generate(EventIDPrefix), kind, book, cs.clock.Now().UTC())
	if err := cs.queue.Push(ctx, qid, event); err != nil {
		cs.logger.Error("service: failed to push event to queue",
			zap.String("qid", qid),
			zap.String("event.id", event.ID),
			zap.String("book.title", book.Title()),
			zap.Error(err),
		)
	}
}
