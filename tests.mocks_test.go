package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// This file contains mocks definitions needed to perform unit tests.

type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, event CatalogEvent) error
	PopFunc  func(ctx context.Context, qids ...string) (string, CatalogEvent, error)
}

// Push mocks the behavior of enqueuing an event.
func (m *MockQueuer) Push(ctx context.Context, qid string, event CatalogEvent) error {
	return m.PushFunc(ctx, qid, event)
}

// Pop mocks the behavior of dequeuing an event.
func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, CatalogEvent, error) {
	return m.PopFunc(ctx, qids...)
}

type MockEventJournal struct {
	AppendFunc func(ctx context.Context, event CatalogEvent) error
	GetAllFunc func(ctx context.Context) ([]CatalogEvent, error)
}

// Append mocks the behavior of recording an event by the journal.
func (m *MockEventJournal) Append(ctx context.Context, event CatalogEvent) error {
	return m.AppendFunc(ctx, event)
}

// GetAll mocks the behavior of retrieving all events by the journal.
func (m *MockEventJournal) GetAll(ctx context.Context) ([]CatalogEvent, error) {
	return m.GetAllFunc(ctx)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}

// newNopQueuer returns a queue mock accepting every push.
func newNopQueuer() *MockQueuer {
	return &MockQueuer{
		PushFunc: func(ctx context.Context, qid string, event CatalogEvent) error {
			return nil
		},
	}
}

// newTestCatalogService builds a catalog service backed by the given mocks.
func newTestCatalogService(q Queuer, j EventJournal) CatalogServiceProvider {
	return NewCatalogService(zap.NewNop(), &Config{Catalog: CatalogConfig{ActivityLimit: DefaultActivityLimit}}, NewMockClocker(), NewMockUIDHandler("abc", true), q, j)
}

// newTestAPIHandler builds an api handler with mocked clock and ids.
func newTestAPIHandler(config *Config, cs CatalogServiceProvider) *APIHandler {
	return NewAPIHandler(zap.NewNop(), config, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", false), cs)
}

// mustBook builds a book or panics, for test fixtures only.
func mustBook(title, author string) *Book {
	b, err := NewBook(title, author)
	if err != nil {
		panic(err)
	}
	return b
}
