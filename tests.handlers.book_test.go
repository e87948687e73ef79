package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeResponse reads the recorded response and decodes its json body.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) (*http.Response, map[string]interface{}) {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	m := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(data, &m), string(data))
	return res, m
}

// TestStatusHandler ensures api handler can provides its status.
func TestStatusHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api := newTestAPIHandler(&Config{}, nil)
	api.Status(w, req, httprouter.Params{})
	res, m := decodeResponse(t, w)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

	_, ok := m["requestid"]
	assert.True(t, ok)
	assert.Equal(t, "up & running since 0 mins", m["status"])
	assert.Equal(t, "Hello. Library catalog api is available. Enjoy :)", m["message"])
}

// TestIndexHandler ensures the index redirects to the status endpoint.
func TestIndexHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	newTestAPIHandler(&Config{}, nil).Index(w, req, httprouter.Params{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/status", w.Header().Get("Location"))
}

// TestCreateBookHandler ensures api handler can create a book.
func TestCreateBookHandler(t *testing.T) {
	t.Run("should pass: valid payload", func(t *testing.T) {
		cs := newTestCatalogService(newNopQueuer(), nil)
		api := newTestAPIHandler(&Config{}, cs)
		payload := []byte(`{"title":"Dune","author":"Frank Herbert"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res, m := decodeResponse(t, w)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
		assert.Equal(t, float64(http.StatusCreated), m["status"])
		assert.Equal(t, "Book created successfully.", m["message"])

		bookMap, ok := m["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Dune", bookMap["title"])
		assert.Equal(t, "Frank Herbert", bookMap["author"])
		assert.Equal(t, 1, cs.Count(context.Background()))
	})

	testCases := []struct {
		name    string
		body    io.Reader
		message string
	}{
		{"missing author", bytes.NewBufferString(`{"title":"Dune"}`), "author cannot be null or empty"},
		{"empty title", bytes.NewBufferString(`{"title":"","author":"Herbert"}`), "title cannot be null or empty"},
		{"malformed payload", bytes.NewBufferString(`{"title":`), ""},
		{"empty body", nil, "invalid book request body"},
	}

	for _, tc := range testCases {
		t.Run("should fail: "+tc.name, func(t *testing.T) {
			cs := newTestCatalogService(newNopQueuer(), nil)
			api := newTestAPIHandler(&Config{}, cs)
			req := httptest.NewRequest(http.MethodPost, "/v1/books", tc.body)
			w := httptest.NewRecorder()
			api.CreateBook(w, req, httprouter.Params{})
			res, m := decodeResponse(t, w)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			assert.Equal(t, "failed to create the book", m["message"])
			assert.Contains(t, m["data"], tc.message)
			assert.Equal(t, 0, cs.Count(context.Background()))
		})
	}
}

// TestGetAllBooksHandler ensures the whole catalog is served in insertion order.
func TestGetAllBooksHandler(t *testing.T) {
	cs := newTestCatalogService(newNopQueuer(), nil)
	for _, b := range [][2]string{{"Dune", "Herbert"}, {"Emma", "Austen"}} {
		_, err := cs.Add(context.Background(), b[0], b[1])
		require.NoError(t, err)
	}
	api := newTestAPIHandler(&Config{}, cs)
	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	w := httptest.NewRecorder()
	api.GetAllBooks(w, req, httprouter.Params{})
	res, m := decodeResponse(t, w)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(2), m["total"])
	books, ok := m["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].(map[string]interface{})["title"])
	assert.Equal(t, "Emma", books[1].(map[string]interface{})["title"])
}

// TestSearchBooksHandler ensures search by title or author and rejects ambiguous queries.
func TestSearchBooksHandler(t *testing.T) {
	cs := newTestCatalogService(newNopQueuer(), nil)
	for _, b := range [][2]string{{"Mockingbird", "Lee"}, {"Dune", "Herbert"}, {"Mockingbird", "Other"}} {
		_, err := cs.Add(context.Background(), b[0], b[1])
		require.NoError(t, err)
	}
	api := newTestAPIHandler(&Config{}, cs)

	testCases := []struct {
		name   string
		target string
		status int
		total  float64
	}{
		{"by title", "/v1/books/search?title=mockingbird", http.StatusOK, 2},
		{"by author", "/v1/books/search?author=HERBERT", http.StatusOK, 1},
		{"no match", "/v1/books/search?author=Nobody", http.StatusOK, 0},
		{"empty title", "/v1/books/search?title=", http.StatusOK, 0},
		{"no criteria", "/v1/books/search", http.StatusBadRequest, 0},
		{"both criteria", "/v1/books/search?title=Dune&author=Herbert", http.StatusBadRequest, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			w := httptest.NewRecorder()
			api.SearchBooks(w, req, httprouter.Params{})
			res, m := decodeResponse(t, w)
			assert.Equal(t, tc.status, res.StatusCode)
			if tc.status != http.StatusOK {
				return
			}
			assert.Equal(t, tc.total, m["total"])
			books, ok := m["data"].([]interface{})
			require.True(t, ok)
			assert.Len(t, books, int(tc.total))
		})
	}
}

// TestDeleteBookHandler ensures a book can be removed by title and author.
func TestDeleteBookHandler(t *testing.T) {
	testCases := []struct {
		name    string
		target  string
		status  int
		message string
		left    int
	}{
		{"should pass: case-insensitive match", "/v1/books?title=1984&author=george+orwell", http.StatusOK, "Book deleted successfully.", 0},
		{"should fail: unknown book", "/v1/books?title=X&author=Y", http.StatusNotFound, "book does not exist", 1},
		{"should fail: missing author", "/v1/books?title=1984", http.StatusBadRequest, "failed to delete the book", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cs := newTestCatalogService(newNopQueuer(), nil)
			_, err := cs.Add(context.Background(), "1984", "George Orwell")
			require.NoError(t, err)
			api := newTestAPIHandler(&Config{}, cs)
			req := httptest.NewRequest(http.MethodDelete, tc.target, nil)
			w := httptest.NewRecorder()
			api.DeleteBook(w, req, httprouter.Params{})
			res, m := decodeResponse(t, w)
			assert.Equal(t, tc.status, res.StatusCode)
			assert.Equal(t, tc.message, m["message"])
			assert.Equal(t, tc.left, cs.Count(context.Background()))
		})
	}
}

// TestGetActivityHandler ensures the journal entries are served.
func TestGetActivityHandler(t *testing.T) {
	t.Run("should pass: entries served", func(t *testing.T) {
		j := &MockEventJournal{
			GetAllFunc: func(ctx context.Context) ([]CatalogEvent, error) {
				return []CatalogEvent{
					{ID: "e:1", Kind: BookAddedEvent, Title: "Dune", Author: "Herbert", At: NewMockClocker().Now()},
				}, nil
			},
		}
		api := newTestAPIHandler(&Config{}, newTestCatalogService(newNopQueuer(), j))
		req := httptest.NewRequest(http.MethodGet, "/v1/activity", nil)
		w := httptest.NewRecorder()
		api.GetActivity(w, req, httprouter.Params{})
		res, m := decodeResponse(t, w)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, float64(1), m["total"])
		events, ok := m["data"].([]interface{})
		require.True(t, ok)
		assert.Equal(t, BookAddedEvent, events[0].(map[string]interface{})["kind"])
	})

	t.Run("should fail: journal failure", func(t *testing.T) {
		j := &MockEventJournal{
			GetAllFunc: func(ctx context.Context) ([]CatalogEvent, error) {
				return nil, errors.New("journal failure")
			},
		}
		api := newTestAPIHandler(&Config{}, newTestCatalogService(newNopQueuer(), j))
		req := httptest.NewRequest(http.MethodGet, "/v1/activity", nil)
		w := httptest.NewRecorder()
		api.GetActivity(w, req, httprouter.Params{})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// TestWriteResponse_CancelledContext ensures nothing is sent once the request context is done.
func TestWriteResponse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	err := WriteResponse(ctx, w, GenericResponse("r:abc", http.StatusOK, "ok", nil, EmptyData))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusClientClosedRequest, w.Code)
	assert.Empty(t, w.Body.String())
}
