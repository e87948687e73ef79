package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Library catalog api is available. Enjoy :)",
		},
	); err != nil {
		api.logger.Error("failed to send status response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// CreateBook adds the book described by the request body to the catalog.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	book, err := DecodeBookRequestBody(r)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(w, r, NewAPIError(requestID, http.StatusBadRequest, "failed to create the book", err.Error()))
		return
	}

	book, err = api.catalogService.Add(r.Context(), book.Title(), book.Author())
	if err != nil {
		status := http.StatusInternalServerError
		var verr ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
		}
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(w, r, NewAPIError(requestID, status, "failed to create the book", err.Error()))
		return
	}

	api.logger.Info("success to create book",
		zap.String("book.title", book.Title()),
		zap.String("book.author", book.Author()),
		zap.String("request.id", requestID),
	)
	api.send(w, r, GenericResponse(requestID, http.StatusCreated, "Book created successfully.", nil, book))
}

// GetAllBooks serves the whole catalog in insertion order.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	books := api.catalogService.GetAll(r.Context())
	api.logger.Info("success to get all books", zap.String("request.id", requestID))
	total := len(books)
	api.send(w, r, GenericResponse(requestID, http.StatusOK, "All books fetched successfully.", &total, books))
}

// SearchBooks serves the books matching exactly one of the `title` or `author` query parameters.
func (api *APIHandler) SearchBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	q := r.URL.Query()
	_, byTitle := q["title"]
	_, byAuthor := q["author"]

	var books []*Book
	switch {
	case byTitle && !byAuthor:
		books = api.catalogService.SearchByTitle(r.Context(), q.Get("title"))
	case byAuthor && !byTitle:
		books = api.catalogService.SearchByAuthor(r.Context(), q.Get("author"))
	default:
		api.logger.Error("invalid search query", zap.String("request.query", r.URL.RawQuery), zap.String("request.id", requestID))
		api.sendError(w, r, NewAPIError(requestID, http.StatusBadRequest, "provide either title or author to search for", EmptyData))
		return
	}

	api.logger.Info("success to search books", zap.String("request.query", r.URL.RawQuery), zap.String("request.id", requestID))
	total := len(books)
	api.send(w, r, GenericResponse(requestID, http.StatusOK, "Books searched successfully.", &total, books))
}

// DeleteBook removes the first catalog entry matching the `title` and `author` query parameters.
func (api *APIHandler) DeleteBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	q := r.URL.Query()
	title, author := q.Get("title"), q.Get("author")

	book, err := api.catalogService.Remove(r.Context(), title, author)
	var verr ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		api.logger.Error("invalid book to delete", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(w, r, NewAPIError(requestID, http.StatusBadRequest, "failed to delete the book", err.Error()))
		return
	case errors.Is(err, ErrBookNotFound):
		api.logger.Error("book does not exist",
			zap.String("book.title", title),
			zap.String("book.author", author),
			zap.String("request.id", requestID),
		)
		api.sendError(w, r, NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData))
		return
	default:
		api.logger.Error("failed to delete book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the book", EmptyData))
		return
	}

	api.logger.Info("success to delete book",
		zap.String("book.title", book.Title()),
		zap.String("book.author", book.Author()),
		zap.String("request.id", requestID),
	)
	api.send(w, r, GenericResponse(requestID, http.StatusOK, "Book deleted successfully.", nil, book))
}

// GetActivity serves the latest recorded catalog changes.
func (api *APIHandler) GetActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	events, err := api.catalogService.Activity(r.Context())
	if err != nil {
		api.logger.Error("failed to get activity", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to get the catalog activity", EmptyData))
		return
	}
	total := len(events)
	api.send(w, r, GenericResponse(requestID, http.StatusOK, "Catalog activity fetched successfully.", &total, events))
}

// NotFound returns the handler used by the router for unknown routes.
func (api *APIHandler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		if requestID == "" {
			requestID = api.idsHandler.Generate(RequestIDPrefix)
		}
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(
			map[string]interface{}{
				"requestid": requestID,
				"message":   "route does not exist",
				"path":      r.Method + " " + r.URL.Path,
			},
		); err != nil {
			api.logger.Error("failed to send not found response", zap.String("request.id", requestID), zap.Error(err))
		}
	})
}

func (api *APIHandler) send(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", resp.RequestID), zap.Error(err))
	}
}

func (api *APIHandler) sendError(w http.ResponseWriter, r *http.Request, errResp *APIError) {
	if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", errResp.RequestID), zap.Error(err))
	}
}
