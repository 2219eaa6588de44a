package docstore

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"currypoint/internal/delivery/api/response"
	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/repository"
	"currypoint/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handler exposes one DocumentStore over the document store REST contract.
// Successful responses are bare JSON so any HTTP client can consume them.
type Handler struct {
	store    repository.DocumentStore
	database string
	logger   *slog.Logger
}

// NewHandler serves store under /{database}.
func NewHandler(store repository.DocumentStore, database string, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		database: database,
		logger:   logger,
	}
}

// Register mounts the routes on e.
func (h *Handler) Register(e *echo.Echo) {
	db := e.Group("/:database", h.requireDatabase)
	{
		db.GET("/ping", h.Ping)
		db.GET("/:collection", h.List)
		db.POST("/:collection", h.ReplaceAll)
		db.PUT("/:collection/:id", h.Upsert)
		db.DELETE("/:collection/:id", h.Delete)
	}
}

func (h *Handler) requireDatabase(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Param("database") != h.database {
			return response.NotFound(c, "DATABASE_NOT_FOUND", "Unknown database")
		}

		return next(c)
	}
}

// Ping checks the backend.
func (h *Handler) Ping(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		h.log(c).Warn("Backend ping failed", slog.Any("error", err))

		return response.Error(c, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE", "Backend is not reachable", nil)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// List returns the whole collection as a JSON array.
func (h *Handler) List(c echo.Context) error {
	collection, ok := parseCollection(c)
	if !ok {
		return response.NotFound(c, "UNKNOWN_COLLECTION", "Unknown collection")
	}

	docs, err := h.store.List(c.Request().Context(), collection)
	if err != nil {
		return h.backendError(c, "list", collection, err)
	}

	return c.JSON(http.StatusOK, docs)
}

// ReplaceAll swaps the collection for the posted array.
func (h *Handler) ReplaceAll(c echo.Context) error {
	collection, ok := parseCollection(c)
	if !ok {
		return response.NotFound(c, "UNKNOWN_COLLECTION", "Unknown collection")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Unable to read request body")
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(body, &docs); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Request body must be a JSON array")
	}

	if err := h.store.ReplaceAll(c.Request().Context(), collection, docs); err != nil {
		return h.backendError(c, "replace", collection, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Data saved successfully",
		"count":   len(docs),
	})
}

// Upsert stores the posted document under the path id.
func (h *Handler) Upsert(c echo.Context) error {
	collection, ok := parseCollection(c)
	if !ok {
		return response.NotFound(c, "UNKNOWN_COLLECTION", "Unknown collection")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Document id must be numeric")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Unable to read request body")
	}

	doc, err := repository.WithDocumentID(body, id)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Request body must be a JSON object")
	}

	if err := h.store.Upsert(c.Request().Context(), collection, id, doc); err != nil {
		return h.backendError(c, "upsert", collection, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item updated successfully"})
}

// Delete removes the document with the path id.
func (h *Handler) Delete(c echo.Context) error {
	collection, ok := parseCollection(c)
	if !ok {
		return response.NotFound(c, "UNKNOWN_COLLECTION", "Unknown collection")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Document id must be numeric")
	}

	if err := h.store.Delete(c.Request().Context(), collection, id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return response.NotFound(c, "DOCUMENT_NOT_FOUND", "Item not found")
		}

		return h.backendError(c, "delete", collection, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

func (h *Handler) backendError(c echo.Context, op string, collection repository.Collection, err error) error {
	h.log(c).Error("Document store operation failed",
		slog.String("op", op),
		slog.String("collection", collection.String()),
		slog.Any("error", err),
	)

	return response.InternalServerError(c, "BACKEND_ERROR", "Document store operation failed")
}

func (h *Handler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

func parseCollection(c echo.Context) (repository.Collection, bool) {
	collection, err := repository.ParseCollection(c.Param("collection"))

	return collection, err == nil
}
