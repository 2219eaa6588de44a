package handler

import (
	"io"
	"log/slog"
	"net/http"

	"currypoint/internal/delivery/api/response"
	"currypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const exportFileName = "curry-point-backup.json"

// SyncHandlerParams holds dependencies for SyncHandler, injected by Fx.
type SyncHandlerParams struct {
	fx.In

	SyncUC usecase.SyncUsecase
	Logger *slog.Logger
}

// SyncHandler serves storage tier management and backups
type SyncHandler struct {
	syncUC usecase.SyncUsecase
	logger *slog.Logger
}

// NewSyncHandler is the constructor for SyncHandler
func NewSyncHandler(params SyncHandlerParams) *SyncHandler {
	return &SyncHandler{
		syncUC: params.SyncUC,
		logger: params.Logger,
	}
}

// Status handles reporting the sync mode and remote health
func (h *SyncHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.syncUC.Status(c.Request().Context()))
}

// ToggleMode handles cycling local -> remote -> hybrid
func (h *SyncHandler) ToggleMode(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.syncUC.ToggleMode(c.Request().Context()))
}

// Push handles overwriting the remote store with local data
func (h *SyncHandler) Push(c echo.Context) error {
	if err := h.syncUC.Push(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.syncUC.Status(c.Request().Context()))
}

// Pull handles overwriting local data with the remote store
func (h *SyncHandler) Pull(c echo.Context) error {
	if err := h.syncUC.Pull(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.syncUC.Status(c.Request().Context()))
}

// Export handles downloading the persisted snapshot
func (h *SyncHandler) Export(c echo.Context) error {
	data, err := h.syncUC.Export(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFileName+`"`)

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// Import handles replacing the ledger with an uploaded snapshot
func (h *SyncHandler) Import(c echo.Context) error {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Unable to read snapshot")
	}

	write, err := h.syncUC.Import(c.Request().Context(), data)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newWriteView(write))
}

// Reset handles restoring the default dataset
func (h *SyncHandler) Reset(c echo.Context) error {
	write, err := h.syncUC.Reset(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newWriteView(write))
}
