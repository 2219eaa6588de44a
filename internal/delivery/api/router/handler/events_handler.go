package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"currypoint/internal/delivery/api/response"
	"currypoint/internal/domain/service"
	"currypoint/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	mimeEventStream  = "text/event-stream"
	defaultKeepAlive = 25 * time.Second
	changeEventName  = "change"
	keepAliveComment = ": keep-alive\n\n"
)

// EventsHandlerParams holds dependencies for EventsHandler, injected by Fx.
type EventsHandlerParams struct {
	fx.In

	Notifier service.ChangeNotifier
	Logger   *slog.Logger
}

// EventsHandler streams ledger change events as Server-Sent Events
type EventsHandler struct {
	notifier  service.ChangeNotifier
	logger    *slog.Logger
	keepAlive time.Duration
}

// NewEventsHandler is the constructor for EventsHandler
func NewEventsHandler(params EventsHandlerParams) *EventsHandler {
	return &EventsHandler{
		notifier:  params.Notifier,
		logger:    params.Logger,
		keepAlive: defaultKeepAlive,
	}
}

// Stream holds the connection open and writes one "change" event per ledger
// change until the client goes away.
func (h *EventsHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()

	events, err := h.notifier.Subscribe(ctx)
	if err != nil {
		return response.InternalServerError(c, "SUBSCRIBE_FAILED", "Unable to subscribe to changes")
	}

	res := c.Response()
	// the server write timeout would otherwise cut long-lived streams
	_ = http.NewResponseController(res.Writer).SetWriteDeadline(time.Time{})

	res.Header().Set(echo.HeaderContentType, mimeEventStream)
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := res.Write([]byte(keepAliveComment)); err != nil {
				return nil
			}
			res.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := writeEvent(res, event); err != nil {
				h.logger.Debug("Change stream closed", slog.Any("error", err))

				return nil
			}
			res.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event service.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", changeEventName, payload); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
