package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kcg-rescue/lifesavermap/internal/eventlog"
	"github.com/kcg-rescue/lifesavermap/internal/metrics"
	"github.com/kcg-rescue/lifesavermap/internal/model"
	"github.com/kcg-rescue/lifesavermap/internal/response"
)

// HelpHandler serves the help-request endpoints. Validation runs before any
// blob I/O: a malformed payload never reaches the log.
type HelpHandler struct {
	Log      *eventlog.Log
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type submitResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Submit handles POST /requests (and its legacy alias /request-help).
func (h *HelpHandler) Submit(c echo.Context) error {
	var req model.HelpRequest
	if err := c.Bind(&req); err != nil {
		metrics.HelpRequestsRejectedTotal.Inc()
		return response.BadRequest(c, "invalid request body: lat, lng and timestamp must be numbers")
	}
	if err := h.Validate.Struct(req); err != nil {
		metrics.HelpRequestsRejectedTotal.Inc()
		return response.BadRequest(c, "invalid request: "+err.Error())
	}

	count, err := h.Log.Append(c.Request().Context(), req)
	if err != nil {
		h.Logger.Error().Err(err).Msg("append help request")
		return response.InternalError(c, err.Error())
	}
	metrics.HelpRequestsStoredTotal.Inc()
	h.Logger.Info().
		Float64("lat", req.Lat).
		Float64("lng", req.Lng).
		Int("count", count).
		Msg("help request stored")
	return c.JSON(http.StatusOK, submitResponse{Status: "ok", Count: count})
}

// List handles GET /requests: the raw stored array, unfiltered.
func (h *HelpHandler) List(c echo.Context) error {
	records, err := h.Log.List(c.Request().Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("list help requests")
		return response.InternalError(c, err.Error())
	}
	return c.JSON(http.StatusOK, records)
}
