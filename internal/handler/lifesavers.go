package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kcg-rescue/lifesavermap/internal/blob"
	"github.com/kcg-rescue/lifesavermap/internal/catalog"
	"github.com/kcg-rescue/lifesavermap/internal/geo"
	"github.com/kcg-rescue/lifesavermap/internal/model"
	"github.com/kcg-rescue/lifesavermap/internal/response"
)

// LifesaverHandler serves the read-only catalog endpoints.
type LifesaverHandler struct {
	Catalog *catalog.Reader
	Logger  zerolog.Logger
}

type countResponse struct {
	Count int `json:"count"`
}

type filteredResponse struct {
	Count      int               `json:"count"`
	Lifesavers []model.Lifesaver `json:"lifesavers"`
}

func (h *LifesaverHandler) load(c echo.Context) ([]model.Lifesaver, error) {
	records, err := h.Catalog.Catalog(c.Request().Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("read lifesaver catalog")
		if errors.Is(err, blob.ErrNotFound) {
			return nil, response.NotFound(c, "lifesaver catalog is not available")
		}
		return nil, response.InternalError(c, err.Error())
	}
	return records, nil
}

// List handles GET /lifesavers: the full normalized catalog.
func (h *LifesaverHandler) List(c echo.Context) error {
	records, err := h.load(c)
	if records == nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Count handles GET /lifesaver_count: how many records fall inside the
// viewport given by left, bottom, right, top.
func (h *LifesaverHandler) Count(c echo.Context) error {
	box, err := geo.ParseBoundingBox(
		c.QueryParam("left"),
		c.QueryParam("bottom"),
		c.QueryParam("right"),
		c.QueryParam("top"),
	)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	records, errResp := h.load(c)
	if records == nil {
		return errResp
	}
	return c.JSON(http.StatusOK, countResponse{Count: geo.CountInBounds(records, box)})
}

// Filtered handles GET /lifesavers_filtered: viewport records plus count,
// with records suppressed below the zoom threshold.
func (h *LifesaverHandler) Filtered(c echo.Context) error {
	box, err := geo.ParseBoundingBox(
		c.QueryParam("left"),
		c.QueryParam("bottom"),
		c.QueryParam("right"),
		c.QueryParam("top"),
	)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	zoomRaw := c.QueryParam("zoom")
	if zoomRaw == "" {
		return response.BadRequest(c, `missing query parameter "zoom"`)
	}
	zoom, err := strconv.Atoi(zoomRaw)
	if err != nil {
		return response.BadRequest(c, `query parameter "zoom" is not an integer`)
	}
	records, errResp := h.load(c)
	if records == nil {
		return errResp
	}
	count, matched := geo.FilterInBounds(records, box, zoom)
	return c.JSON(http.StatusOK, filteredResponse{Count: count, Lifesavers: matched})
}
