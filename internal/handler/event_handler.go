package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/dto"
	"github.com/Eursukkul/events-dashboard/internal/middleware"
	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/Eursukkul/events-dashboard/internal/service"
	"github.com/Eursukkul/events-dashboard/pkg/backend"
	"github.com/labstack/echo/v4"
)

const (
	msgFetchFailed  = "Failed to fetch events"
	msgInvalidBody  = "invalid request body"
	msgIDRequired   = "Event ID is required"
	msgDeleted      = "Event deleted successfully"
	maxBodyBytes    = 1 << 20
	defaultRunLimit = 20
	maxRunLimit     = 100
)

type EventHandler struct {
	svc service.EventService
	now func() time.Time
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc, now: time.Now}
}

// RegisterRoutes mounts the proxy under g, which is expected to be /api.
func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/events", h.ListEvents)
	g.POST("/events", h.RefreshEvents)
	g.PUT("/events", h.UpdateEvent)
	g.DELETE("/events", h.DeleteEvent)
	g.POST("/events/new", h.CreateEvent)
	g.GET("/events/export.ics", h.ExportCalendar)
	g.GET("/events/:id", h.GetEvent)
	g.DELETE("/delete", h.DeleteEventByQuery)
	g.GET("/refresh-runs", h.ListRefreshRuns)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	res, err := h.svc.ListEvents(c.Request().Context(), c.QueryParams())
	if err != nil {
		return serverError(err)
	}
	if !res.OK() {
		return echo.NewHTTPError(res.StatusCode, msgFetchFailed).SetInternal(backendError(res))
	}
	return relayJSON(c, http.StatusOK, res)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := service.ParseEventID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	res, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return serverError(err)
	}
	if !res.OK() {
		return relayError(c, res)
	}
	return relayJSON(c, http.StatusOK, res)
}

// RefreshEvents forwards a re-scrape request for the given sites.
func (h *EventHandler) RefreshEvents(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.svc.RefreshSites(c.Request().Context(), req.Websites)
	if err != nil {
		return serverError(err)
	}
	if !res.OK() {
		return relayError(c, res)
	}
	return relayMutation(c, http.StatusOK, res)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	res, err := h.svc.CreateEvent(c.Request().Context(), body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
		}
		return serverError(err)
	}
	if !res.OK() {
		return relayError(c, res)
	}
	return relayMutation(c, res.StatusCode, res)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	res, err := h.svc.UpdateEvent(c.Request().Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
		case errors.Is(err, service.ErrMissingEventID):
			return echo.NewHTTPError(http.StatusBadRequest, service.ErrMissingEventID.Error())
		case errors.Is(err, service.ErrInvalidEventID):
			return echo.NewHTTPError(http.StatusBadRequest, service.ErrInvalidEventID.Error())
		default:
			return serverError(err)
		}
	}
	if !res.OK() {
		return relayError(c, res)
	}
	return relayMutation(c, http.StatusOK, res)
}

// DeleteEvent takes the id from ?id= or from a {"id": ...} body.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if raw := c.QueryParam("id"); raw != "" {
		id, err := service.ParseEventID(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
		}
		return h.deleteEvent(c, id)
	}

	var req dto.DeleteEventRequest
	if err := json.NewDecoder(io.LimitReader(c.Request().Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}
	id, err := service.EventIDFromJSON(req.ID)
	if err != nil {
		if errors.Is(err, service.ErrMissingEventID) {
			return echo.NewHTTPError(http.StatusBadRequest, msgIDRequired)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return h.deleteEvent(c, id)
}

func (h *EventHandler) DeleteEventByQuery(c echo.Context) error {
	raw := c.QueryParam("id")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, msgIDRequired)
	}
	id, err := service.ParseEventID(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return h.deleteEvent(c, id)
}

func (h *EventHandler) deleteEvent(c echo.Context, id int64) error {
	res, err := h.svc.DeleteEvent(c.Request().Context(), id)
	if err != nil {
		return serverError(err)
	}
	if !res.OK() {
		return echo.NewHTTPError(res.StatusCode, "Failed to delete event: "+res.Text()).SetInternal(backendError(res))
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

// ExportCalendar serves the filtered list as an iCalendar file.
func (h *EventHandler) ExportCalendar(c echo.Context) error {
	res, err := h.svc.ListEvents(c.Request().Context(), c.QueryParams())
	if err != nil {
		return serverError(err)
	}
	if !res.OK() {
		return echo.NewHTTPError(res.StatusCode, msgFetchFailed).SetInternal(backendError(res))
	}

	var events []models.Event
	if err := json.Unmarshal(res.Body, &events); err != nil {
		return serverError(fmt.Errorf("decode events: %w", err))
	}

	ics, err := service.EncodeCalendar(events, h.now())
	if err != nil {
		return serverError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", ics)
}

func (h *EventHandler) ListRefreshRuns(c echo.Context) error {
	limit := defaultRunLimit
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}

	runs, err := h.svc.ListRefreshRuns(c.Request().Context(), limit)
	if err != nil {
		return serverError(err)
	}

	resp := make([]dto.RefreshRunResponse, len(runs))
	for i, r := range runs {
		resp[i] = dto.ToRefreshRunResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
}

// relayJSON passes a backend body through unchanged.
func relayJSON(c echo.Context, status int, res *backend.Response) error {
	if !json.Valid(res.Body) {
		return serverError(fmt.Errorf("backend returned non-JSON body (status %d)", res.StatusCode))
	}
	return c.JSONBlob(status, res.Body)
}

// relayMutation answers a write the backend accepted. The change has already
// happened, so a non-JSON body keeps its status and is wrapped as a message
// rather than reported as a failure the client might retry.
func relayMutation(c echo.Context, status int, res *backend.Response) error {
	if json.Valid(res.Body) {
		return c.JSONBlob(status, res.Body)
	}
	log.Printf("%s %s: backend returned non-JSON body (status %d)", c.Request().Method, c.Request().URL.Path, res.StatusCode)
	return c.JSON(status, dto.MessageResponse{Message: res.Text()})
}

// relayError hands a backend rejection back with its original status. JSON
// bodies go through as-is; anything else is wrapped as a message.
func relayError(c echo.Context, res *backend.Response) error {
	log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, backendError(res))
	if len(res.Body) > 0 && json.Valid(res.Body) {
		return c.JSONBlob(res.StatusCode, res.Body)
	}
	return echo.NewHTTPError(res.StatusCode, res.Text())
}

func serverError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, middleware.ServerErrorMessage).SetInternal(err)
}

func backendError(res *backend.Response) error {
	return fmt.Errorf("backend responded %d: %s", res.StatusCode, res.Text())
}
