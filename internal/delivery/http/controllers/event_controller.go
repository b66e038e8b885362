package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/delivery/http/middleware"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/usecase"
)

// EventRequest is the request body for POST /api/events and PUT /api/events/{eventID}.
// An update replaces every field. Empty event_type and ticket_type default to public and free.
type EventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Address     *string    `json:"address"`
	IsOnline    bool       `json:"is_online"`
	EventType   string     `json:"event_type"`
	TicketType  string     `json:"ticket_type"`
	TicketPrice *float64   `json:"ticket_price"`
	Currency    string     `json:"currency"`
}

// Validate implements Validator. Only presence of the dates is checked here; business
// rules are reported by the command.
func (e EventRequest) Validate() []string {
	var errs []string
	if e.StartDate == nil {
		errs = append(errs, "start_date is required")
	}
	if e.EndDate == nil {
		errs = append(errs, "end_date is required")
	}
	return errs
}

func (e EventRequest) fields() usecase.EventFields {
	f := usecase.EventFields{
		Name:        e.Name,
		Description: e.Description,
		Address:     e.Address,
		IsOnline:    e.IsOnline,
		EventType:   domain.EventType(e.EventType),
		TicketType:  domain.TicketType(e.TicketType),
		TicketPrice: e.TicketPrice,
		Currency:    e.Currency,
	}
	if e.StartDate != nil {
		f.StartDate = *e.StartDate
	}
	if e.EndDate != nil {
		f.EndDate = *e.EndDate
	}
	if f.EventType == "" {
		f.EventType = domain.EventTypePublic
	}
	if f.TicketType == "" {
		f.TicketType = domain.TicketTypeFree
	}
	return f
}

// CancelEventRequest is the optional request body for POST /api/events/{eventID}/cancel.
type CancelEventRequest struct {
	Reason string `json:"reason"`
}

// EventListResponse is the data payload of the event list endpoints.
type EventListResponse struct {
	Events []domain.EventDTO `json:"events"`
	Count  int               `json:"count"`
}

// CreateEventSuccessResponse is the success response envelope for POST /api/events (201).
type CreateEventSuccessResponse struct {
	Data  usecase.CreateEventResult `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// UpdateEventSuccessResponse is the success response envelope for PUT /api/events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  usecase.UpdateEventResult `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// PublishEventSuccessResponse is the success response envelope for POST /api/events/{eventID}/publish (200).
type PublishEventSuccessResponse struct {
	Data  usecase.PublishEventResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// CancelEventSuccessResponse is the success response envelope for POST /api/events/{eventID}/cancel (200).
type CancelEventSuccessResponse struct {
	Data  usecase.CancelEventResult `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /api/events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  domain.EventDTO   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for the event list endpoints (200).
type EventListSuccessResponse struct {
	Data  EventListResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StatsSuccessResponse is the success response envelope for GET /api/stats (200).
type StatsSuccessResponse struct {
	Data  domain.EventStats `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger   *slog.Logger
	Commands *usecase.CommandBus
	Queries  *usecase.QueryBus
}

func NewEventController(logger *slog.Logger, commands *usecase.CommandBus, queries *usecase.QueryBus) *EventController {
	return &EventController{
		Logger:   logger,
		Commands: commands,
		Queries:  queries,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an unpublished event owned by the authenticated organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	organizerID, ok := middleware.OrganizerIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result := c.Commands.Execute(r.Context(), usecase.CreateEvent{
		OrganizerID: organizerID,
		EventFields: req.fields(),
	})
	c.writeCommandResult(w, r, result, http.StatusCreated)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces every editable field of an event. Only the owning organizer can update it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Complete event data"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the changed field names"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	organizerID, ok := middleware.OrganizerIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result := c.Commands.Execute(r.Context(), usecase.UpdateEvent{
		EventID:     eventID,
		ActorID:     organizerID,
		EventFields: req.fields(),
	})
	c.writeCommandResult(w, r, result, http.StatusOK)
}

// PublishEvent godoc
// @Summary Publish an event
// @Description Lists the event in the public catalog. Publishing an already published event succeeds with published=false.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.PublishEventSuccessResponse "data.published tells whether the state changed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID}/publish [post]
func (c *EventController) PublishEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	organizerID, ok := middleware.OrganizerIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result := c.Commands.Execute(r.Context(), usecase.PublishEvent{EventID: eventID, ActorID: organizerID})
	c.writeCommandResult(w, r, result, http.StatusOK)
}

// CancelEvent godoc
// @Summary Cancel a published event
// @Description Withdraws the event from the public catalog. The body with a reason is optional.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CancelEventRequest false "Cancellation reason"
// @Success 200 {object} controllers.CancelEventSuccessResponse "data.cancelled tells whether the state changed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	var req CancelEventRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	organizerID, ok := middleware.OrganizerIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result := c.Commands.Execute(r.Context(), usecase.CancelEvent{
		EventID: eventID,
		ActorID: organizerID,
		Reason:  req.Reason,
	})
	c.writeCommandResult(w, r, result, http.StatusOK)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the read model of any event, published or not.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	event, err := usecase.Ask[*domain.EventDTO](r.Context(), c.Queries, usecase.GetEventByID{EventID: eventID})
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if event == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, usecase.MsgEventNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListPublishedEvents godoc
// @Summary List published events
// @Description The public catalog, soonest event first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse "data contains events and count"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/published [get]
func (c *EventController) ListPublishedEvents(w http.ResponseWriter, r *http.Request) {
	c.writeEventList(w, r, usecase.GetPublishedEvents{})
}

// ListOrganizerEvents godoc
// @Summary List an organizer's events
// @Description Every event of the organizer, published or not, newest first.
// @Tags events
// @Produce json
// @Param organizerID path string true "Organizer ID"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains events and count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/organizer/{organizerID} [get]
func (c *EventController) ListOrganizerEvents(w http.ResponseWriter, r *http.Request) {
	organizerID, err := domain.ParseOrganizerID(r.PathValue("organizerID"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	c.writeEventList(w, r, usecase.GetEventsByOrganizer{OrganizerID: organizerID})
}

// GetStats godoc
// @Summary Catalog statistics
// @Description Total, published and draft event counts.
// @Tags stats
// @Produce json
// @Success 200 {object} controllers.StatsSuccessResponse "data contains the counts"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/stats [get]
func (c *EventController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := usecase.Ask[domain.EventStats](r.Context(), c.Queries, usecase.GetEventStats{})
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

func (c *EventController) writeEventList(w http.ResponseWriter, r *http.Request, q usecase.Query) {
	events, err := usecase.Ask[[]domain.EventDTO](r.Context(), c.Queries, q)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.EventDTO{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{Events: events, Count: len(events)})
}

func (c *EventController) writeCommandResult(w http.ResponseWriter, r *http.Request, result usecase.CommandResult, successStatus int) {
	if result.Success {
		helpers.WriteJSONSuccess(w, successStatus, result.Data)
		return
	}
	switch result.Kind {
	case usecase.FailureValidation:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidation, result.Error)
	case usecase.FailureNotFound:
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, result.Error)
	case usecase.FailureForbidden:
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, result.Error)
	case usecase.FailureConflict:
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, result.Error)
	default:
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, result.Error)
	}
}

func (c *EventController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}

func pathEventID(w http.ResponseWriter, r *http.Request) (domain.EventID, bool) {
	eventID, err := domain.ParseEventID(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	return eventID, true
}
