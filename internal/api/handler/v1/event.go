package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventorg/smart-event-api/internal/api/handler/v1/request"
	"github.com/eventorg/smart-event-api/internal/api/handler/v1/response"
	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	EditEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context, search string) ([]domain.Event, error)
	GetStats(ctx context.Context) (service.Stats, error)
}

type EventHandler struct {
	svc  EventService
	aSvc AccountService
}

func NewEventHandler(svc EventService, aSvc AccountService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		aSvc: aSvc,
	}
}

// HandleListEvents godoc
// @Summary      List events, soonest first
// @Tags         events
// @Produce      json
// @Param        search  query     string  false  "filter by name, case-insensitive"
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get one event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event (admin only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("account %v is not an admin", account.ID)))

		return
	}

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	date, err := time.Parse(request.EventDateLayout, input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date format: %v", err)))

		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Name:        input.Name,
		Date:        date,
		Time:        input.Time,
		Hall:        input.Hall,
		Description: input.Description,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEvent godoc
// @Summary      Edit an event (admin only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Param        input    body      request.UpdateEventRequest  true  "event details"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("account %v is not an admin", account.ID)))

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var input request.UpdateEventRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	date, err := time.Parse(request.EventDateLayout, input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date format: %v", err)))

		return
	}

	updated, err := h.svc.EditEvent(ctx.Request.Context(), domain.Event{
		ID:          eventID,
		Name:        input.Name,
		Date:        date,
		Time:        input.Time,
		Hall:        input.Hall,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.EditEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event (admin only)
// @Description  Fails while the event still has pending or paid registrations.
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event id"
// @Success      204
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("account %v is not an admin", account.ID)))

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))

			return
		}
		if errors.Is(err, service.ErrEventInUse) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventInUse))

			return
		}
		if errors.Is(err, service.ErrTransient) {
			response.RenderErr(ctx, response.ErrServiceUnavailable(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetStats godoc
// @Summary      Dashboard counters (admin only)
// @Tags         events
// @Produce      json
// @Success      200  {object}  service.Stats
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stats [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetStats(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("account %v is not an admin", account.ID)))

		return
	}

	stats, err := h.svc.GetStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStats -> h.svc.GetStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
