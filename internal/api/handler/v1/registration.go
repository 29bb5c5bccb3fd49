package v1

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventorg/smart-event-api/internal/api/handler/v1/request"
	"github.com/eventorg/smart-event-api/internal/api/handler/v1/response"
	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/service"
	"github.com/eventorg/smart-event-api/internal/validation"
)

type RegistrationService interface {
	Register(ctx context.Context, account domain.Account, eventID uint, name, email, phone string) (domain.Registration, error)
	ConfirmPayment(ctx context.Context, id uint) (domain.Registration, error)
	Cancel(ctx context.Context, account domain.Account, id uint) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	ListByAccount(ctx context.Context, username string) ([]domain.Registration, error)
}

type RegistrationHandler struct {
	svc  RegistrationService
	aSvc AccountService
}

func NewRegistrationHandler(svc RegistrationService, aSvc AccountService) *RegistrationHandler {
	return &RegistrationHandler{
		svc:  svc,
		aSvc: aSvc,
	}
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Creates a pending registration. Payment confirmation is a separate call.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Param        input    body      request.RegisterRequest  true  "attendee details"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /events/{eventID}/registrations [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var input request.RegisterRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.Register(ctx.Request.Context(), account, eventID, input.Name, input.Email, input.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.Is(err, validation.ErrInvalidEmail), errors.Is(err, validation.ErrInvalidPhone):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrTransient):
			response.RenderErr(ctx, response.ErrServiceUnavailable(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleConfirmPayment godoc
// @Summary      Confirm payment for a registration
// @Description  Idempotent; confirming an already paid or cancelled registration returns the current record.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "registration id"
// @Success      200             {object}  domain.Registration
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Failure      503             {object}  response.Err
// @Router       /registrations/{registrationID}/payment [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleConfirmPayment(ctx *gin.Context) {
	registrationID, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.ConfirmPayment(ctx.Request.Context(), registrationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrTransient):
			response.RenderErr(ctx, response.ErrServiceUnavailable(err))
		default:
			err = fmt.Errorf("v1.HandleConfirmPayment -> h.svc.ConfirmPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleCancel godoc
// @Summary      Cancel a registration
// @Description  Owner or admin only; cancelling twice is idempotent.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "registration id"
// @Success      200             {object}  domain.Registration
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Failure      503             {object}  response.Err
// @Router       /registrations/{registrationID}/cancel [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleCancel(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	registrationID, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.Cancel(ctx.Request.Context(), account, registrationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrTransient):
			response.RenderErr(ctx, response.ErrServiceUnavailable(err))
		default:
			err = fmt.Errorf("v1.HandleCancel -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleListMyRegistrations godoc
// @Summary      List the caller's registrations, oldest first
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.Registration
// @Failure      500  {object}  response.Err
// @Router       /registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListMyRegistrations(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	registrations, err := h.svc.ListByAccount(ctx.Request.Context(), account.Username)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyRegistrations -> h.svc.ListByAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleExportEventRegistrations godoc
// @Summary      Download an event's registrations as CSV (admin only)
// @Tags         registrations
// @Produce      text/csv
// @Param        eventID  path      int  true  "event id"
// @Success      200      {string}  string  "CSV body"
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/registrations.csv [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleExportEventRegistrations(ctx *gin.Context) {
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

	registrations, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportEventRegistrations -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%v-registrations.csv"`, eventID))
	ctx.Status(http.StatusOK)

	w := csv.NewWriter(ctx.Writer)
	_ = w.Write([]string{"id", "account_username", "name", "email", "phone", "status", "registered_at"})
	for _, registration := range registrations {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(registration.ID), 10),
			registration.AccountUsername,
			registration.Name,
			registration.Email,
			registration.Phone,
			registration.Status,
			registration.RegisteredAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

// HandleListEventRegistrations godoc
// @Summary      List an event's registrations (admin only)
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Success      200      {array}   domain.Registration
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListEventRegistrations(ctx *gin.Context) {
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

	registrations, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEventRegistrations -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}
