package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventorg/smart-event-api/internal/api/handler/v1/request"
	"github.com/eventorg/smart-event-api/internal/api/handler/v1/response"
	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/service"
	"github.com/eventorg/smart-event-api/internal/validation"
)

type FeedbackService interface {
	Submit(ctx context.Context, account domain.Account, eventID uint, rating int, comments string) (domain.Feedback, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error)
	AverageRating(ctx context.Context, eventID uint) (*float64, error)
}

type FeedbackHandler struct {
	svc  FeedbackService
	aSvc AccountService
}

func NewFeedbackHandler(svc FeedbackService, aSvc AccountService) *FeedbackHandler {
	return &FeedbackHandler{
		svc:  svc,
		aSvc: aSvc,
	}
}

// HandleSubmitFeedback godoc
// @Summary      Submit feedback for an attended event
// @Description  Requires a paid registration for the event; one feedback per account per event.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Param        input    body      request.SubmitFeedbackRequest  true  "rating and comments"
// @Success      201      {object}  domain.Feedback
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/feedback [post]
// @Security BearerAuth
func (h *FeedbackHandler) HandleSubmitFeedback(ctx *gin.Context) {
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

	var input request.SubmitFeedbackRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), account, eventID, input.Rating, input.Comments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrFeedbackExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrFeedbackExists))
		case errors.Is(err, validation.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitFeedback -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleAverageRating godoc
// @Summary      Average rating for an event
// @Description  Average is null when the event has no feedback.
// @Tags         feedback
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Success      200      {object}  response.AverageRatingResponse
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/feedback/average [get]
// @Security BearerAuth
func (h *FeedbackHandler) HandleAverageRating(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	average, err := h.svc.AverageRating(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleAverageRating -> h.svc.AverageRating -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.AverageRatingResponse{
		EventID: eventID,
		Average: average,
	})
}

// HandleListFeedback godoc
// @Summary      List an event's feedback (admin only)
// @Tags         feedback
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Success      200      {array}   domain.Feedback
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/feedback [get]
// @Security BearerAuth
func (h *FeedbackHandler) HandleListFeedback(ctx *gin.Context) {
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

	feedbacks, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListFeedback -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, feedbacks)
}
