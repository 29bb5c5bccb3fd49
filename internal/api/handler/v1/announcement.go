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
)

type AnnouncementService interface {
	PostAnnouncement(ctx context.Context, message string) (domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uint) error
	ListAnnouncements(ctx context.Context) ([]domain.Announcement, error)
}

type AnnouncementHandler struct {
	svc  AnnouncementService
	aSvc AccountService
}

func NewAnnouncementHandler(svc AnnouncementService, aSvc AccountService) *AnnouncementHandler {
	return &AnnouncementHandler{
		svc:  svc,
		aSvc: aSvc,
	}
}

// HandleListAnnouncements godoc
// @Summary      List announcements, newest first
// @Tags         announcements
// @Produce      json
// @Success      200  {array}   domain.Announcement
// @Failure      500  {object}  response.Err
// @Router       /announcements [get]
// @Security BearerAuth
func (h *AnnouncementHandler) HandleListAnnouncements(ctx *gin.Context) {
	announcements, err := h.svc.ListAnnouncements(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAnnouncements -> h.svc.ListAnnouncements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, announcements)
}

// HandlePostAnnouncement godoc
// @Summary      Post an announcement (admin only)
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        input  body      request.PostAnnouncementRequest  true  "announcement"
// @Success      201    {object}  domain.Announcement
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /announcements [post]
// @Security BearerAuth
func (h *AnnouncementHandler) HandlePostAnnouncement(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("account %v is not an admin", account.ID)))

		return
	}

	var input request.PostAnnouncementRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.PostAnnouncement(ctx.Request.Context(), input.Message)
	if err != nil {
		err = fmt.Errorf("v1.HandlePostAnnouncement -> h.svc.PostAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeleteAnnouncement godoc
// @Summary      Delete an announcement (admin only)
// @Tags         announcements
// @Produce      json
// @Param        announcementID  path  int  true  "announcement id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /announcements/{announcementID} [delete]
// @Security BearerAuth
func (h *AnnouncementHandler) HandleDeleteAnnouncement(ctx *gin.Context) {
	account, respErr := getAccountFromContext(ctx, h.aSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("account %v is not an admin", account.ID)))

		return
	}

	announcementID, err := parseIDParam(ctx, "announcementID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteAnnouncement(ctx.Request.Context(), announcementID); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "ID", announcementID))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteAnnouncement -> h.svc.DeleteAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
