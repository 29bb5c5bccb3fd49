package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventorg/smart-event-api/internal/api/handler/v1/response"
	"github.com/eventorg/smart-event-api/internal/api/middleware"
	"github.com/eventorg/smart-event-api/internal/domain"
)

// AccountService resolves the authenticated account for handlers.
type AccountService interface {
	GetAccount(ctx context.Context, id uint) (domain.Account, error)
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      plain
// @Success      200 {string} string "ok"
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.String(http.StatusOK, "ok")
}

// getAccountFromContext loads the account the JWT middleware authenticated.
// Operations receive the caller explicitly instead of reading ambient state.
func getAccountFromContext(ctx *gin.Context, svc AccountService) (domain.Account, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyAccountID)
	if !exists {
		return domain.Account{}, response.ErrPermissionDenied(fmt.Errorf("no account in request context"))
	}

	accountID, ok := raw.(uint)
	if !ok {
		return domain.Account{}, response.ErrPermissionDenied(fmt.Errorf("malformed account id in request context"))
	}

	account, err := svc.GetAccount(ctx.Request.Context(), accountID)
	if err != nil {
		return domain.Account{}, response.ErrPermissionDenied(fmt.Errorf("account %v not found -> %w", accountID, err))
	}

	return account, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v (%v)", name, ctx.Param(name))
	}

	return uint(id), nil
}
