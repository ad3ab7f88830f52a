package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/response"
	"github.com/onedrop-app/onedrop-api/internal/api/middleware"
	"github.com/onedrop-app/onedrop-api/internal/domain"
)

func actorFromContext(ctx *gin.Context) (domain.Actor, *response.Err) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		return domain.Actor{}, response.ErrUnauthorized(err)
	}

	return actor, nil
}

func idParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", name, ctx.Param(name)))
	}

	return uint(id), nil
}

func requireRole(actor domain.Actor, roles ...domain.Role) *response.Err {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}

	return response.ErrPermissionDenied(fmt.Errorf("%w: role %s may not call this endpoint", domain.ErrForbidden, actor.Role))
}
