package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/response"
	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/pkg/jwthelper"
)

const actorKey = "actor"

var (
	errMissingToken = errors.New("missing bearer token")
	errNoActor      = errors.New("no authenticated actor")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT resolves the bearer token into the calling actor and stores it
// on the context for handlers to pass down explicitly.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			ctx.Abort()
			return
		}

		actor, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			ctx.Abort()
			return
		}

		ctx.Set(actorKey, actor)
		ctx.Next()
	}
}

func ActorFromContext(ctx *gin.Context) (domain.Actor, error) {
	v, ok := ctx.Get(actorKey)
	if !ok {
		return domain.Actor{}, errNoActor
	}

	actor, ok := v.(domain.Actor)
	if !ok {
		return domain.Actor{}, errNoActor
	}

	return actor, nil
}
