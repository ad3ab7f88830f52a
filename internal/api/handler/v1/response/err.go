package response

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

// retryAfterSeconds is advertised with every 503.
const retryAfterSeconds = "5"

type Err struct {
	Err        error  `json:"-"`
	StatusCode int    `json:"-"`
	StatusText string `json:"status_text"`
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.StatusText,
			zap.String("request_id", requestid.Get(ctx)),
			zap.Error(e.Err))
	}
	if e.StatusCode == http.StatusServiceUnavailable {
		ctx.Header("Retry-After", retryAfterSeconds)
	}
	if e.Err != nil {
		_ = ctx.Error(e.Err)
	}

	ctx.JSON(e.StatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusBadRequest,
		StatusText: http.StatusText(http.StatusBadRequest),
		Message:    err.Error(),
		Kind:       "invalid_input",
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusUnauthorized,
		StatusText: http.StatusText(http.StatusUnauthorized),
		Message:    err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusForbidden,
		StatusText: http.StatusText(http.StatusForbidden),
		Message:    err.Error(),
		Kind:       "forbidden",
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusNotFound,
		StatusText: http.StatusText(http.StatusNotFound),
		Message:    err.Error(),
		Kind:       "not_found",
	}
}

func ErrConflict(err error, kind string) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusConflict,
		StatusText: http.StatusText(http.StatusConflict),
		Message:    err.Error(),
		Kind:       kind,
	}
}

func ErrServiceUnavailable(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusServiceUnavailable,
		StatusText: http.StatusText(http.StatusServiceUnavailable),
		Message:    "storage is temporarily unavailable, retry later",
		Kind:       "storage_unavailable",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		StatusText: http.StatusText(http.StatusInternalServerError),
		Message:    "internal server error",
	}
}

// FromError maps a core error kind onto its HTTP rendering.
func FromError(err error) *Err {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return ErrBadRequest(err)
	case errors.Is(err, domain.ErrForbidden):
		return ErrPermissionDenied(err)
	case errors.Is(err, domain.ErrNotFound):
		return ErrNotFound(err)
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return ErrConflict(err, "already_enrolled")
	case errors.Is(err, domain.ErrDuplicateActiveCampaign):
		return ErrConflict(err, "duplicate_active_campaign")
	case errors.Is(err, domain.ErrInvalidTransition):
		return ErrConflict(err, "invalid_transition")
	case errors.Is(err, domain.ErrStorageUnavailable):
		return ErrServiceUnavailable(err)
	default:
		return ErrInternalServerError(err)
	}
}
