package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/response"
	"github.com/onedrop-app/onedrop-api/internal/domain"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Enrollment, error)
	CountEnrollments(ctx context.Context, campaignID uint) (int64, error)
	ListByDonor(ctx context.Context, donorID uint) ([]domain.Enrollment, error)
}

type EnrollmentHandler struct {
	svc EnrollmentService
}

func NewEnrollmentHandler(svc EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		svc: svc,
	}
}

// HandleEnroll godoc
// @Summary      Enroll in a campaign
// @Description  The calling donor commits to an active campaign. Enrolling twice fails with 409.
// @Tags         enrollments
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      201         {object}  domain.Enrollment
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      503         {object}  response.Err
// @Router       /campaigns/{campaignID}/enrollments [post]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleEnroll(ctx *gin.Context) {
	actor, respErr := actorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campaignID, respErr := idParam(ctx, "campaignID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	enrollment, err := h.svc.Enroll(ctx.Request.Context(), actor, campaignID)
	if err != nil {
		err = fmt.Errorf("HandleEnroll -> h.svc.Enroll -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// HandleCountEnrollments godoc
// @Summary      Count committed enrollments
// @Tags         enrollments
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200         {object}  response.CountResponse
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      503         {object}  response.Err
// @Router       /campaigns/{campaignID}/enrollments/count [get]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleCountEnrollments(ctx *gin.Context) {
	campaignID, respErr := idParam(ctx, "campaignID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.CountEnrollments(ctx.Request.Context(), campaignID)
	if err != nil {
		err = fmt.Errorf("HandleCountEnrollments -> h.svc.CountEnrollments -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CountResponse{CampaignID: campaignID, Count: count})
}

// HandleListMine godoc
// @Summary      List the calling donor's enrollments
// @Tags         enrollments
// @Produce      json
// @Success      200  {array}   domain.Enrollment
// @Failure      403  {object}  response.Err
// @Failure      503  {object}  response.Err
// @Router       /enrollments/mine [get]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleListMine(ctx *gin.Context) {
	actor, respErr := actorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireRole(actor, domain.RoleDonor); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	enrollments, err := h.svc.ListByDonor(ctx.Request.Context(), actor.ID)
	if err != nil {
		err = fmt.Errorf("HandleListMine -> h.svc.ListByDonor -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}
