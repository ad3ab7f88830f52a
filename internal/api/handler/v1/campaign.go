package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/request"
	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/response"
	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/service"
)

type CampaignService interface {
	RequestCampaign(ctx context.Context, actor domain.Actor, req service.CampaignRequest) (domain.Campaign, error)
	CreateDrive(ctx context.Context, actor domain.Actor, drive service.Drive) (domain.Campaign, error)
	Approve(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error)
	Reject(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error)
	Finalize(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error)
	ListEligible(ctx context.Context, donorID uint, asOf time.Time) ([]domain.Campaign, error)
	GetCampaign(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error)
	ListByHospital(ctx context.Context, hospitalID uint) ([]domain.Campaign, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]domain.Campaign, error)
}

type CampaignHandler struct {
	svc CampaignService
	now func() time.Time
}

func NewCampaignHandler(svc CampaignService) *CampaignHandler {
	return &CampaignHandler{
		svc: svc,
		now: time.Now,
	}
}

// HandleRequestCampaign godoc
// @Summary      Request a campaign
// @Description  A beneficiary asks a hospital for a donation campaign. The campaign starts pending the hospital's approval.
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        request  body      request.RequestCampaignRequest  true  "request body"
// @Success      201      {object}  domain.Campaign
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /campaigns/requests [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleRequestCampaign(ctx *gin.Context) {
	actor, respErr := actorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RequestCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	start, end, err := req.Dates()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.RequestCampaign(ctx.Request.Context(), actor, service.CampaignRequest{
		HospitalID:        req.HospitalID,
		BeneficiaryID:     actor.ID,
		RequiredBloodType: domain.BloodType(req.RequiredBloodType),
		Name:              req.Name,
		Description:       req.Description,
		UnitsNeeded:       req.UnitsNeeded,
		StartDate:         start,
		EndDate:           end,
	})
	if err != nil {
		err = fmt.Errorf("HandleRequestCampaign -> h.svc.RequestCampaign -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, campaign)
}

// HandleCreateDrive godoc
// @Summary      Create a donation drive
// @Description  A hospital opens a campaign with no beneficiary. Any donor may enroll and the drive is active immediately.
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateDriveRequest  true  "request body"
// @Success      201      {object}  domain.Campaign
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /campaigns/drives [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleCreateDrive(ctx *gin.Context) {
	actor, respErr := actorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	start, end, err := req.Dates()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	drive := service.Drive{
		HospitalID:  actor.ID,
		Name:        req.Name,
		Description: req.Description,
		UnitsNeeded: req.UnitsNeeded,
		StartDate:   start,
		EndDate:     end,
	}
	if req.EmphasisBloodType != "" {
		bt := domain.BloodType(req.EmphasisBloodType)
		drive.EmphasisBloodType = &bt
	}

	campaign, err := h.svc.CreateDrive(ctx.Request.Context(), actor, drive)
	if err != nil {
		err = fmt.Errorf("HandleCreateDrive -> h.svc.CreateDrive -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, campaign)
}

// HandleApprove godoc
// @Summary      Approve a campaign request
// @Description  The owning hospital approves a pending request, which makes it active.
// @Tags         campaigns
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200         {object}  domain.Campaign
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      503         {object}  response.Err
// @Router       /campaigns/{campaignID}/approve [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleApprove(ctx *gin.Context) {
	h.handleTransition(ctx, "HandleApprove", h.svc.Approve)
}

// HandleReject godoc
// @Summary      Reject a campaign request
// @Tags         campaigns
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200         {object}  domain.Campaign
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      503         {object}  response.Err
// @Router       /campaigns/{campaignID}/reject [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleReject(ctx *gin.Context) {
	h.handleTransition(ctx, "HandleReject", h.svc.Reject)
}

// HandleFinalize godoc
// @Summary      Finalize an active campaign
// @Tags         campaigns
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200         {object}  domain.Campaign
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      503         {object}  response.Err
// @Router       /campaigns/{campaignID}/finalize [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleFinalize(ctx *gin.Context) {
	h.handleTransition(ctx, "HandleFinalize", h.svc.Finalize)
}

type transitionFunc func(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error)

func (h *CampaignHandler) handleTransition(ctx *gin.Context, name string, apply transitionFunc) {
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

	campaign, err := apply(ctx.Request.Context(), actor, campaignID)
	if err != nil {
		err = fmt.Errorf("%s -> %w", name, err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleListEligible godoc
// @Summary      List campaigns a donor can give to
// @Description  Active campaigns still open on as_of (default today) whose required blood type accepts the calling donor, soonest deadline first.
// @Tags         campaigns
// @Produce      json
// @Param        as_of  query     string  false  "Date in YYYY-MM-DD"
// @Success      200    {array}   domain.Campaign
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      503    {object}  response.Err
// @Router       /campaigns/eligible [get]
// @Security     BearerAuth
func (h *CampaignHandler) HandleListEligible(ctx *gin.Context) {
	actor, respErr := actorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireRole(actor, domain.RoleDonor); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	asOf := h.now()
	if s := ctx.Query("as_of"); s != "" {
		parsed, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid as_of: %w", err)))
			return
		}
		asOf = parsed
	}

	campaigns, err := h.svc.ListEligible(ctx.Request.Context(), actor.ID, asOf)
	if err != nil {
		err = fmt.Errorf("HandleListEligible -> h.svc.ListEligible -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}

// HandleListMine godoc
// @Summary      List the caller's campaigns
// @Description  Hospitals see the campaigns they own, beneficiaries the campaigns they requested.
// @Tags         campaigns
// @Produce      json
// @Success      200  {array}   domain.Campaign
// @Failure      403  {object}  response.Err
// @Failure      503  {object}  response.Err
// @Router       /campaigns/mine [get]
// @Security     BearerAuth
func (h *CampaignHandler) HandleListMine(ctx *gin.Context) {
	actor, respErr := actorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var (
		campaigns []domain.Campaign
		err       error
	)
	switch actor.Role {
	case domain.RoleHospital:
		campaigns, err = h.svc.ListByHospital(ctx.Request.Context(), actor.ID)
	case domain.RoleBeneficiary:
		campaigns, err = h.svc.ListByBeneficiary(ctx.Request.Context(), actor.ID)
	default:
		response.RenderErr(ctx, requireRole(actor, domain.RoleHospital, domain.RoleBeneficiary))
		return
	}
	if err != nil {
		err = fmt.Errorf("HandleListMine -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}

// HandleGetCampaign godoc
// @Summary      Get a campaign
// @Description  Hospitals see their own campaigns, beneficiaries their own requests, donors only campaigns listed as eligible for them. Anything else is reported as not found.
// @Tags         campaigns
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200         {object}  domain.Campaign
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      503         {object}  response.Err
// @Router       /campaigns/{campaignID} [get]
// @Security     BearerAuth
func (h *CampaignHandler) HandleGetCampaign(ctx *gin.Context) {
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

	campaign, err := h.svc.GetCampaign(ctx.Request.Context(), actor, campaignID)
	if err != nil {
		err = fmt.Errorf("HandleGetCampaign -> h.svc.GetCampaign -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}
