package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/request"
	"github.com/onedrop-app/onedrop-api/internal/api/handler/v1/response"
	"github.com/onedrop-app/onedrop-api/internal/config"
	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/pkg/jwthelper"
)

type ParticipantService interface {
	RegisterHospital(ctx context.Context, name string) (domain.Hospital, error)
	RegisterDonor(ctx context.Context, name, bloodType string) (domain.Donor, error)
	RegisterBeneficiary(ctx context.Context, name, bloodType, urgency string) (domain.Beneficiary, error)
}

type ParticipantHandler struct {
	conf *config.APIConfig
	svc  ParticipantService
}

func NewParticipantHandler(conf *config.APIConfig, svc ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		conf: conf,
		svc:  svc,
	}
}

type RegisterResponse[T any] struct {
	Participant T      `json:"participant"`
	Token       string `json:"token"`
}

// HandleRegisterHospital godoc
// @Summary      Register a hospital
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterHospitalRequest  true  "request body"
// @Success      201      {object}  v1.RegisterResponse[domain.Hospital]
// @Failure      400      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /hospitals [post]
func (h *ParticipantHandler) HandleRegisterHospital(ctx *gin.Context) {
	var req request.RegisterHospitalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	hospital, err := h.svc.RegisterHospital(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("HandleRegisterHospital -> h.svc.RegisterHospital -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	renderRegistered(ctx, h.conf, domain.Actor{Role: domain.RoleHospital, ID: hospital.ID}, hospital)
}

// HandleRegisterDonor godoc
// @Summary      Register a donor
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterDonorRequest  true  "request body"
// @Success      201      {object}  v1.RegisterResponse[domain.Donor]
// @Failure      400      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /donors [post]
func (h *ParticipantHandler) HandleRegisterDonor(ctx *gin.Context) {
	var req request.RegisterDonorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donor, err := h.svc.RegisterDonor(ctx.Request.Context(), req.Name, req.BloodType)
	if err != nil {
		err = fmt.Errorf("HandleRegisterDonor -> h.svc.RegisterDonor -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	renderRegistered(ctx, h.conf, domain.Actor{Role: domain.RoleDonor, ID: donor.ID}, donor)
}

// HandleRegisterBeneficiary godoc
// @Summary      Register a beneficiary
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterBeneficiaryRequest  true  "request body"
// @Success      201      {object}  v1.RegisterResponse[domain.Beneficiary]
// @Failure      400      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /beneficiaries [post]
func (h *ParticipantHandler) HandleRegisterBeneficiary(ctx *gin.Context) {
	var req request.RegisterBeneficiaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	beneficiary, err := h.svc.RegisterBeneficiary(ctx.Request.Context(), req.Name, req.RequiredBloodType, req.Urgency)
	if err != nil {
		err = fmt.Errorf("HandleRegisterBeneficiary -> h.svc.RegisterBeneficiary -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	renderRegistered(ctx, h.conf, domain.Actor{Role: domain.RoleBeneficiary, ID: beneficiary.ID}, beneficiary)
}

func renderRegistered[T any](ctx *gin.Context, conf *config.APIConfig, actor domain.Actor, participant T) {
	token, err := jwthelper.GenerateToken([]byte(conf.JWTSigningKey), actor, conf.TokenTTL)
	if err != nil {
		err = fmt.Errorf("jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, RegisterResponse[T]{
		Participant: participant,
		Token:       token,
	})
}
