package controller

import (
	"errors"

	"talenthub_backend/internal/service"
	"talenthub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func NewCampaignController(campaignService *service.CampaignService) *CampaignController {
	return &CampaignController{CampaignService: campaignService}
}

// @Summary Create a recruiting campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CampaignCreateRequest true "campaign info"
// @Success 201 {object} util.Response
// @Router /api/campaigns [post]
func (c *CampaignController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CampaignCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(user.UserID, user.CompanyID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, campaign)
}

// @Summary Get a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id} [get]
func (c *CampaignController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid campaign id")
		return
	}

	campaign, err := c.CampaignService.GetCampaign(id)
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, campaign)
}

// @Summary List campaigns for the caller's company
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/campaigns [get]
func (c *CampaignController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	campaigns, err := c.CampaignService.ListCampaigns(user.CompanyID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, campaigns)
}

// @Summary List a campaign's round configs
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Success 200 {object} util.Response
// @Router /api/campaigns/{id}/rounds [get]
func (c *CampaignController) ListRounds(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	rounds, err := c.CampaignService.RoundConfigs(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rounds)
}

// @Summary Add a round config to a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Param body body service.RoundConfigRequest true "round config"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/campaigns/{id}/rounds [post]
func (c *CampaignController) AddRound(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.RoundConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	round, err := c.CampaignService.AddRoundConfig(id, req)
	if err != nil {
		mapCampaignError(ctx, err)
		return
	}
	util.Created(ctx, round)
}

// @Summary Update a round config
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Param roundId path int true "round config id"
// @Param body body service.RoundConfigRequest true "round config"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/campaigns/{id}/rounds/{roundId} [put]
func (c *CampaignController) UpdateRound(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	roundID := util.MustParseUint(ctx.Param("roundId"))

	var req service.RoundConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	round, err := c.CampaignService.UpdateRoundConfig(id, roundID, req)
	if err != nil {
		mapCampaignError(ctx, err)
		return
	}
	util.Success(ctx, round)
}

// @Summary Delete a round config
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Param roundId path int true "round config id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/campaigns/{id}/rounds/{roundId} [delete]
func (c *CampaignController) DeleteRound(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	roundID := util.MustParseUint(ctx.Param("roundId"))

	if err := c.CampaignService.DeleteRoundConfig(id, roundID); err != nil {
		mapCampaignError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Get a campaign's auto-schedule config
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Success 200 {object} util.Response
// @Router /api/campaigns/{id}/auto-schedule [get]
func (c *CampaignController) GetAutoScheduleConfig(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	cfg, err := c.CampaignService.GetAutoScheduleConfig(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

// @Summary Update a campaign's auto-schedule config
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Param body body service.AutoScheduleConfigRequest true "auto-schedule config"
// @Success 200 {object} util.Response
// @Router /api/campaigns/{id}/auto-schedule [put]
func (c *CampaignController) UpdateAutoScheduleConfig(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.AutoScheduleConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cfg, err := c.CampaignService.UpdateAutoScheduleConfig(id, req)
	if err != nil {
		mapCampaignError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

func mapCampaignError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCampaignNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrRoundHasInstances):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
