package controller

import (
	"errors"
	"net/http"

	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/service"
	"talenthub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScheduleController struct {
	SchedulerService   *service.SchedulerService
	EligibilityService *service.EligibilityService
	CampaignRepo       *repository.CampaignRepository
	ActivityRepo       *repository.ActivityLogRepository
}

func NewScheduleController(
	schedulerService *service.SchedulerService,
	eligibilityService *service.EligibilityService,
	campaignRepo *repository.CampaignRepository,
	activityRepo *repository.ActivityLogRepository,
) *ScheduleController {
	return &ScheduleController{
		SchedulerService:   schedulerService,
		EligibilityService: eligibilityService,
		CampaignRepo:       campaignRepo,
		ActivityRepo:       activityRepo,
	}
}

// @Summary Dry-run eligibility for auto-scheduling
// @Tags scheduling
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Param cid path int true "candidate id"
// @Param score query int true "resume score to evaluate"
// @Success 200 {object} util.Response
// @Router /api/campaigns/{id}/candidates/{cid}/eligibility [get]
func (c *ScheduleController) Eligibility(ctx *gin.Context) {
	campaignID := util.MustParseUint(ctx.Param("id"))
	candidateID := util.MustParseUint(ctx.Param("cid"))
	scoreStr := ctx.Query("score")
	if scoreStr == "" {
		util.BadRequest(ctx, "score is required")
		return
	}
	score := util.ParseIntDefault(scoreStr, -1)
	if score < 0 {
		util.BadRequest(ctx, "score must be a non-negative integer")
		return
	}

	cfg, err := c.CampaignRepo.AutoScheduleConfig(campaignID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogInternalError(ctx, err)
		return
	}

	result, err := c.EligibilityService.Evaluate(candidateID, campaignID, score, cfg)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

type AutoScheduleRequest struct {
	Score             int  `json:"score" binding:"min=0,max=100"`
	ThresholdOverride *int `json:"thresholdOverride,omitempty"`
}

// @Summary Run auto-scheduling for a candidate in a campaign
// @Tags scheduling
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "campaign id"
// @Param cid path int true "candidate id"
// @Param body body AutoScheduleRequest true "score and optional threshold override"
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/campaigns/{id}/candidates/{cid}/auto-schedule [post]
func (c *ScheduleController) AutoSchedule(ctx *gin.Context) {
	campaignID := util.MustParseUint(ctx.Param("id"))
	candidateID := util.MustParseUint(ctx.Param("cid"))

	var req AutoScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SchedulerService.AutoSchedule(ctx.Request.Context(), candidateID, campaignID, req.Score, req.ThresholdOverride)
	if err != nil {
		if errors.Is(err, util.ErrTransientPersist) {
			util.Error(ctx, http.StatusServiceUnavailable, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary List scheduling activity for a candidate
// @Tags scheduling
// @Produce json
// @Security BearerAuth
// @Param id path int true "candidate id"
// @Param limit query int false "max entries" default(50)
// @Success 200 {object} util.Response
// @Router /api/candidates/{id}/scheduling-activity [get]
func (c *ScheduleController) ListActivity(ctx *gin.Context) {
	candidateID := util.MustParseUint(ctx.Param("id"))
	limit := util.ParseIntDefault(ctx.Query("limit"), 50)

	entries, err := c.ActivityRepo.ListByCandidate(candidateID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
