package controller

import (
	"errors"
	"net/http"

	"talenthub_backend/internal/service"
	"talenthub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CandidateController struct {
	CandidateService *service.CandidateService
}

func NewCandidateController(candidateService *service.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// @Summary Create a candidate in a campaign
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CandidateCreateRequest true "candidate info"
// @Success 201 {object} util.Response
// @Router /api/candidates [post]
func (c *CandidateController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CandidateCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.CreateCandidate(user.CompanyID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, candidate)
}

// @Summary Get a candidate
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param id path int true "candidate id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/candidates/{id} [get]
func (c *CandidateController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	candidate, err := c.CandidateService.GetCandidate(id)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, candidate)
}

// @Summary List candidates in a campaign
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param campaignId query int true "campaign id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/candidates [get]
func (c *CandidateController) List(ctx *gin.Context) {
	campaignID := util.MustParseUint(ctx.Query("campaignId"))
	if campaignID == 0 {
		util.BadRequest(ctx, "campaignId is required")
		return
	}
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	candidates, total, err := c.CandidateService.ListByCampaign(campaignID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: candidates, Total: total, Page: page, Limit: limit})
}

type ResumeScoreRequest struct {
	Score int `json:"score" binding:"min=0,max=100"`
}

// @Summary Record a resume score and trigger auto-scheduling
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "candidate id"
// @Param body body ResumeScoreRequest true "resume score"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/candidates/{id}/resume-score [post]
func (c *CandidateController) RecordResumeScore(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req ResumeScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, result, err := c.CandidateService.RecordResumeScore(ctx.Request.Context(), id, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCandidateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTransientPersist):
			util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"candidate": candidate, "scheduling": result})
}
