package controller

import (
	"errors"
	"net/http"
	"time"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/service"
	"talenthub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// interviewView is the candidate-facing projection: questions are stripped of
// grading fields before leaving the server.
func interviewView(inst *model.InterviewInstance) gin.H {
	return gin.H{
		"id":              inst.ID,
		"candidateId":     inst.CandidateID,
		"campaignId":      inst.CampaignID,
		"roundNumber":     inst.RoundNumber,
		"kind":            inst.Kind,
		"interviewType":   inst.InterviewType,
		"status":          inst.Status,
		"scheduledAt":     inst.ScheduledAt,
		"startedAt":       inst.StartedAt,
		"completedAt":     inst.CompletedAt,
		"durationSeconds": inst.DurationSeconds,
		"questionSource":  inst.QuestionSource,
		"questions":       service.SanitizedQuestions(inst),
	}
}

// @Summary Fetch an interview, resolving questions lazily on first access
// @Tags interviews
// @Produce json
// @Param id path string true "interview id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/interviews/{id} [get]
func (c *InterviewController) Get(ctx *gin.Context) {
	inst, err := c.InterviewService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		mapInterviewError(ctx, err)
		return
	}
	util.Success(ctx, interviewView(inst))
}

// @Summary Start an interview
// @Tags interviews
// @Produce json
// @Param id path string true "interview id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/interviews/{id}/start [post]
func (c *InterviewController) Start(ctx *gin.Context) {
	inst, err := c.InterviewService.Start(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		mapInterviewError(ctx, err)
		return
	}
	util.Success(ctx, interviewView(inst))
}

type ProgressRequest struct {
	Answers        []model.AnswerRecord `json:"answers"`
	ElapsedSeconds int                  `json:"elapsedSeconds"`
}

// @Summary Save in-progress answers (full overwrite)
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "interview id"
// @Param body body ProgressRequest true "answers so far"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/interviews/{id}/progress [post]
func (c *InterviewController) SaveProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.InterviewService.SaveProgress(ctx.Request.Context(), ctx.Param("id"), req.Answers, req.ElapsedSeconds); err != nil {
		mapInterviewError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SubmitRequest struct {
	Answers          []model.AnswerRecord `json:"answers"`
	TimeSpentSeconds int                  `json:"timeSpentSeconds"`
}

// @Summary Submit an interview for grading
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "interview id"
// @Param body body SubmitRequest true "final answers"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/interviews/{id}/submit [post]
func (c *InterviewController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inst, err := c.InterviewService.Submit(ctx.Request.Context(), ctx.Param("id"), req.Answers, req.TimeSpentSeconds)
	if err != nil {
		mapInterviewError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"id":          inst.ID,
		"status":      inst.Status,
		"score":       inst.Score,
		"maxScore":    inst.MaxScore,
		"passed":      inst.Passed,
		"completedAt": inst.CompletedAt,
	})
}

type DirectInterviewRequest struct {
	CandidateID   uint                `json:"candidateId" binding:"required"`
	CampaignID    uint                `json:"campaignId" binding:"required"`
	InterviewType model.InterviewType `json:"interviewType" binding:"required"`
	ScheduledAt   time.Time           `json:"scheduledAt" binding:"required"`
}

// @Summary Schedule a single interview manually
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DirectInterviewRequest true "interview info"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/interviews [post]
func (c *InterviewController) CreateDirect(ctx *gin.Context) {
	var req DirectInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inst, err := c.InterviewService.CreateDirect(ctx.Request.Context(), req.CandidateID, req.CampaignID, req.InterviewType, req.ScheduledAt)
	if err != nil {
		mapInterviewError(ctx, err)
		return
	}
	util.Created(ctx, inst)
}

func mapInterviewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInterviewNotFound),
		errors.Is(err, util.ErrCandidateNotFound),
		errors.Is(err, util.ErrCampaignNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAlreadyCompleted),
		errors.Is(err, util.ErrRestartCompleted),
		errors.Is(err, util.ErrNotInProgress),
		errors.Is(err, util.ErrAlreadyScheduled):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrTransientPersist):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
