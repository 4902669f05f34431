package controller

import (
	"talenthub_backend/internal/service"
	"talenthub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionBankController struct {
	QuestionBankService *service.QuestionBankService
}

func NewQuestionBankController(questionBankService *service.QuestionBankService) *QuestionBankController {
	return &QuestionBankController{QuestionBankService: questionBankService}
}

// @Summary Create a question collection
// @Tags question-bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CollectionCreateRequest true "collection info"
// @Success 201 {object} util.Response
// @Router /api/question-bank/collections [post]
func (c *QuestionBankController) CreateCollection(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CollectionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	collection, err := c.QuestionBankService.CreateCollection(user.CompanyID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, collection)
}

// @Summary List question collections for the caller's company
// @Tags question-bank
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/question-bank/collections [get]
func (c *QuestionBankController) ListCollections(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	collections, err := c.QuestionBankService.ListCollections(user.CompanyID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, collections)
}

// @Summary Add a question to a collection
// @Tags question-bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BankQuestionRequest true "question info"
// @Success 201 {object} util.Response
// @Router /api/question-bank/questions [post]
func (c *QuestionBankController) AddQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BankQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionBankService.AddQuestion(user.CompanyID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary Delete a bank question
// @Tags question-bank
// @Produce json
// @Security BearerAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /api/question-bank/questions/{id} [delete]
func (c *QuestionBankController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionBankService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
