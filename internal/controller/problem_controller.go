package controller

import (
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProblemController struct {
	JudgeService *service.JudgeService
}

func NewProblemController(judgeService *service.JudgeService) *ProblemController {
	return &ProblemController{JudgeService: judgeService}
}

// CreateProblem godoc
// @Summary Create a judge problem
// @Tags problem
// @Accept json
// @Produce json
// @Param body body service.ProblemInput true "Problem"
// @Success 201 {object} util.Response
// @Router /problems [post]
func (c *ProblemController) CreateProblem(ctx *gin.Context) {
	var input service.ProblemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.JudgeService.CreateProblem(&input)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, problem)
}

// GetProblems godoc
// @Summary List judge problems
// @Tags problem
// @Produce json
// @Success 200 {object} util.Response
// @Router /problems [get]
func (c *ProblemController) GetProblems(ctx *gin.Context) {
	problems, err := c.JudgeService.GetProblems()
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, problems)
}

// GetProblem godoc
// @Summary Get one judge problem
// @Tags problem
// @Produce json
// @Param id path string true "Problem ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /problems/{id} [get]
func (c *ProblemController) GetProblem(ctx *gin.Context) {
	problem, err := c.JudgeService.GetProblem(ctx.Param("id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, problem)
}

type submitCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
}

// Submit godoc
// @Summary Submit code against a problem
// @Description Runs the code on Judge0 with the sample input and checks
// @Description the output against the sample output.
// @Tags problem
// @Accept json
// @Produce json
// @Param id path string true "Problem ID"
// @Param body body submitCodeRequest true "Code"
// @Success 200 {object} util.Response{data=service.JudgeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /problems/{id}/submit [post]
func (c *ProblemController) Submit(ctx *gin.Context) {
	var req submitCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.JudgeService.Submit(ctx.Request.Context(), ctx.Param("id"), claims.Subject, req.Code, req.Language)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
