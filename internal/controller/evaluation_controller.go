package controller

import (
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	EvaluationService *service.EvaluationService
}

func NewEvaluationController(evaluationService *service.EvaluationService) *EvaluationController {
	return &EvaluationController{EvaluationService: evaluationService}
}

type criteriaRequest struct {
	CourseCode string   `json:"course_code" binding:"required"`
	Criteria   []string `json:"criteria" binding:"required,min=1"`
	MaxTeams   int      `json:"max_teams" binding:"required,min=1"`
}

// SaveCriteria godoc
// @Summary Create the evaluation rubric of a course
// @Description Fails when the course already has a rubric; use PUT to
// @Description change an existing one.
// @Tags evaluation
// @Accept json
// @Produce json
// @Param body body criteriaRequest true "Rubric"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /evaluation/criteria [post]
func (c *EvaluationController) SaveCriteria(ctx *gin.Context) {
	var req criteriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EvaluationService.SaveCriteria(req.CourseCode, req.Criteria, req.MaxTeams); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"course_code": req.CourseCode})
}

// UpdateCriteria godoc
// @Summary Overwrite the evaluation rubric of a course
// @Tags evaluation
// @Accept json
// @Produce json
// @Param body body criteriaRequest true "Rubric"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /evaluation/criteria [put]
func (c *EvaluationController) UpdateCriteria(ctx *gin.Context) {
	var req criteriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EvaluationService.UpdateCriteria(req.CourseCode, req.Criteria, req.MaxTeams); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"course_code": req.CourseCode})
}

// GetCriteria godoc
// @Summary Get the evaluation rubric of a course
// @Tags evaluation
// @Produce json
// @Param course_code path string true "Course code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /evaluation/criteria/{course_code} [get]
func (c *EvaluationController) GetCriteria(ctx *gin.Context) {
	criteria, err := c.EvaluationService.GetCriteria(ctx.Param("course_code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, criteria)
}

// StartEvaluation godoc
// @Summary Start an evaluation round
// @Description Assigns every team member a random panel of other teams.
// @Tags evaluation
// @Produce json
// @Param course_code path string true "Course code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /evaluation/start/{course_code} [post]
func (c *EvaluationController) StartEvaluation(ctx *gin.Context) {
	panels, err := c.EvaluationService.StartEvaluation(ctx.Param("course_code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, panels)
}

// GetAssignment godoc
// @Summary Get the caller's review panel
// @Tags evaluation
// @Produce json
// @Param course_code path string true "Course code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /evaluation/assignment/{course_code} [get]
func (c *EvaluationController) GetAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	teams, err := c.EvaluationService.GetAssignment(ctx.Param("course_code"), claims.StudentID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"evaluations": teams})
}

type submitEvaluationRequest struct {
	CourseCode string         `json:"course_code" binding:"required"`
	TeamName   string         `json:"team_name" binding:"required"`
	Scores     map[string]int `json:"scores" binding:"required"`
}

// SubmitEvaluation godoc
// @Summary Submit scores for one team
// @Description Each evaluator can score a team once; resubmitting is a
// @Description conflict.
// @Tags evaluation
// @Accept json
// @Produce json
// @Param body body submitEvaluationRequest true "Scores"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /evaluation/submit [post]
func (c *EvaluationController) SubmitEvaluation(ctx *gin.Context) {
	var req submitEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EvaluationService.SubmitEvaluation(req.CourseCode, req.TeamName, claims.StudentID, req.Scores); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"team_name": req.TeamName})
}

// GetResults godoc
// @Summary Folded evaluation results of a course
// @Tags evaluation
// @Produce json
// @Param course_code path string true "Course code"
// @Success 200 {object} util.Response{data=[]service.TeamResult}
// @Router /evaluation/results/{course_code} [get]
func (c *EvaluationController) GetResults(ctx *gin.Context) {
	results, err := c.EvaluationService.GetResults(ctx.Param("course_code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// GetProgress godoc
// @Summary Progress of the current round
// @Description Per-team subtotals folded from the submissions received so
// @Description far, plus each evaluator's panel completion.
// @Tags evaluation
// @Produce json
// @Param course_code path string true "Course code"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Router /evaluation/progress/{course_code} [get]
func (c *EvaluationController) GetProgress(ctx *gin.Context) {
	progress, err := c.EvaluationService.GetProgress(ctx.Param("course_code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
