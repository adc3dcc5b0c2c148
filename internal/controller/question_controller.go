package controller

import (
	"strconv"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	ScoreService    *service.ScoreService
	AIService       *service.AIService
}

func NewQuestionController(questionService *service.QuestionService, scoreService *service.ScoreService, aiService *service.AIService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		ScoreService:    scoreService,
		AIService:       aiService,
	}
}

// CreateQuestion godoc
// @Summary Post a question
// @Tags question
// @Accept json
// @Produce json
// @Param body body service.QuestionInput true "Question"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	question, err := c.QuestionService.CreateQuestion(&input, claims.Subject)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// GetQuestions godoc
// @Summary List questions
// @Tags question
// @Produce json
// @Param limit query int false "Maximum number of questions"
// @Success 200 {object} util.Response
// @Router /questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	questions, err := c.QuestionService.GetQuestions(limit)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary Get a question with its answers
// @Tags question
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} util.Response{data=service.QuestionDetail}
// @Failure 404 {object} util.Response
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	detail, err := c.QuestionService.GetQuestion(ctx.Param("id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type answerRequest struct {
	Text       string `json:"text" binding:"required"`
	LineNumber *int   `json:"lineNumber"`
}

// AddAnswer godoc
// @Summary Answer a question
// @Description A lineNumber makes it a code-line answer, otherwise it joins
// @Description the general stream. The answer is stamped with the author's
// @Description current title in the question's category.
// @Tags question
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param body body answerRequest true "Answer"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /questions/{id}/answers [post]
func (c *QuestionController) AddAnswer(ctx *gin.Context) {
	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	kind := model.AnswerGeneral
	lineNumber := 0
	if req.LineNumber != nil {
		kind = model.AnswerCode
		lineNumber = *req.LineNumber
	}

	answer, err := c.QuestionService.AddAnswer(ctx.Param("id"), kind, lineNumber, req.Text, claims.Subject)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

type toggleResolveRequest struct {
	AnswerIndex int  `json:"answerIndex"`
	LineNumber  *int `json:"lineNumber"`
}

// ToggleResolve godoc
// @Summary Toggle the resolved mark on an answer
// @Description Resolving credits the answerer +1 and the asker +0.5 in the
// @Description question's category; unresolving takes the same amounts back.
// @Tags question
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param body body toggleResolveRequest true "Answer position"
// @Success 200 {object} util.Response{data=service.ResolveResult}
// @Failure 404 {object} util.Response
// @Router /questions/{id}/resolve [post]
func (c *QuestionController) ToggleResolve(ctx *gin.Context) {
	var req toggleResolveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var result *service.ResolveResult
	var err error
	if req.LineNumber != nil {
		result, err = c.QuestionService.ToggleResolveCode(ctx.Param("id"), *req.LineNumber, req.AnswerIndex)
	} else {
		result, err = c.QuestionService.ToggleResolveGeneral(ctx.Param("id"), req.AnswerIndex)
	}
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetScores godoc
// @Summary Get a student's score ledger
// @Tags question
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} util.Response{data=service.ScoreSummary}
// @Router /scores/{student_id} [get]
func (c *QuestionController) GetScores(ctx *gin.Context) {
	summary, err := c.ScoreService.Summary(ctx.Param("student_id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type updateScoreRequest struct {
	StudentID string  `json:"studentId" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	Delta     float64 `json:"delta" binding:"required"`
}

// UpdateScore godoc
// @Summary Apply a manual score adjustment
// @Description Adds the delta to the student's category total, clamping at
// @Description zero, and refreshes the title.
// @Tags question
// @Accept json
// @Produce json
// @Param body body updateScoreRequest true "Adjustment"
// @Success 200 {object} util.Response{data=service.ScoreSummary}
// @Router /scores [post]
func (c *QuestionController) UpdateScore(ctx *gin.Context) {
	var req updateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.ScoreService.UpdateScore(req.StudentID, req.Category, req.Delta)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type classifyRequest struct {
	Text       string   `json:"text" binding:"required"`
	Categories []string `json:"categories"`
}

// ClassifyQuestion godoc
// @Summary Suggest a category for question text
// @Description Majority vote over several model completions.
// @Tags question
// @Accept json
// @Produce json
// @Param body body classifyRequest true "Question text"
// @Success 200 {object} util.Response
// @Router /questions/classify [post]
func (c *QuestionController) ClassifyQuestion(ctx *gin.Context) {
	var req classifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req.Categories) == 0 {
		req.Categories = []string{"backend", "frontend", "security", "network", "cloud", "others"}
	}

	category, err := c.AIService.ClassifyQuestion(ctx.Request.Context(), req.Text, req.Categories)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"category": category})
}
