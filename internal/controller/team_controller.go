package controller

import (
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	TeamService *service.TeamService
}

func NewTeamController(teamService *service.TeamService) *TeamController {
	return &TeamController{TeamService: teamService}
}

type registerTeamRequest struct {
	CourseCode string `json:"course_code" binding:"required"`
	TeamName   string `json:"team_name" binding:"required"`
}

// Register godoc
// @Summary Join or create a team
// @Description Puts the caller on the named team, moving them out of any
// @Description team they were on in the same course. Creating a new team
// @Description fails once the course's team cap is reached.
// @Tags team
// @Accept json
// @Produce json
// @Param body body registerTeamRequest true "Course and team"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /teams/register [post]
func (c *TeamController) Register(ctx *gin.Context) {
	var req registerTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	team, err := c.TeamService.RegisterStudent(req.CourseCode, req.TeamName, claims.GithubID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, team)
}

// GetTeams godoc
// @Summary List the teams of a course
// @Tags team
// @Produce json
// @Param course_code path string true "Course code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /teams/{course_code} [get]
func (c *TeamController) GetTeams(ctx *gin.Context) {
	teams, err := c.TeamService.GetTeams(ctx.Param("course_code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}
