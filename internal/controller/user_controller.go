package controller

import (
	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Config      *config.Config
}

func NewUserController(userService *service.UserService, cfg *config.Config) *UserController {
	return &UserController{UserService: userService, Config: cfg}
}

// CompleteSignup godoc
// @Summary Finish student signup
// @Description Stores the profile collected after the first GitHub login and
// @Description sets the JWT cookie.
// @Tags user
// @Accept json
// @Produce json
// @Param body body service.SignupInput true "Profile fields"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /user/signup [post]
func (c *UserController) CompleteSignup(ctx *gin.Context) {
	var input service.SignupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.UserService.CompleteSignup(&input)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	secure := c.Config.Server.Mode == "release"
	ctx.SetCookie("jwtToken", token, int(c.Config.JWT.ExpireTime.Seconds()), "/", "", secure, true)
	util.Created(ctx, gin.H{
		"name":      user.Name,
		"studentId": user.StudentID,
	})
}

// GetUser godoc
// @Summary Look up a user by GitHub username
// @Tags user
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {object} util.Response{data=service.UserSummary}
// @Failure 404 {object} util.Response
// @Router /user/{username} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	summary, err := c.UserService.GetByGithubUsername(ctx.Param("username"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// MyCourses godoc
// @Summary Courses of the authenticated caller
// @Description Professors get the courses they teach, students their
// @Description enrollments.
// @Tags user
// @Produce json
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /user/courses [get]
func (c *UserController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.UserService.UserCourses(claims)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
