package controller

import (
	"fmt"
	"net/http"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Config      *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{AuthService: authService, Config: cfg}
}

// cookieMaxAge converts the JWT lifetime for the Set-Cookie header.
func (c *AuthController) cookieMaxAge() int {
	return int(c.Config.JWT.ExpireTime.Seconds())
}

// GithubLogin godoc
// @Summary Start GitHub OAuth login
// @Description Redirects the browser to the GitHub consent page
// @Tags auth
// @Success 307
// @Router /auth/login [get]
func (c *AuthController) GithubLogin(ctx *gin.Context) {
	ctx.Redirect(http.StatusTemporaryRedirect, c.AuthService.AuthorizeURL())
}

// GithubCallback godoc
// @Summary GitHub OAuth callback
// @Description Exchanges the OAuth code; registered users get a JWT cookie
// @Description and land on the main page, new users are sent to signup.
// @Tags auth
// @Param code query string true "OAuth authorization code"
// @Success 307
// @Failure 401 {object} util.Response
// @Router /auth/callback [get]
func (c *AuthController) GithubCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		util.BadRequest(ctx, "missing authorization code")
		return
	}

	outcome, err := c.AuthService.LoginWithGithub(ctx.Request.Context(), code)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	frontend := c.Config.GitHub.FrontendURL
	if !outcome.Registered {
		target := fmt.Sprintf("%s/signup?githubId=%d&githubUsername=%s&githubName=%s",
			frontend, outcome.Profile.ID, outcome.Profile.Login, outcome.Profile.Name)
		ctx.Redirect(http.StatusTemporaryRedirect, target)
		return
	}

	secure := c.Config.Server.Mode == "release"
	ctx.SetCookie("jwtToken", outcome.Token, c.cookieMaxAge(), "/", "", secure, true)
	ctx.Redirect(http.StatusTemporaryRedirect, frontend+"/main")
}

// Logout godoc
// @Summary Log out
// @Description Clears the JWT cookie
// @Tags auth
// @Success 200 {object} util.Response
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie("jwtToken", "", -1, "/", "", false, true)
	util.Success(ctx, gin.H{"message": "logged out"})
}

type professorRegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	ProfessorID string `json:"professor_id" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

// RegisterProfessor godoc
// @Summary Register a professor account
// @Description The professor ID must already appear on a course before an
// @Description account can be created.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body professorRegisterRequest true "Professor account details"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /auth/professor/register [post]
func (c *AuthController) RegisterProfessor(ctx *gin.Context) {
	var req professorRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.RegisterProfessor(req.Name, req.Email, req.ProfessorID, req.Password); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"email": req.Email})
}

type professorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginProfessor godoc
// @Summary Professor login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body professorLoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /auth/professor/login [post]
func (c *AuthController) LoginProfessor(ctx *gin.Context) {
	var req professorLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, professor, err := c.AuthService.LoginProfessor(req.Email, req.Password)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	secure := c.Config.Server.Mode == "release"
	ctx.SetCookie("jwtToken", token, c.cookieMaxAge(), "/", "", secure, true)
	util.Success(ctx, gin.H{
		"token": token,
		"name":  professor.Name,
		"email": professor.Email,
	})
}

// Me godoc
// @Summary Current session
// @Description Returns the claims of the authenticated caller plus the
// @Description cached last-login time.
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	response := gin.H{
		"githubId":  claims.GithubID,
		"studentId": claims.StudentID,
		"name":      claims.Subject,
		"role":      claims.Role,
	}
	if claims.GithubID != "" {
		if id, err := parseGithubID(claims.GithubID); err == nil {
			if lastLogin, err := c.AuthService.LastLogin(ctx.Request.Context(), id); err == nil && !lastLogin.IsZero() {
				response["lastLogin"] = lastLogin
			}
		}
	}
	util.Success(ctx, response)
}

func parseGithubID(raw string) (int64, error) {
	var id int64
	_, err := fmt.Sscanf(raw, "%d", &id)
	return id, err
}
