package controller

import (
	"strconv"

	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

// SaveProject godoc
// @Summary Submit a project
// @Description Stores the project metadata and generates the AI summary
// @Description from the extracted README.
// @Tags project
// @Accept json
// @Produce json
// @Param body body service.ProjectInput true "Project"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /projects [post]
func (c *ProjectController) SaveProject(ctx *gin.Context) {
	var input service.ProjectInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if claims := util.GetUserFromContext(ctx); claims != nil && input.StudentID == "" {
		input.StudentID = claims.StudentID
	}

	project, err := c.ProjectService.SaveProject(ctx.Request.Context(), &input)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, project)
}

// GetProjects godoc
// @Summary List projects
// @Tags project
// @Produce json
// @Param limit query int false "Maximum number of projects"
// @Success 200 {object} util.Response
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	projects, err := c.ProjectService.GetProjects(limit)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, projects)
}

// GetProject godoc
// @Summary Get one project
// @Description Returns the project and counts the view.
// @Tags project
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, err := c.ProjectService.GetProject(ctx.Param("id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment godoc
// @Summary Comment on a project
// @Tags project
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body commentRequest true "Comment"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /projects/{id}/comments [post]
func (c *ProjectController) AddComment(ctx *gin.Context) {
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	project, err := c.ProjectService.AddComment(ctx.Param("id"), claims.Subject, req.Content)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags project
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	if err := c.ProjectService.DeleteProject(ctx.Param("id")); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": ctx.Param("id")})
}

// UploadPreviews godoc
// @Summary Upload preview images for a project
// @Tags project
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param images formData file true "Preview images"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /projects/{id}/previews [post]
func (c *ProjectController) UploadPreviews(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		util.BadRequest(ctx, "no images given")
		return
	}

	urls, err := c.ProjectService.UploadPreviews(ctx.Request.Context(), ctx.Param("id"), files)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"image_preview_urls": urls})
}
