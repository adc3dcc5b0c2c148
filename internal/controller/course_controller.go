package controller

import (
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// SaveCourses godoc
// @Summary Create courses in bulk
// @Description Rejects the whole batch when any course code already exists.
// @Tags course
// @Accept json
// @Produce json
// @Param body body []service.CourseInput true "Courses"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /courses [post]
func (c *CourseController) SaveCourses(ctx *gin.Context) {
	var inputs []service.CourseInput
	if err := ctx.ShouldBindJSON(&inputs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(inputs) == 0 {
		util.BadRequest(ctx, "no courses given")
		return
	}

	if err := c.CourseService.SaveCourses(inputs); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"saved": len(inputs)})
}

// GetCourses godoc
// @Summary List all courses
// @Tags course
// @Produce json
// @Success 200 {object} util.Response
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.CourseService.GetCourses()
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get one course
// @Tags course
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{code} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type deleteCoursesRequest struct {
	Codes []string `json:"codes" binding:"required,min=1"`
}

// DeleteCourses godoc
// @Summary Delete courses by code
// @Tags course
// @Accept json
// @Produce json
// @Param body body deleteCoursesRequest true "Course codes"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses [delete]
func (c *CourseController) DeleteCourses(ctx *gin.Context) {
	var req deleteCoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deleted, err := c.CourseService.DeleteCourses(req.Codes)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": deleted})
}

// SaveStudents godoc
// @Summary Upload a course roster
// @Description Upserts students and enrollments, reporting new, updated and
// @Description duplicate rows.
// @Tags course
// @Accept json
// @Produce json
// @Param body body []service.StudentRow true "Roster rows"
// @Success 200 {object} util.Response{data=service.RosterReport}
// @Failure 400 {object} util.Response
// @Router /students [post]
func (c *CourseController) SaveStudents(ctx *gin.Context) {
	var rows []service.StudentRow
	if err := ctx.ShouldBindJSON(&rows); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(rows) == 0 {
		util.BadRequest(ctx, "no students given")
		return
	}

	report, err := c.CourseService.SaveStudents(rows)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// GetStudents godoc
// @Summary List students
// @Description Lists the roster of one course, or every student when no
// @Description course code is given.
// @Tags course
// @Produce json
// @Param course_code query string false "Course code"
// @Success 200 {object} util.Response
// @Router /students [get]
func (c *CourseController) GetStudents(ctx *gin.Context) {
	students, err := c.CourseService.GetStudents(ctx.Query("course_code"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// StudentCourses godoc
// @Summary Courses a student is enrolled in
// @Tags course
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} util.Response
// @Router /students/{student_id}/courses [get]
func (c *CourseController) StudentCourses(ctx *gin.Context) {
	courses, err := c.CourseService.StudentCourses(ctx.Param("student_id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

type removeStudentsRequest struct {
	CourseCode string   `json:"course_code" binding:"required"`
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

// RemoveStudents godoc
// @Summary Remove students from a course roster
// @Tags course
// @Accept json
// @Produce json
// @Param body body removeStudentsRequest true "Course and students"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /students [delete]
func (c *CourseController) RemoveStudents(ctx *gin.Context) {
	var req removeStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	removed, err := c.CourseService.RemoveStudents(req.CourseCode, req.StudentIDs)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": removed})
}
