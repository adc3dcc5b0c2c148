package controller

import (
	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/service"
	"campus_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	ScheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// SaveAvailability godoc
// @Summary Save office-hours availability
// @Description Overwrites the professor's weekly schedule and blocked slots.
// @Tags schedule
// @Accept json
// @Produce json
// @Param body body service.AvailabilityInput true "Weekly schedule"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /schedule/availability [post]
func (c *ScheduleController) SaveAvailability(ctx *gin.Context) {
	var input service.AvailabilityInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ScheduleService.SaveAvailability(&input); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"email": input.Email})
}

// GetAvailability godoc
// @Summary Get a professor's availability
// @Tags schedule
// @Produce json
// @Param professor_id path string true "Professor ID"
// @Success 200 {object} util.Response{data=model.Availability}
// @Failure 404 {object} util.Response
// @Router /schedule/availability/{professor_id} [get]
func (c *ScheduleController) GetAvailability(ctx *gin.Context) {
	availability, err := c.ScheduleService.GetAvailability(ctx.Param("professor_id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, availability)
}

// AvailableProfessors godoc
// @Summary List professors with office hours configured
// @Tags schedule
// @Produce json
// @Success 200 {object} util.Response{data=[]service.AvailableProfessor}
// @Router /schedule/professors [get]
func (c *ScheduleController) AvailableProfessors(ctx *gin.Context) {
	professors, err := c.ScheduleService.AvailableProfessors()
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, professors)
}

// MakeReservation godoc
// @Summary Book an office-hours slot
// @Description The slot must be on a configured day, not blocked, and not
// @Description fully booked.
// @Tags schedule
// @Accept json
// @Produce json
// @Param body body service.ReservationInput true "Reservation"
// @Success 201 {object} util.Response{data=model.Reservation}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /schedule/reservations [post]
func (c *ScheduleController) MakeReservation(ctx *gin.Context) {
	var input service.ReservationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reservation, err := c.ScheduleService.MakeReservation(&input, claims.Subject)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, reservation)
}

// AllReservations godoc
// @Summary Every office-hours reservation
// @Tags schedule
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Reservation}
// @Router /schedule/reservations/all [get]
func (c *ScheduleController) AllReservations(ctx *gin.Context) {
	reservations, err := c.ScheduleService.AllReservations()
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, reservations)
}

// MyReservations godoc
// @Summary Reservations of the authenticated caller
// @Description Students see their bookings, professors the bookings made
// @Description with them.
// @Tags schedule
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Reservation}
// @Router /schedule/reservations [get]
func (c *ScheduleController) MyReservations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var reservations []model.Reservation
	var err error
	if claims.Role == model.RoleProfessor {
		reservations, err = c.ScheduleService.ReservationsByProfessor(claims.StudentID)
	} else {
		reservations, err = c.ScheduleService.ReservationsByUser(claims.Subject)
	}
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, reservations)
}
