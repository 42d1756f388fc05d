package handlers

import (
	"errors"
	"net/http"

	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/appointment"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the appointment lifecycle over HTTP.
type AppointmentHandler struct {
	svc appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// CreateHandler books a new appointment for the acting client.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	var req appointment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	// A booking is always created on behalf of the acting session.
	req.ClientID = user.ID
	if req.ClientName == "" {
		req.ClientName = user.Name
	}
	if req.ClientAvatar == "" {
		req.ClientAvatar = user.Avatar
	}

	appt, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// ListHandler returns the appointments visible to the acting session.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	appts, err := h.svc.ListFor(user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointments", err.Error())
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// TransitionHandler moves an appointment to a new status.
func (h *AppointmentHandler) TransitionHandler(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	appt, err := h.svc.Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// respondAppointmentError maps the service's typed errors onto distinct,
// user-visible responses; anything unexpected collapses to a generic retry
// message.
func respondAppointmentError(c *gin.Context, err error) {
	var (
		validationErr *appointment.ValidationError
		transitionErr *appointment.InvalidTransitionError
		notFoundErr   *appointment.NotFoundError
		slotErr       *appointment.SlotTakenError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment data", validationErr.Error())
	case errors.As(err, &transitionErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Status change not allowed", transitionErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", notFoundErr.Error())
	case errors.As(err, &slotErr):
		utils.JSONError(c, http.StatusConflict, "Time slot unavailable", slotErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.", "")
	}
}
