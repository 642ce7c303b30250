package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/dto"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/pitstop-servix/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	listUC         *ucAppointment.ListAppointments
	updateStatusUC *ucAppointment.UpdateAppointmentStatus
	log            *zap.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	listUC *ucAppointment.ListAppointments,
	updateStatusUC *ucAppointment.UpdateAppointmentStatus,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		listUC:         listUC,
		updateStatusUC: updateStatusUC,
		log:            log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	GarageID        uint   `json:"garageId" binding:"required"`
	CustomerID      uint   `json:"customerId"`
	ServiceType     string `json:"serviceType" binding:"required"`
	TimeSlot        string `json:"timeSlot" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	Notes           string `json:"notes"`
	ContactPhone    string `json:"contactPhone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

const msgIncompleteBooking = "Please choose a garage, a service, a date and a time slot."

// businessMessages maps use case error codes to status and message.
var businessMessages = map[string]struct {
	status  int
	message string
}{
	"missing_booking_details":  {http.StatusBadRequest, msgIncompleteBooking},
	"invalid_appointment_date": {http.StatusBadRequest, "Invalid appointmentDate. Use ISO format (yyyy-MM-dd)."},
	"unsupported_status":       {http.StatusBadRequest, "Unsupported appointment status"},
	"invalid_transition":       {http.StatusConflict, "This appointment cannot move to that status."},
	"garage_not_found":         {http.StatusNotFound, "Garage not found"},
	"customer_not_found":       {http.StatusNotFound, "Customer not found"},
	"appointment_not_found":    {http.StatusNotFound, "Appointment not found"},
	"forbidden":                {http.StatusForbidden, "You are not allowed to manage this appointment."},
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", msgIncompleteBooking)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:           actorFrom(c),
		GarageID:        req.GarageID,
		CustomerID:      req.CustomerID,
		ServiceType:     req.ServiceType,
		TimeSlot:        req.TimeSlot,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		h.fail(c, err, "failed_to_create_appointment", "Unable to create the appointment.")
		return
	}

	httpresp.Created(c, dto.NewAppointmentResponse(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.listUC.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Actor:  actorFrom(c),
		Status: c.Query("status"),
	})
	if err != nil {
		h.fail(c, err, "failed_to_list_appointments", "Unable to load appointments.")
		return
	}

	httpresp.List(c, dto.NewAppointmentList(apps))
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "unsupported_status", "Unsupported appointment status")
		return
	}

	res, err := h.updateStatusUC.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		Actor:         actorFrom(c),
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		h.fail(c, err, "failed_to_update_appointment", "Unable to update the appointment.")
		return
	}

	httpresp.OK(c, dto.StatusUpdateResponse{
		Appointment:      dto.NewAppointmentResponse(res.Appointment),
		NotificationSent: res.NotificationSent,
	})
}

func (h *AppointmentHandler) fail(c *gin.Context, err error, code, message string) {
	if be, ok := httperr.AsBusiness(err); ok {
		if m, ok := businessMessages[be.Code]; ok {
			httperr.Write(c, m.status, be.Code, m.message)
			return
		}
	}

	h.log.Error("appointment request failed", zap.String("code", code), zap.Error(err))
	httperr.Internal(c, code, message)
}
