package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/catalog"
	"github.com/BruksfildServices01/pitstop-servix/internal/session"
	"github.com/BruksfildServices01/pitstop-servix/internal/timefmt"
)

// cardServices is shown on home cards for garages without a service list.
var cardServices = []string{"Oil Change", "Car Wash"}

type garageCard struct {
	backend.Garage
	Tags []string
}

// ======================================================
// HOME / SEARCH
// ======================================================

func (h *Handler) Home(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var (
		garages  []backend.Garage
		err      error
		errorMsg string
	)

	if query == "" {
		garages, err = h.api.ListGarages(c.Request.Context())
		errorMsg = "Failed to fetch garages"
	} else {
		garages, err = h.api.SearchGarages(c.Request.Context(), query)
		errorMsg = "No garages found or search failed"
	}

	if err != nil {
		if aborted(c, err) {
			return
		}
		h.log.Info("web.garages_failed", zap.String("query", query), zap.Error(err))
		h.render(c, http.StatusOK, "home.html", gin.H{
			"Query": query,
			"Error": errorMsg,
		})
		return
	}

	cards := make([]garageCard, 0, len(garages))
	for _, g := range garages {
		tags := g.Services
		if len(tags) == 0 {
			tags = cardServices
		}
		cards = append(cards, garageCard{Garage: g, Tags: tags})
	}

	h.render(c, http.StatusOK, "home.html", gin.H{
		"Query":   query,
		"Garages": cards,
	})
}

// ======================================================
// DETAILS
// ======================================================

func (h *Handler) GarageDetails(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.render(c, http.StatusNotFound, "garage.html", gin.H{"Error": "Failed to load garage details"})
		return
	}

	g, err := h.api.GetGarage(c.Request.Context(), id)
	if err != nil {
		if aborted(c, err) {
			return
		}
		status := http.StatusBadGateway
		if backend.IsStatus(err, http.StatusNotFound) {
			status = http.StatusNotFound
		}
		h.render(c, status, "garage.html", gin.H{"Error": "Failed to load garage details"})
		return
	}

	services := g.Services
	if len(services) == 0 {
		services = catalog.GarageServices
	}

	h.render(c, http.StatusOK, "garage.html", gin.H{
		"Garage":   g,
		"Services": services,
	})
}

// ======================================================
// BOOKING
// ======================================================

type bookingForm struct {
	ServiceType     string `form:"serviceType"`
	AppointmentDate string `form:"appointmentDate"`
	TimeSlot        string `form:"timeSlot"`
	Notes           string `form:"notes"`
}

const (
	garageFetchFailed = "Unable to fetch garage details. Try again later."
	bookingFailed     = "Failed to create appointment. Please try again."
	bookingIncomplete = "Please choose a service, a date and a time slot."
)

func (h *Handler) BookingPage(c *gin.Context) {
	h.renderBooking(c, http.StatusOK, bookingForm{}, "")
}

func (h *Handler) Book(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.renderBooking(c, http.StatusNotFound, bookingForm{}, garageFetchFailed)
		return
	}

	sess := session.FromContext(c)
	if sess.UserID() == 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form bookingForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBooking(c, http.StatusBadRequest, form, bookingIncomplete)
		return
	}
	form.ServiceType = strings.TrimSpace(form.ServiceType)
	form.AppointmentDate = strings.TrimSpace(form.AppointmentDate)
	form.TimeSlot = strings.TrimSpace(form.TimeSlot)

	if !catalog.IsServiceType(form.ServiceType) ||
		!catalog.IsSlot(form.TimeSlot) ||
		!catalog.IsBookableDate(h.now().In(h.loc), catalog.BookingWindowDays, form.AppointmentDate) {
		h.renderBooking(c, http.StatusUnprocessableEntity, form, bookingIncomplete)
		return
	}

	in := backend.CreateAppointmentInput{
		GarageID:        id,
		CustomerID:      sess.UserID(),
		ServiceType:     form.ServiceType,
		TimeSlot:        form.TimeSlot,
		AppointmentDate: form.AppointmentDate,
		Notes:           strings.TrimSpace(form.Notes),
		ContactPhone:    sess.User.Phone(),
	}

	ap, err := h.storeFor(sess).Create(c.Request.Context(), in)
	if err != nil {
		if aborted(c, err) {
			return
		}
		h.renderBooking(c, http.StatusUnprocessableEntity, form, backend.Message(err, bookingFailed))
		return
	}

	h.log.Info("web.appointment_booked",
		zap.Int64("appointment_id", ap.ID),
		zap.Int64("garage_id", id),
	)

	msg := fmt.Sprintf("Appointment #%04d created successfully.", ap.ID)
	if when := timefmt.FormatIn(ap.AppointmentDate, ap.TimeSlot, h.loc); when != timefmt.SchedulePending {
		msg += " Scheduled for " + when + "."
	}
	h.sessions.Flash(c, session.FlashSuccess, msg)

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/garages/%d/book", id))
}

func (h *Handler) renderBooking(c *gin.Context, status int, form bookingForm, errMsg string) {
	data := gin.H{
		"Form":     form,
		"Error":    errMsg,
		"Days":     catalog.UpcomingDays(h.now().In(h.loc), catalog.BookingWindowDays),
		"Slots":    catalog.SlotTemplates,
		"Services": catalog.ServiceTypes,
	}

	id, ok := paramID(c)
	if !ok {
		data["GarageError"] = garageFetchFailed
		h.render(c, status, "book.html", data)
		return
	}

	g, err := h.api.GetGarage(c.Request.Context(), id)
	if err != nil {
		if aborted(c, err) {
			return
		}
		data["GarageError"] = garageFetchFailed
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	} else {
		data["Garage"] = g
	}

	h.render(c, status, "book.html", data)
}
