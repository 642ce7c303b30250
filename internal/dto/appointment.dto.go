package dto

import (
	"time"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/timezone"
)

type AppointmentResponse struct {
	ID              uint                 `json:"id"`
	ServiceType     string               `json:"serviceType"`
	TimeSlot        string               `json:"timeSlot"`
	AppointmentDate string               `json:"appointmentDate"`
	Status          string               `json:"status"`
	Notes           string               `json:"notes"`
	ContactPhone    string               `json:"contactPhone"`
	Customer        CustomerSummary      `json:"customer"`
	Garage          GarageSummary        `json:"garage"`
	Notification    *NotificationSummary `json:"notification,omitempty"`
}

type CustomerSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}

type GarageSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	OwnerName string `json:"ownerName"`
}

type NotificationSummary struct {
	LastSentAt time.Time `json:"lastSentAt"`
	Type       string    `json:"type"`
}

type StatusUpdateResponse struct {
	Appointment      AppointmentResponse `json:"appointment"`
	NotificationSent bool                `json:"notificationSent"`
}

func NewAppointmentResponse(ap *models.Appointment) AppointmentResponse {
	out := AppointmentResponse{
		ID:              ap.ID,
		ServiceType:     ap.ServiceType,
		TimeSlot:        ap.TimeSlot,
		AppointmentDate: ap.AppointmentDate.Format(timezone.DateLayout),
		Status:          ap.Status,
		Notes:           ap.Notes,
		ContactPhone:    ap.ContactPhone,
		Customer: CustomerSummary{
			ID:    ap.Customer.ID,
			Name:  ap.Customer.Name,
			Email: ap.Customer.Email,
			Phone: ap.Customer.Phone(),
		},
		Garage: GarageSummary{
			ID:      ap.Garage.ID,
			Name:    ap.Garage.GarageName,
			Address: ap.Garage.GarageAddress,
		},
	}

	if p := ap.Customer.CustomerProfile; p != nil {
		out.Customer.VehicleNumber = p.VehicleNumber
	}
	if ap.Garage.Owner != nil {
		out.Garage.OwnerName = ap.Garage.Owner.Name
	}
	if ap.LastNotificationSentAt != nil {
		out.Notification = &NotificationSummary{
			LastSentAt: *ap.LastNotificationSentAt,
			Type:       ap.LastNotificationType,
		}
	}

	return out
}

func NewAppointmentList(apps []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewAppointmentResponse(&apps[i]))
	}
	return out
}
