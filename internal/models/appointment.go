package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GarageID uint   `gorm:"index;not null" json:"garageId"`
	Garage   Garage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"garage"`

	CustomerID uint `gorm:"index;not null" json:"customerId"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	ServiceType     string    `gorm:"size:100" json:"serviceType"`
	TimeSlot        string    `gorm:"size:20" json:"timeSlot"`
	AppointmentDate time.Time `gorm:"type:date;index" json:"appointmentDate"`
	ContactPhone    string    `gorm:"size:20" json:"contactPhone"`

	Status string `gorm:"size:20;default:'PENDING';index" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	LastNotificationSentAt *time.Time `json:"lastNotificationSentAt"`
	LastNotificationType   string     `gorm:"size:40" json:"lastNotificationType"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
