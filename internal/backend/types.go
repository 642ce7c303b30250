package backend

import "time"

// Appointment is the canonical appointment shape used across the web app.
type Appointment struct {
	ID              int64
	Garage          GarageRef
	Customer        CustomerRef
	ServiceType     string
	Notes           string
	AppointmentDate string
	TimeSlot        string
	ContactPhone    string
	Status          string
	Notification    *Notification
}

type GarageRef struct {
	ID        int64
	Name      string
	Address   string
	OwnerName string
}

type CustomerRef struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	VehicleNumber string
}

type Notification struct {
	LastSentAt time.Time
	Type       string
}

type Garage struct {
	ID         int64
	Name       string
	Address    string
	OwnerName  string
	OwnerEmail string
	Phone      string
	ImageURL   string
	Rating     float64
	Reviews    int
	Distance   string
	Services   []string
}

type User struct {
	ID      int64
	Name    string
	Email   string
	Role    string
	Roles   []string
	IsOwner bool
	Profile *Profile
	Garage  *OwnedGarage
}

type Profile struct {
	VehicleNumber string
	Phone         string
}

type OwnedGarage struct {
	ID      int64
	Name    string
	Address string
}

// Phone prefers the customer profile's number.
func (u *User) Phone() string {
	if u == nil || u.Profile == nil {
		return ""
	}
	return u.Profile.Phone
}

type AuthResult struct {
	Token string
	User  *User
}

type StatusUpdate struct {
	Appointment      *Appointment
	NotificationSent bool
}

// ======================================================
// INPUTS
// ======================================================

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterCustomerInput struct {
	User    AccountInput `json:"user"`
	Profile struct {
		VehicleNumber string `json:"vehicleNumber"`
		Phone         string `json:"phone"`
	} `json:"profile"`
}

type RegisterGarageInput struct {
	User   AccountInput `json:"user"`
	Garage struct {
		GarageName    string `json:"garageName"`
		GarageAddress string `json:"garageAddress"`
		LicenseNumber string `json:"licenseNumber,omitempty"`
	} `json:"garage"`
}

type CreateAppointmentInput struct {
	GarageID        int64  `json:"garageId"`
	CustomerID      int64  `json:"customerId"`
	ServiceType     string `json:"serviceType"`
	TimeSlot        string `json:"timeSlot"`
	AppointmentDate string `json:"appointmentDate"`
	Notes           string `json:"notes"`
	ContactPhone    string `json:"contactPhone"`
}
