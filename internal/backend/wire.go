package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Display defaults for garages whose records are incomplete.
const (
	DefaultGarageName     = "Unknown Garage"
	DefaultGarageLocation = "Location not set"
	DefaultOwnerName      = "Owner Name"
	DefaultGaragePhone    = "+91 98765 43210"
	DefaultDistance       = "> 1 km"
	DefaultRating         = 4.9
	DefaultGarageImage    = "https://images.unsplash.com/photo-1487754180451-c456f719a1fc?auto=format&fit=crop&w=800&q=60"
)

// flexID accepts numeric ids sent either as JSON numbers or strings.
type flexID int64

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// non-numeric ids are treated as missing
		*id = 0
		return nil
	}
	*id = flexID(n)
	return nil
}

// ownerField is either a plain owner name or an object describing the owner.
type ownerField struct {
	Name  string
	Email string
	Phone string
}

func (o *ownerField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &o.Name)
	}

	var obj struct {
		Name     string `json:"name"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	o.Name = firstNonEmpty(obj.Name, obj.FullName)
	o.Email = obj.Email
	o.Phone = obj.Phone
	return nil
}

// nameList accepts ["a","b"] or [{"name":"a"}].
type nameList []string

func (l *nameList) UnmarshalJSON(b []byte) error {
	var plain []string
	if err := json.Unmarshal(b, &plain); err == nil {
		*l = plain
		return nil
	}

	var objs []struct {
		Name      string `json:"name"`
		Authority string `json:"authority"`
	}
	if err := json.Unmarshal(b, &objs); err != nil {
		*l = nil
		return nil
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		if n := firstNonEmpty(o.Name, o.Authority); n != "" {
			out = append(out, n)
		}
	}
	*l = out
	return nil
}

// flexTime accepts RFC 3339 timestamps and zone-less local date-times.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = flexTime(v)
			return nil
		}
	}
	return nil
}

type wireGarage struct {
	ID            flexID     `json:"id"`
	GarageName    string     `json:"garageName"`
	Name          string     `json:"name"`
	GarageAddress string     `json:"garageAddress"`
	Address       string     `json:"address"`
	Location      string     `json:"location"`
	OwnerName     string     `json:"ownerName"`
	Owner         ownerField `json:"owner"`
	Phone         string     `json:"phone"`
	ImageURL      string     `json:"imageUrl"`
	Image         string     `json:"image"`
	Rating        *float64   `json:"rating"`
	Reviews       *int       `json:"reviews"`
	Distance      string     `json:"distance"`
	Services      nameList   `json:"services"`
}

type wireCustomer struct {
	ID            flexID `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}

type wireNotification struct {
	LastSentAt flexTime `json:"lastSentAt"`
	Type       string   `json:"type"`
}

type wireAppointment struct {
	ID              flexID            `json:"id"`
	Garage          *wireGarage       `json:"garage"`
	Customer        *wireCustomer     `json:"customer"`
	ServiceType     string            `json:"serviceType"`
	Notes           string            `json:"notes"`
	AppointmentDate string            `json:"appointmentDate"`
	TimeSlot        string            `json:"timeSlot"`
	ContactPhone    string            `json:"contactPhone"`
	Status          string            `json:"status"`
	Notification    *wireNotification `json:"notification"`
}

type wireProfile struct {
	VehicleNumber string `json:"vehicleNumber"`
	Phone         string `json:"phone"`
}

type wireUser struct {
	ID              flexID       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Role            string       `json:"role"`
	Roles           nameList     `json:"roles"`
	IsOwner         bool         `json:"isOwner"`
	Phone           string       `json:"phone"`
	CustomerProfile *wireProfile `json:"customerProfile"`
	Profile         *wireProfile `json:"profile"`
	Garage          *wireGarage  `json:"garage"`
}

type wireAuth struct {
	Token   string    `json:"token"`
	User    *wireUser `json:"user"`
	Message string    `json:"message"`
}

type wireStatusUpdate struct {
	Appointment      *wireAppointment `json:"appointment"`
	NotificationSent bool             `json:"notificationSent"`
}

type wireError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ======================================================
// NORMALIZATION
// ======================================================

func (g *wireGarage) toGarage() Garage {
	out := Garage{
		ID:         int64(g.ID),
		Name:       firstNonEmpty(g.GarageName, g.Name, DefaultGarageName),
		Address:    firstNonEmpty(g.GarageAddress, g.Address, g.Location, DefaultGarageLocation),
		OwnerName:  firstNonEmpty(g.OwnerName, g.Owner.Name, DefaultOwnerName),
		OwnerEmail: g.Owner.Email,
		Phone:      firstNonEmpty(g.Phone, g.Owner.Phone, DefaultGaragePhone),
		ImageURL:   firstNonEmpty(g.ImageURL, g.Image, DefaultGarageImage),
		Rating:     DefaultRating,
		Distance:   firstNonEmpty(g.Distance, DefaultDistance),
		Services:   []string(g.Services),
	}
	if g.Rating != nil {
		out.Rating = *g.Rating
	}
	if g.Reviews != nil {
		out.Reviews = *g.Reviews
	}
	return out
}

func (g *wireGarage) toRef() GarageRef {
	if g == nil {
		return GarageRef{}
	}
	return GarageRef{
		ID:        int64(g.ID),
		Name:      firstNonEmpty(g.Name, g.GarageName),
		Address:   firstNonEmpty(g.Address, g.GarageAddress, g.Location),
		OwnerName: firstNonEmpty(g.OwnerName, g.Owner.Name),
	}
}

func (a *wireAppointment) toAppointment() Appointment {
	out := Appointment{
		ID:              int64(a.ID),
		Garage:          a.Garage.toRef(),
		ServiceType:     a.ServiceType,
		Notes:           a.Notes,
		AppointmentDate: a.AppointmentDate,
		TimeSlot:        a.TimeSlot,
		ContactPhone:    a.ContactPhone,
		Status:          strings.ToUpper(strings.TrimSpace(a.Status)),
	}

	if c := a.Customer; c != nil {
		out.Customer = CustomerRef{
			ID:            int64(c.ID),
			Name:          firstNonEmpty(c.Name, c.FullName),
			Email:         c.Email,
			Phone:         c.Phone,
			VehicleNumber: c.VehicleNumber,
		}
	}

	if n := a.Notification; n != nil && (!time.Time(n.LastSentAt).IsZero() || n.Type != "") {
		out.Notification = &Notification{
			LastSentAt: time.Time(n.LastSentAt),
			Type:       n.Type,
		}
	}

	return out
}

func (u *wireUser) toUser() *User {
	if u == nil {
		return nil
	}

	out := &User{
		ID:      int64(u.ID),
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Roles:   []string(u.Roles),
		IsOwner: u.IsOwner,
	}

	p := u.CustomerProfile
	if p == nil {
		p = u.Profile
	}
	if p != nil || u.Phone != "" {
		out.Profile = &Profile{Phone: u.Phone}
		if p != nil {
			out.Profile.VehicleNumber = p.VehicleNumber
			out.Profile.Phone = firstNonEmpty(p.Phone, u.Phone)
		}
	}

	if g := u.Garage; g != nil && int64(g.ID) != 0 {
		out.Garage = &OwnedGarage{
			ID:      int64(g.ID),
			Name:    firstNonEmpty(g.GarageName, g.Name),
			Address: firstNonEmpty(g.GarageAddress, g.Address),
		}
	}

	return out
}

func errorMessage(body []byte) string {
	var we wireError
	if err := json.Unmarshal(body, &we); err != nil {
		return ""
	}
	return firstNonEmpty(we.Message, we.Error)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
