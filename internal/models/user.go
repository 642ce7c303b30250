package models

import "time"

const (
	RoleCustomer    = "CUSTOMER"
	RoleGarageOwner = "GARAGE_OWNER"
	RoleAdmin       = "ADMIN"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'CUSTOMER';index" json:"role"`

	CustomerProfile *CustomerProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customerProfile,omitempty"`
	Garage          *Garage          `gorm:"foreignKey:OwnerID" json:"garage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Phone is the customer profile's number, if any.
func (u *User) Phone() string {
	if u.CustomerProfile == nil {
		return ""
	}
	return u.CustomerProfile.Phone
}
