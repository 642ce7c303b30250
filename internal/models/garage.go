package models

import "time"

type Garage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint  `gorm:"uniqueIndex;not null" json:"ownerId"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"-"`

	GarageName    string  `gorm:"size:120;not null;index" json:"garageName"`
	GarageAddress string  `gorm:"size:255" json:"garageAddress"`
	LicenseNumber string  `gorm:"size:60" json:"licenseNumber"`
	Phone         string  `gorm:"size:20" json:"phone"`
	ImageURL      string  `gorm:"size:512" json:"imageUrl"`
	Rating        float64 `gorm:"default:0" json:"rating"`
	Reviews       int     `gorm:"default:0" json:"reviews"`

	// Garages are hidden and their owners cannot log in until approved.
	Approved bool `gorm:"default:false;index" json:"approved"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
