package dto

import "github.com/BruksfildServices01/pitstop-servix/internal/models"

// UserResponse never carries the password hash.
type UserResponse struct {
	ID              uint                    `json:"id"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Role            string                  `json:"role"`
	CustomerProfile *CustomerProfileSummary `json:"customerProfile,omitempty"`
	Garage          *OwnedGarageSummary     `json:"garage,omitempty"`
}

type CustomerProfileSummary struct {
	VehicleNumber string `json:"vehicleNumber"`
	Phone         string `json:"phone"`
}

type OwnedGarageSummary struct {
	ID            uint   `json:"id"`
	GarageName    string `json:"garageName"`
	GarageAddress string `json:"garageAddress"`
	Approved      bool   `json:"approved"`
}

type AuthResponse struct {
	Token   string       `json:"token,omitempty"`
	User    UserResponse `json:"user"`
	Message string       `json:"message,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	out := UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if p := u.CustomerProfile; p != nil {
		out.CustomerProfile = &CustomerProfileSummary{
			VehicleNumber: p.VehicleNumber,
			Phone:         p.Phone,
		}
	}
	if g := u.Garage; g != nil {
		out.Garage = &OwnedGarageSummary{
			ID:            g.ID,
			GarageName:    g.GarageName,
			GarageAddress: g.GarageAddress,
			Approved:      g.Approved,
		}
	}
	return out
}
