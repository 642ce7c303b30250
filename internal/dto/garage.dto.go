package dto

import "github.com/BruksfildServices01/pitstop-servix/internal/models"

type GarageResponse struct {
	ID            uint          `json:"id"`
	GarageName    string        `json:"garageName"`
	GarageAddress string        `json:"garageAddress"`
	Phone         string        `json:"phone,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	Rating        *float64      `json:"rating,omitempty"`
	Reviews       int           `json:"reviews"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
}

type OwnerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewGarageResponse(g *models.Garage) GarageResponse {
	out := GarageResponse{
		ID:            g.ID,
		GarageName:    g.GarageName,
		GarageAddress: g.GarageAddress,
		Phone:         g.Phone,
		ImageURL:      g.ImageURL,
		Reviews:       g.Reviews,
	}
	// unrated garages fall back to the client's default
	if g.Rating > 0 {
		r := g.Rating
		out.Rating = &r
	}
	if g.Owner != nil {
		out.Owner = &OwnerSummary{Name: g.Owner.Name, Email: g.Owner.Email}
	}
	return out
}

func NewGarageList(garages []models.Garage) []GarageResponse {
	out := make([]GarageResponse, 0, len(garages))
	for i := range garages {
		out = append(out, NewGarageResponse(&garages[i]))
	}
	return out
}
