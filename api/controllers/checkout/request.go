package checkout

import (
	checkoutsvc "github.com/glow24organics/storefront-backend/internal/checkout"
)

type hydrateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func toProfile(payload hydrateRequest) checkoutsvc.Profile {
	return checkoutsvc.Profile{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	}
}

type setFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}
