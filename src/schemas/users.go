package schemas

import (
	"time"

	"server/src/models"
)

type UserResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	RiskProfile string    `json:"risk_profile"`
	KYCStatus   string    `json:"kyc_status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		RiskProfile: u.RiskProfile,
		KYCStatus:   u.KYCStatus,
		CreatedAt:   u.CreatedAt,
	}
}

// UserUpdate names every field a profile patch may change.
type UserUpdate struct {
	Name        *string `json:"name"`
	RiskProfile *string `json:"risk_profile"`
}

func (u *UserUpdate) Apply(user *models.User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.RiskProfile != nil {
		user.RiskProfile = *u.RiskProfile
	}
}
