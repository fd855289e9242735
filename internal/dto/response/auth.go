package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt time.Time       `json:"expires_at,omitempty"`
}
