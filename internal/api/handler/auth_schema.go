package handler

import "time"

// errorResponse is the standard error envelope for transport-level failures.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type emailExistsRequest struct {
	Email string `query:"email" validate:"required,email"`
}

type refreshTokenRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"      validate:"omitempty,max=120"`
	Phone    *string `json:"phone"     validate:"omitempty,max=32"`
	Gender   *string `json:"gender"    validate:"omitempty,max=32"`
	Avatar   *string `json:"avatar"    validate:"omitempty,max=2048"`
	Age      *int    `json:"age"       validate:"omitempty,gte=0,lte=150"`
	DoctorID *string `json:"doctor_id" validate:"omitempty,max=64"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// --- Response types ---

// userResponse is owned by the transport layer so the JSON contract does not
// follow internal changes to domain.User.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	Avatar    string    `json:"avatar"`
	Age       int       `json:"age"`
	DoctorID  string    `json:"doctor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listUsersResponse struct {
	Data  []userResponse `json:"data"`
	Total int            `json:"total"`
}
