package handler

import "github.com/clinicflow/auth-service/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Name:      u.Name,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Avatar:    u.Avatar,
		Age:       u.Age,
		DoctorID:  u.DoctorID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserUpdate(r updateProfileRequest) domain.UserUpdate {
	return domain.UserUpdate{
		Name:     r.Name,
		Phone:    r.Phone,
		Gender:   r.Gender,
		Avatar:   r.Avatar,
		Age:      r.Age,
		DoctorID: r.DoctorID,
	}
}
