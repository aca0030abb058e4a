package dto

// Request DTOs

type CreateUserRequest struct {
	MessengerID string `json:"messenger_id" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Phone       string `json:"phone" validate:"required,max=50"`
}

// Response DTOs

type UserResponse struct {
	ID          int64  `json:"id"`
	MessengerID string `json:"messenger_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
