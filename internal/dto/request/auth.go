package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,user_name"`
	Email    string `json:"email" validate:"required,user_email"`
	Password string `json:"password" validate:"required,user_password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,user_email"`
	Password string `json:"password" validate:"required,user_password"`
}
