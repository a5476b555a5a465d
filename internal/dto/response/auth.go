package response

import "rental-store/internal/data/entity"

type UserResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileResponse is the signed-in user, never including the password hash.
type ProfileResponse struct {
	UserResponse
	IsAdmin bool `json:"isAdmin"`
}

// AuthResponse pairs a user with a freshly issued token.
type AuthResponse struct {
	User  UserResponse
	Token string
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}

func UserToProfile(user *entity.User) ProfileResponse {
	return ProfileResponse{
		UserResponse: UserToResponse(user),
		IsAdmin:      user.IsAdmin,
	}
}
