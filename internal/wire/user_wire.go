package wire

import (
	"rental-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth middlewareFunc) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/users", userHandler.Register) // POST /api/users - register, token in x-auth-token
	r.Post("/api/auth", userHandler.Login)     // POST /api/auth - login, token as body

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/users/me", userHandler.Me)
}
