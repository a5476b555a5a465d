package adaptor

import (
	"net/http"

	"rental-store/internal/dto/request"
	"rental-store/internal/usecase"
	"rental-store/pkg/middleware"
	"rental-store/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	errorResponder
	service usecase.UserService
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		errorResponder: errorResponder{log: log.With(zap.String("handler", "user"))},
		service:        service,
	}
}

// Register handles POST /api/users. The new token travels in the x-auth-token header.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "register")
		return
	}

	w.Header().Set(middleware.AuthHeader, resp.Token)
	utils.ResponseSuccess(w, resp.User)
}

// Login handles POST /api/auth and answers with the bare token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "login")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(token))
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access denied. No token provided.")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(w, r, err, "get profile")
		return
	}
	utils.ResponseSuccess(w, profile)
}
