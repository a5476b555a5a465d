package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rental-store/internal/usecase"
	"rental-store/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	User     *UserHandler
	Genre    *GenreHandler
	Customer *CustomerHandler
	Movie    *MovieHandler
	Rental   *RentalHandler
	Return   *ReturnHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		User:     NewUserHandler(service.User, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Customer: NewCustomerHandler(service.Customer, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Rental:   NewRentalHandler(service.Rental, log),
		Return:   NewReturnHandler(service.Return, log),
		Health:   NewHealthHandler(db, log),
	}
}

// decodeBody reads a JSON body into dst. Any failure is answered with 400 and false is returned.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// errorResponder maps service errors to status codes; embedded by every handler.
type errorResponder struct {
	log *zap.Logger
}

func (e errorResponder) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
	}

	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		e.log.Debug(operation+" validation failed", fields...)
		utils.ResponseBadRequest(w, validationErr.Message, validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		e.log.Debug(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidOperation):
		e.log.Info(operation+" rejected", fields...)
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict):
		e.log.Info(operation+" failed - conflict", fields...)
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, context.Canceled):
		e.log.Warn(operation+" canceled by client", fields...)

	default:
		e.log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
