package adaptor

import (
	"net/http"

	"rental-store/internal/dto/request"
	"rental-store/internal/usecase"
	"rental-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RentalHandler struct {
	errorResponder
	service usecase.RentalService
}

func NewRentalHandler(service usecase.RentalService, log *zap.Logger) *RentalHandler {
	return &RentalHandler{
		errorResponder: errorResponder{log: log.With(zap.String("handler", "rental"))},
		service:        service,
	}
}

// GetRentals handles GET /api/rentals, newest first
func (h *RentalHandler) GetRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.service.GetRentals(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get rentals")
		return
	}
	utils.ResponseSuccess(w, rentals)
}

func (h *RentalHandler) GetRentalByID(w http.ResponseWriter, r *http.Request) {
	rental, err := h.service.GetRentalByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "get rental by ID")
		return
	}
	utils.ResponseSuccess(w, rental)
}

// CreateRental handles POST /api/rentals
func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req request.RentalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.service.CreateRental(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create rental")
		return
	}
	utils.ResponseSuccess(w, rental)
}

type ReturnHandler struct {
	errorResponder
	service usecase.ReturnService
}

func NewReturnHandler(service usecase.ReturnService, log *zap.Logger) *ReturnHandler {
	return &ReturnHandler{
		errorResponder: errorResponder{log: log.With(zap.String("handler", "return"))},
		service:        service,
	}
}

// ProcessReturn handles POST /api/returns
func (h *ReturnHandler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	var req request.ReturnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.service.ProcessReturn(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "process return")
		return
	}
	utils.ResponseSuccess(w, rental)
}
