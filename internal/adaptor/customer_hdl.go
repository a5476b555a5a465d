package adaptor

import (
	"net/http"

	"rental-store/internal/dto/request"
	"rental-store/internal/usecase"
	"rental-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	errorResponder
	service usecase.CustomerService
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		errorResponder: errorResponder{log: log.With(zap.String("handler", "customer"))},
		service:        service,
	}
}

func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.GetCustomers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get customers")
		return
	}
	utils.ResponseSuccess(w, customers)
}

func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.GetCustomerByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "get customer by ID")
		return
	}
	utils.ResponseSuccess(w, customer)
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create customer")
		return
	}
	utils.ResponseSuccess(w, customer)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update customer")
		return
	}
	utils.ResponseSuccess(w, customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "delete customer")
		return
	}
	utils.ResponseSuccess(w, customer)
}
