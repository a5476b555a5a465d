package wire

import (
	"rental-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRental(
	r chi.Router,
	rentalHandler *adaptor.RentalHandler,
	returnHandler *adaptor.ReturnHandler,
	auth middlewareFunc,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rentals", rentalHandler.GetRentals)
	r.Get("/api/rentals/{id}", rentalHandler.GetRentalByID)

	// ==================== PROTECTED ROUTES ====================
	// Checkout and return both move stock, so both need a signed-in user
	r.With(auth).Post("/api/rentals", rentalHandler.CreateRental)
	r.With(auth).Post("/api/returns", returnHandler.ProcessReturn)
}
