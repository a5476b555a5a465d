package wire

import (
	"net/http"

	"rental-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

type middlewareFunc = func(http.Handler) http.Handler

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler, auth, admin middlewareFunc) {
	r.Route("/api/genres", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", genreHandler.GetGenres)
		r.Get("/{id}", genreHandler.GetGenreByID)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", genreHandler.CreateGenre)
			r.Put("/{id}", genreHandler.UpdateGenre)

			// Delete needs an admin token
			r.With(admin).Delete("/{id}", genreHandler.DeleteGenre)
		})
	})
}

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler, auth, admin middlewareFunc) {
	r.Route("/api/customers", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", customerHandler.GetCustomers)
		r.Get("/{id}", customerHandler.GetCustomerByID)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", customerHandler.CreateCustomer)
			r.Put("/{id}", customerHandler.UpdateCustomer)
			r.With(admin).Delete("/{id}", customerHandler.DeleteCustomer)
		})
	})
}

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, auth, admin middlewareFunc) {
	r.Route("/api/movies", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", movieHandler.GetMovies)        // GET /api/movies
		r.Get("/{id}", movieHandler.GetMovieByID) // GET /api/movies/{id}

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", movieHandler.CreateMovie)                   // POST /api/movies
			r.Put("/{id}", movieHandler.UpdateMovie)                // PUT /api/movies/{id}
			r.With(admin).Delete("/{id}", movieHandler.DeleteMovie) // DELETE /api/movies/{id} (admin)
		})
	})
}
