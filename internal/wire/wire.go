package wire

import (
	"rental-store/internal/adaptor"
	"rental-store/internal/data/repository"
	"rental-store/internal/usecase"
	"rental-store/pkg/middleware"
	"rental-store/pkg/rabbitmq"
	"rental-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes from the shared dependencies.
func Wiring(
	repo *repository.Repository,
	tokens utils.TokenManager,
	publisher rabbitmq.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, tokens, publisher, config, logger)
	handler := adaptor.NewHandler(service, repo, logger)

	return &App{
		Router:  setupRouter(handler, tokens, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	tokens utils.TokenManager,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSAllowedOrigins))

	auth := middleware.Auth(tokens, logger)
	admin := middleware.Admin(logger)

	// Apply routes
	wireUser(r, handler.User, auth)
	wireGenre(r, handler.Genre, auth, admin)
	wireCustomer(r, handler.Customer, auth, admin)
	wireMovie(r, handler.Movie, auth, admin)
	wireRental(r, handler.Rental, handler.Return, auth)

	r.Get("/health", handler.Health.Check)

	return r
}
