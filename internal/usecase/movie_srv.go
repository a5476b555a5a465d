package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental-store/internal/data/entity"
	"rental-store/internal/data/repository"
	"rental-store/internal/dto/request"
	"rental-store/internal/dto/response"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)
}

type movieService struct {
	repo  *repository.Repository // movies and the genres they point at
	clock clock
	log   *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(req); err != nil {
		return nil, err
	}

	genre, err := s.genre(ctx, req.GenreID)
	if err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		Base:            entity.NewBase(s.clock.now()),
		Title:           req.Title,
		GenreID:         genre.ID,
		NumberInStock:   *req.NumberInStock,
		DailyRentalRate: *req.DailyRentalRate,
	}
	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, invalidf("Invalid genre.")
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}
	movie.Genre = genre

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.Hex()),
		zap.String("title", movie.Title),
		zap.String("genre_id", genre.ID.Hex()),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	genre, err := s.genre(ctx, req.GenreID)
	if err != nil {
		return nil, err
	}

	movie.Title = req.Title
	movie.GenreID = genre.ID
	movie.Genre = genre
	movie.NumberInStock = *req.NumberInStock
	movie.DailyRentalRate = *req.DailyRentalRate
	movie.UpdatedAt = s.clock.now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, movieNotFound()
		case errors.Is(err, repository.ErrForeignKey):
			return nil, invalidf("Invalid genre.")
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movie.ID.Hex()))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// DeleteMovie keeps past rentals intact; they carry a snapshot of the movie.
func (s *movieService) DeleteMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, movieNotFound()
		}
		return nil, fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movie.ID.Hex()))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) find(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, movieNotFound()
	}
	return movie, nil
}

// genre resolves the genre a movie payload points at; an unknown one is the client's mistake.
func (s *movieService) genre(ctx context.Context, genreID string) (*entity.Genre, error) {
	id, err := bson.ObjectIDFromHex(genreID)
	if err != nil {
		return nil, invalidf("Invalid genre.")
	}

	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		s.log.Warn("Movie references unknown genre", zap.String("genre_id", genreID))
		return nil, invalidf("Invalid genre.")
	}
	return genre, nil
}

func movieNotFound() error {
	return notFoundf("The movie with the given ID was not found.")
}
