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

	"go.uber.org/zap"
)

type GenreService interface {
	GetGenres(ctx context.Context) ([]response.GenreResponse, error)
	GetGenreByID(ctx context.Context, genreID string) (*response.GenreResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, genreID string) (*response.GenreResponse, error)
}

type genreService struct {
	repo  repository.GenreRepository
	clock clock
	log   *zap.Logger
}

func NewGenreService(repo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) GetGenreByID(ctx context.Context, genreID string) (*response.GenreResponse, error) {
	genre, err := s.find(ctx, genreID)
	if err != nil {
		return nil, err
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	genre := &entity.Genre{
		Base: entity.NewBase(s.clock.now()),
		Name: req.Name,
	}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created",
		zap.String("genre_id", genre.ID.Hex()),
		zap.String("name", genre.Name),
	)

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*response.GenreResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	genre, err := s.find(ctx, genreID)
	if err != nil {
		return nil, err
	}

	genre.Name = req.Name
	genre.UpdatedAt = s.clock.now()

	if err := s.repo.Update(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, genreNotFound()
		}
		return nil, fmt.Errorf("update genre: %w", err)
	}

	s.log.Info("Genre updated", zap.String("genre_id", genre.ID.Hex()))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, genreID string) (*response.GenreResponse, error) {
	genre, err := s.find(ctx, genreID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, genre.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, genreNotFound()
		case errors.Is(err, repository.ErrForeignKey):
			return nil, conflictf("The genre is still used by movies.")
		}
		return nil, fmt.Errorf("delete genre: %w", err)
	}

	s.log.Info("Genre deleted", zap.String("genre_id", genre.ID.Hex()))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) find(ctx context.Context, genreID string) (*entity.Genre, error) {
	id, err := parseID(genreID, "genre")
	if err != nil {
		return nil, err
	}

	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		return nil, genreNotFound()
	}
	return genre, nil
}

func genreNotFound() error {
	return notFoundf("The genre with the given ID was not found.")
}
