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
	"rental-store/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// UserService covers registration, login and the signed-in profile.
type UserService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID bson.ObjectID) (*response.ProfileResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   utils.TokenManager
	clock    clock
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, tokens utils.TokenManager, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Email must be free
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, invalidf("User already registered.")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user
	user := &entity.User{
		ID:           bson.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		CreatedAt:    s.clock.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalidf("User already registered.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 5. Sign in right away
	token, err := s.tokens.Generate(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
	)

	return &response.AuthResponse{
		User:  response.UserToResponse(user),
		Token: token,
	}, nil
}

// Login answers the same way for an unknown email and a wrong password.
func (s *userService) Login(ctx context.Context, req *request.LoginRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(req); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return "", invalidf("Invalid email or password.")
	}

	token, err := s.tokens.Generate(user.ID, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	return token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID bson.ObjectID) (*response.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, notFoundf("User not found.")
	}

	profile := response.UserToProfile(user)
	return &profile, nil
}
