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

type CustomerService interface {
	GetCustomers(ctx context.Context) ([]response.CustomerResponse, error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) (*response.CustomerResponse, error)
}

type customerService struct {
	repo  repository.CustomerRepository
	clock clock
	log   *zap.Logger
}

func NewCustomerService(repo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) GetCustomers(ctx context.Context) ([]response.CustomerResponse, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get customers: %w", err)
	}
	return response.CustomersToResponse(customers), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Base:   entity.NewBase(s.clock.now()),
		Name:   req.Name,
		IsGold: *req.IsGold,
		Phone:  string(req.Phone),
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created", zap.String("customer_id", customer.ID.Hex()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.IsGold = *req.IsGold
	customer.Phone = string(req.Phone)
	customer.UpdatedAt = s.clock.now()

	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customerNotFound()
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.log.Info("Customer updated", zap.String("customer_id", customer.ID.Hex()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

// DeleteCustomer leaves rentals alone: they hold their own copy of the customer.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, customer.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customerNotFound()
		}
		return nil, fmt.Errorf("delete customer: %w", err)
	}

	s.log.Info("Customer deleted", zap.String("customer_id", customer.ID.Hex()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) find(ctx context.Context, customerID string) (*entity.Customer, error) {
	id, err := parseID(customerID, "customer")
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, customerNotFound()
	}
	return customer, nil
}

func customerNotFound() error {
	return notFoundf("The customer with the given ID was not found.")
}
