package response

import "rental-store/internal/data/entity"

type CustomerResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	IsGold bool   `json:"isGold"`
	Phone  string `json:"phone"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:     customer.ID.Hex(),
		Name:   customer.Name,
		IsGold: customer.IsGold,
		Phone:  customer.Phone,
	}
}

func CustomersToResponse(customers []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		out[i] = CustomerToResponse(customer)
	}
	return out
}
