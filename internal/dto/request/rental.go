package request

// RentalRequest checks a movie out to a customer.
type RentalRequest struct {
	CustomerID string `json:"customerId" validate:"required,objectid"`
	MovieID    string `json:"movieId" validate:"required,objectid"`
}

// ReturnRequest closes the open rental of a customer/movie pair.
type ReturnRequest struct {
	CustomerID string `json:"customerId" validate:"required,objectid"`
	MovieID    string `json:"movieId" validate:"required,objectid"`
}
