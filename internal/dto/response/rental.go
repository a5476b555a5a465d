package response

import (
	"time"

	"rental-store/internal/data/entity"
)

type RentalCustomer struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	IsGold bool   `json:"isGold"`
	Phone  string `json:"phone"`
}

type RentalMovie struct {
	ID              string  `json:"_id"`
	Title           string  `json:"title"`
	DailyRentalRate float64 `json:"dailyRentalRate"`
}

type RentalResponse struct {
	ID           string         `json:"_id"`
	Customer     RentalCustomer `json:"customer"`
	Movie        RentalMovie    `json:"movie"`
	DateOut      time.Time      `json:"dateOut"`
	DateReturned *time.Time     `json:"dateReturned,omitempty"`
	RentalFee    *float64       `json:"rentalFee,omitempty"`
}

func RentalToResponse(rental *entity.Rental) RentalResponse {
	return RentalResponse{
		ID: rental.ID.Hex(),
		Customer: RentalCustomer{
			ID:     rental.Customer.ID.Hex(),
			Name:   rental.Customer.Name,
			IsGold: rental.Customer.IsGold,
			Phone:  rental.Customer.Phone,
		},
		Movie: RentalMovie{
			ID:              rental.Movie.ID.Hex(),
			Title:           rental.Movie.Title,
			DailyRentalRate: rental.Movie.DailyRentalRate,
		},
		DateOut:      rental.DateOut,
		DateReturned: rental.DateReturned,
		RentalFee:    rental.RentalFee,
	}
}

func RentalsToResponse(rentals []*entity.Rental) []RentalResponse {
	out := make([]RentalResponse, len(rentals))
	for i, rental := range rentals {
		out[i] = RentalToResponse(rental)
	}
	return out
}
