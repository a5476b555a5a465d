package request

type MovieRequest struct {
	Title           string   `json:"title" validate:"required,movie_title"`
	GenreID         string   `json:"genreId" validate:"required,objectid"`
	NumberInStock   *int     `json:"numberInStock" validate:"required,movie_stock"`
	DailyRentalRate *float64 `json:"dailyRentalRate" validate:"required,movie_daily_rate"`
}
