package response

import "rental-store/internal/data/entity"

type MovieResponse struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Genre           GenreResponse `json:"genre"`
	NumberInStock   int           `json:"numberInStock"`
	DailyRentalRate float64       `json:"dailyRentalRate"`
}

// MovieToResponse embeds the genre when the movie was read with it, otherwise only its id.
func MovieToResponse(movie *entity.Movie) MovieResponse {
	genre := GenreResponse{ID: movie.GenreID.Hex()}
	if movie.Genre != nil {
		genre = GenreToResponse(movie.Genre)
	}

	return MovieResponse{
		ID:              movie.ID.Hex(),
		Title:           movie.Title,
		Genre:           genre,
		NumberInStock:   movie.NumberInStock,
		DailyRentalRate: movie.DailyRentalRate,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = MovieToResponse(movie)
	}
	return out
}
