package request

type GenreRequest struct {
	Name string `json:"name" validate:"required,genre_name"`
}
