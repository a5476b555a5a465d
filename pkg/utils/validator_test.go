package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type boundsSample struct {
	Name  string `json:"name" validate:"required,genre_name"`
	Phone string `json:"phone" validate:"required,customer_phone"`
	Stock *int   `json:"numberInStock" validate:"required,movie_stock"`
	Ref   string `json:"genreId" validate:"required,objectid"`
}

func TestValidateStruct(t *testing.T) {
	stock := func(v int) *int { return &v }

	tests := []struct {
		name   string
		input  boundsSample
		fields map[string]string
	}{
		{
			name:  "valid",
			input: boundsSample{Name: "genre1", Phone: "12345", Stock: stock(0), Ref: "65f1c2a9e4b0a1b2c3d4e5f6"},
		},
		{
			name:  "everything wrong",
			input: boundsSample{Name: "1234", Phone: "12a45", Stock: stock(256), Ref: "1"},
			fields: map[string]string{
				"name":          "Minimum length is 5",
				"phone":         "Must contain digits only",
				"numberInStock": "Maximum value is 255",
				"genreId":       "Must be a valid 24-character hex id",
			},
		},
		{
			name:  "missing",
			input: boundsSample{Name: strings.Repeat("a", 51), Phone: "1"},
			fields: map[string]string{
				"name":          "Maximum length is 50",
				"numberInStock": "This field is required",
				"genreId":       "This field is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.input)
			if tt.fields == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.fields, errs)
		})
	}
}

func TestFormatValidationErrors_SortedByField(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"title": "b", "genreId": "a"})
	assert.Equal(t, "genreId: a; title: b", got)
}

func TestIsObjectIDHex(t *testing.T) {
	assert.True(t, IsObjectIDHex("61f313a80f8e83e9d482c800"))
	assert.False(t, IsObjectIDHex("1234"))
	assert.False(t, IsObjectIDHex("61f313a80f8e83e9d482c80z"))
}
