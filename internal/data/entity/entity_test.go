package entity

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Input rules live on the request types; stored records carry column mappings only.
func TestEntitiesCarryNoValidationRules(t *testing.T) {
	for _, v := range []any{User{}, Genre{}, Customer{}, Movie{}, Rental{}, Base{}} {
		typ := reflect.TypeOf(v)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			_, ok := field.Tag.Lookup("validate")
			assert.False(t, ok, "%s.%s has a validate tag", typ.Name(), field.Name)
		}
	}
}
