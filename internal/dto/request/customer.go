package request

import (
	"encoding/json"
	"errors"
	"strings"
)

type CustomerRequest struct {
	Name   string      `json:"name" validate:"required,customer_name"`
	IsGold *bool       `json:"isGold" validate:"required"`
	Phone  PhoneNumber `json:"phone" validate:"required,customer_phone"`
}

// PhoneNumber accepts both 5551234 and "5551234"; digits are checked by validation.
type PhoneNumber string

func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PhoneNumber(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("phone must be a number or a string of digits")
	}
	*p = PhoneNumber(n.String())
	return nil
}
