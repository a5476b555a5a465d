package entity

type Customer struct {
	Base
	Name   string `db:"name"`
	IsGold bool   `db:"is_gold"`
	Phone  string `db:"phone"`
}

// Snapshot copies the fields a rental keeps about its customer.
func (c *Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{
		ID:     c.ID,
		Name:   c.Name,
		IsGold: c.IsGold,
		Phone:  c.Phone,
	}
}
