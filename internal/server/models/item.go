package models

// Item is a trackable good owned by exactly one user. QuantityUnits and
// Category are optional free-form attributes.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	QuantityUnits *string `json:"quantityUnits,omitempty"`
	Category      *string `json:"category,omitempty"`
	UserID        string  `json:"userId"`
}
