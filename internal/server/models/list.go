package models

// List is a named collection owned by exactly one user. Items are attached
// through ListItem rows rather than embedded.
type List struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}
