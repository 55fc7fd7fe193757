package models

// ListItem associates one item with one list and carries per-pairing state.
// The pair (ListID, ItemID) is unique. A list item may join a list and an
// item that belong to different users; visibility is controlled by list
// ownership at query time.
type ListItem struct {
	ID        string `json:"id"`
	Quantity  *int   `json:"quantity,omitempty"`
	Completed bool   `json:"completed"`
	ListID    string `json:"listId"`
	ItemID    string `json:"itemId"`
}
