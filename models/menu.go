package models

// MenuItem represents a menu entry owned by the remote gateway. The console
// creates, edits and deletes items only through the gateway.
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// MenuListResponse is the gateway's paged menu listing.
type MenuListResponse struct {
	Items []MenuItem `json:"items"`
	Total int        `json:"total"`
}

// CategoryRename is the payload for renaming a category. A category's name is
// its key, so a rename is a key change; cascading to menu items is the
// gateway's responsibility.
type CategoryRename struct {
	OldCategory string `json:"old_category"`
	NewCategory string `json:"new_category"`
}
