package domain

// Category represents a tag category: the upper level of the two-level tag
// taxonomy. Every tag belongs to exactly one category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Color is a display color as six lowercase hex digits, e.g. "ff8800".
	Color       string `json:"color"`
	Description string `json:"description"`
}
