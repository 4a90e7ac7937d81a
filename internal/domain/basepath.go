package domain

// BasePath represents a registered filesystem root under which media files
// are tracked by relative path.
//
// Paths are stored absolute, with no trailing slash. No registered path may
// be a prefix (path-wise) of another registered path.
type BasePath struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	Description string `json:"description"`
}
