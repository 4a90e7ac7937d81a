package domain

// Tag represents a user-defined tag scoped to a category.
// The (Name, CategoryID) pair is unique.
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CategoryID  int64  `json:"category_id"`
	Description string `json:"description"`
}

// MediaTag represents the many-to-many relationship between media files and
// tags. The (MediaID, TagID) pair is unique: a media file cannot carry the
// same tag twice. An association blocks deletion of its media file.
type MediaTag struct {
	ID      int64 `json:"id"`
	MediaID int64 `json:"media_id"`
	TagID   int64 `json:"tag_id"`
}
