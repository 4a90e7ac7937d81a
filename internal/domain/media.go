package domain

// MediaFile represents a single media file discovered under a base path.
// The (BasePathID, RelativePath) pair is unique.
type MediaFile struct {
	ID int64 `json:"id"`
	// RelativePath is the location of the file relative to its base path,
	// with no leading or trailing slash.
	RelativePath string `json:"relative_path"`
	BasePathID   int64  `json:"base_path_id"`
	// Width and Height are set for images and videos only.
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
	// Size is the file size in kB.
	Size float64 `json:"size"`
	// Mark is a user rating from 1 to 10, if set.
	Mark        *int      `json:"mark,omitempty"`
	Description string    `json:"description"`
	MediaType   MediaType `json:"media_type"`
}

// MediaType classifies a media file.
type MediaType int

const (
	// MediaTypeUnknown is the fallback for unclassified or unrecognized files.
	MediaTypeUnknown MediaType = iota
	MediaTypeImage
	MediaTypeVideo
	MediaTypeSound
)

// String returns the stored representation of the media type.
// Unknown serializes to the literal "unknown" sentinel so that it survives a
// round-trip through storage.
func (mt MediaType) String() string {
	switch mt {
	case MediaTypeImage:
		return "image"
	case MediaTypeVideo:
		return "video"
	case MediaTypeSound:
		return "sound"
	default:
		return "unknown"
	}
}

// ParseMediaType maps a stored string back to a MediaType.
// Anything unrecognized (including the empty string written by older
// versions) maps to MediaTypeUnknown.
func ParseMediaType(s string) MediaType {
	switch s {
	case "image":
		return MediaTypeImage
	case "video":
		return MediaTypeVideo
	case "sound":
		return MediaTypeSound
	default:
		return MediaTypeUnknown
	}
}
