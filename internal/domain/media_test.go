package domain

import "testing"

func TestMediaTypeRoundTrip(t *testing.T) {
	for _, mt := range []MediaType{MediaTypeUnknown, MediaTypeImage, MediaTypeVideo, MediaTypeSound} {
		if got := ParseMediaType(mt.String()); got != mt {
			t.Errorf("round-trip of %v yielded %v", mt, got)
		}
	}
}

func TestMediaTypeString(t *testing.T) {
	tests := []struct {
		mt   MediaType
		want string
	}{
		{MediaTypeUnknown, "unknown"},
		{MediaTypeImage, "image"},
		{MediaTypeVideo, "video"},
		{MediaTypeSound, "sound"},
		{MediaType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mt.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.mt, got, tt.want)
		}
	}
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		input string
		want  MediaType
	}{
		{"image", MediaTypeImage},
		{"video", MediaTypeVideo},
		{"sound", MediaTypeSound},
		{"unknown", MediaTypeUnknown},
		// Legacy rows may hold an empty or arbitrary value.
		{"", MediaTypeUnknown},
		{"raster", MediaTypeUnknown},
		{"Image", MediaTypeUnknown},
	}
	for _, tt := range tests {
		if got := ParseMediaType(tt.input); got != tt.want {
			t.Errorf("ParseMediaType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
