package imagestudio

import "testing"

func TestGetMIMEType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.png", "image/png"},
		{"out.jpg", "image/jpeg"},
		{"out.JPEG", "image/jpeg"},
		{"out.webp", "image/webp"},
		{"out.gif", "image/gif"},
		{"out.bin", DefaultMIMEType},
		{"out", DefaultMIMEType},
	}

	for _, tt := range tests {
		if got := GetMIMEType(tt.path); got != tt.want {
			t.Errorf("GetMIMEType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
