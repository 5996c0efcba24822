package imagestudio

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultMIMEType is assumed whenever the model omits a media type.
const DefaultMIMEType = "image/png"

// InputImage represents an image input for edit and compose operations.
type InputImage struct {
	// Data is the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/jpeg", "image/png")
	MIMEType string
}

// GeneratedImage is the result of one generation call: the extracted image
// bytes and their media type. It is created per call and owned by the caller;
// nothing retains it after the call returns.
type GeneratedImage struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image
	MIMEType string
}

// AsInput converts a generated result into the input representation used to
// seed the next refinement turn. The conversion is fallible: the model may
// hand back a media type the request path does not accept, in which case the
// error wraps ErrLineageConversion and the caller keeps its previous base.
func (img GeneratedImage) AsInput() (InputImage, error) {
	in := InputImage{Data: img.Data, MIMEType: img.MIMEType}
	if in.MIMEType == "" {
		in.MIMEType = DefaultMIMEType
	}
	if err := ValidateInputImage(in); err != nil {
		return InputImage{}, fmt.Errorf("%w: %v", ErrLineageConversion, err)
	}
	return in, nil
}

// DataURL renders the image as an RFC 2397 data URL, the inline form carried
// in the JSON success responses.
func (img GeneratedImage) DataURL() string {
	mime := img.MIMEType
	if mime == "" {
		mime = DefaultMIMEType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ParseDataURL decodes a base64 data URL back into an image. Used when a
// result from one mode is handed to another as a starting point.
func ParseDataURL(s string) (GeneratedImage, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return GeneratedImage{}, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return GeneratedImage{}, fmt.Errorf("malformed data URL")
	}
	mime, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return GeneratedImage{}, fmt.Errorf("unsupported data URL encoding")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return GeneratedImage{}, fmt.Errorf("invalid base64: %w", err)
	}
	if mime == "" {
		mime = DefaultMIMEType
	}
	return GeneratedImage{Data: data, MIMEType: mime}, nil
}
