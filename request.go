package imagestudio

import (
	"strings"
)

// ContentPart is one atomic unit of model input: prompt text or an inline
// image. Exactly one of the two fields is set. Part order is significant;
// the model expects instruction text before imagery.
type ContentPart struct {
	Text  string
	Image *InputImage
}

// TextPart returns a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Text: text}
}

// ImagePart returns an inline-image content part.
func ImagePart(img InputImage) ContentPart {
	return ContentPart{Image: &img}
}

// Request is one of the three generation call shapes. Parts validates the
// request and produces the ordered content-part sequence for the model.
// Validation happens here, before any network or model access: an invalid
// request never reaches the invoker.
type Request interface {
	Parts() ([]ContentPart, error)
}

// TextToImageRequest generates an image from a text prompt alone.
type TextToImageRequest struct {
	Prompt string
}

// Parts returns [text(prompt)].
func (r TextToImageRequest) Parts() ([]ContentPart, error) {
	if err := ValidatePrompt(r.Prompt); err != nil {
		return nil, err
	}
	return []ContentPart{TextPart(strings.TrimSpace(r.Prompt))}, nil
}

// EditRequest modifies a single image according to an instruction.
type EditRequest struct {
	Image        InputImage
	Instructions string
}

// Parts returns [text(instructions), image].
func (r EditRequest) Parts() ([]ContentPart, error) {
	if err := ValidatePrompt(r.Instructions); err != nil {
		return nil, err
	}
	if err := ValidateInputImage(r.Image); err != nil {
		return nil, err
	}
	return []ContentPart{
		TextPart(strings.TrimSpace(r.Instructions)),
		ImagePart(r.Image),
	}, nil
}

// ComposeRequest combines several images under one instruction. The images
// are sent in order in a single call; no per-image sub-requests are issued.
type ComposeRequest struct {
	Images       []InputImage
	Instructions string
}

// Parts returns [text(instructions), image0, image1, ...].
func (r ComposeRequest) Parts() ([]ContentPart, error) {
	if err := ValidatePrompt(r.Instructions); err != nil {
		return nil, err
	}
	if err := ValidateInputImages(r.Images); err != nil {
		return nil, err
	}
	parts := make([]ContentPart, 0, len(r.Images)+1)
	parts = append(parts, TextPart(strings.TrimSpace(r.Instructions)))
	for _, img := range r.Images {
		parts = append(parts, ImagePart(img))
	}
	return parts, nil
}
