package imagestudio

import (
	"errors"
	"testing"
)

func TestTextToImageRequest_Parts(t *testing.T) {
	parts, err := TextToImageRequest{Prompt: "  a red bicycle  "}.Parts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].Text != "a red bicycle" {
		t.Errorf("expected trimmed prompt, got %q", parts[0].Text)
	}
	if parts[0].Image != nil {
		t.Error("text part should carry no image")
	}

	_, err = TextToImageRequest{Prompt: "   "}.Parts()
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestEditRequest_Parts(t *testing.T) {
	img := InputImage{Data: []byte("bytes"), MIMEType: "image/jpeg"}

	parts, err := EditRequest{Image: img, Instructions: "make it blue"}.Parts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Text != "make it blue" {
		t.Errorf("instruction text must come first, got %q", parts[0].Text)
	}
	if parts[1].Image == nil || parts[1].Image.MIMEType != "image/jpeg" {
		t.Error("image part must follow the instruction text")
	}

	_, err = EditRequest{Image: img, Instructions: ""}.Parts()
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}

	_, err = EditRequest{Image: InputImage{}, Instructions: "make it blue"}.Parts()
	if !errors.Is(err, ErrEmptyImageData) {
		t.Errorf("expected ErrEmptyImageData, got %v", err)
	}
}

func TestComposeRequest_Parts(t *testing.T) {
	images := []InputImage{
		{Data: []byte("one"), MIMEType: "image/png"},
		{Data: []byte("two"), MIMEType: "image/webp"},
		{Data: []byte("three"), MIMEType: "image/png"},
	}

	parts, err := ComposeRequest{Images: images, Instructions: "combine them"}.Parts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(parts))
	}
	if parts[0].Text != "combine them" {
		t.Errorf("instruction text must come first, got %q", parts[0].Text)
	}
	for i, want := range []string{"one", "two", "three"} {
		got := parts[i+1].Image
		if got == nil || string(got.Data) != want {
			t.Errorf("image %d out of order", i)
		}
	}

	_, err = ComposeRequest{Images: nil, Instructions: "combine them"}.Parts()
	if !errors.Is(err, ErrEmptyImageData) {
		t.Errorf("expected ErrEmptyImageData, got %v", err)
	}

	_, err = ComposeRequest{Images: make([]InputImage, MaxInputImages+1), Instructions: "combine"}.Parts()
	if !errors.Is(err, ErrTooManyImages) {
		t.Errorf("expected ErrTooManyImages, got %v", err)
	}
}
