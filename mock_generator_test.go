package imagestudio

import (
	"context"
	"fmt"
)

// MockImageGenerator is a mock implementation of ImageGenerator.
type MockImageGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string, config *GenerateConfig) (*GeneratedImage, error)
	EditFunc     func(ctx context.Context, image InputImage, instructions string, config *GenerateConfig) (*GeneratedImage, error)
	ComposeFunc  func(ctx context.Context, images []InputImage, instructions string, config *GenerateConfig) (*GeneratedImage, error)
	ModelsFunc   func() []ModelInfo
	CloseFunc    func() error
}

func (m *MockImageGenerator) Generate(ctx context.Context, prompt string, config *GenerateConfig) (*GeneratedImage, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, config)
	}
	return &GeneratedImage{Data: []byte("generated"), MIMEType: "image/png"}, nil
}

func (m *MockImageGenerator) Edit(ctx context.Context, image InputImage, instructions string, config *GenerateConfig) (*GeneratedImage, error) {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, image, instructions, config)
	}
	return &GeneratedImage{Data: []byte("edited"), MIMEType: "image/png"}, nil
}

func (m *MockImageGenerator) Compose(ctx context.Context, images []InputImage, instructions string, config *GenerateConfig) (*GeneratedImage, error) {
	if m.ComposeFunc != nil {
		return m.ComposeFunc(ctx, images, instructions, config)
	}
	return &GeneratedImage{Data: []byte("composed"), MIMEType: "image/png"}, nil
}

func (m *MockImageGenerator) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{}
}

func (m *MockImageGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// mapImageStore is an in-memory RenderedImageStore with release counting.
type mapImageStore struct {
	next     int
	images   map[string]GeneratedImage
	released map[string]int
}

func newMapImageStore() *mapImageStore {
	return &mapImageStore{
		images:   make(map[string]GeneratedImage),
		released: make(map[string]int),
	}
}

func (s *mapImageStore) Put(img GeneratedImage) (string, error) {
	s.next++
	ref := fmt.Sprintf("ref-%d", s.next)
	s.images[ref] = img
	return ref, nil
}

func (s *mapImageStore) Get(ref string) (GeneratedImage, bool) {
	img, ok := s.images[ref]
	return img, ok
}

func (s *mapImageStore) Release(ref string) {
	if _, ok := s.images[ref]; ok {
		delete(s.images, ref)
		s.released[ref]++
	}
}
