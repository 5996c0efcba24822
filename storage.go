package imagestudio

import (
	"context"
	"path/filepath"
	"strings"
)

// Storage is an interface for persisting generated images. Implementations
// can wrap any backing store (local files, SQLite, object storage) with this
// interface. Conversation state is never persisted; only image payloads are.
type Storage interface {
	// SaveFile saves image data to storage and returns a URL the image can
	// be retrieved under. The path should include the full object path
	// (e.g., "images/2024/01/output.png").
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved image.
type StorageResult struct {
	// URL is where the image can be accessed
	URL string

	// Path is the storage path/key where the image was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// SaveToStorage saves a generated image to storage under basePath plus the
// extension matching its media type.
func SaveToStorage(
	ctx context.Context,
	storage Storage,
	img *GeneratedImage,
	basePath string) (StorageResult, error) {

	if storage == nil {
		return StorageResult{}, ErrStorageNotConfigured
	}

	path := basePath + "." + extensionFromMIME(img.MIMEType)

	url, err := storage.SaveFile(ctx, img.Data, path, img.MIMEType)
	if err != nil {
		return StorageResult{}, err
	}

	return StorageResult{
		URL:  url,
		Path: path,
		Size: len(img.Data),
	}, nil
}

// GetMIMEType maps a file extension to an image MIME type.
func GetMIMEType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return DefaultMIMEType
	}
}

// extensionFromMIME returns a file extension for common image MIME types.
func extensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
