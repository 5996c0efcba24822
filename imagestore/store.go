// Package imagestore holds the rendered form of generated images in memory
// and serves them under opaque references. It backs the raw-blob download
// route and the refinement transcript's image references.
//
// The store is bounded: entries are evicted by total byte cost and by TTL,
// and callers release references they no longer need, so blobs cannot
// accumulate without limit across many turns.
package imagestore

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"

	"github.com/mhpenta/imagestudio"
)

const (
	// DefaultMaxBytes bounds the total bytes held in memory (256MB).
	DefaultMaxBytes = 256 << 20

	// DefaultTTL is how long an unreleased blob survives.
	DefaultTTL = time.Hour
)

// Store is a ristretto-backed rendered-image store.
type Store struct {
	cache *ristretto.Cache[string, imagestudio.GeneratedImage]
	ttl   time.Duration
}

// Ensure Store implements the interface.
var _ imagestudio.RenderedImageStore = (*Store)(nil)

// New creates a Store bounded to maxBytes of image data, expiring entries
// after ttl. Zero values select the defaults.
func New(maxBytes int64, ttl time.Duration) (*Store, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, imagestudio.GeneratedImage]{
		NumCounters: 1e5,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Store{cache: cache, ttl: ttl}, nil
}

// Put stores an image and returns an opaque reference to it. The reference
// is unique per call even for identical bytes.
func (s *Store) Put(img imagestudio.GeneratedImage) (string, error) {
	ref := uuid.New().String()
	s.cache.SetWithTTL(ref, img, int64(len(img.Data)), s.ttl)
	// Sets are buffered; wait so the blob is readable as soon as the
	// reference is handed out.
	s.cache.Wait()
	return ref, nil
}

// Get resolves a reference. The second return is false once the reference
// has been released or expired.
func (s *Store) Get(ref string) (imagestudio.GeneratedImage, bool) {
	return s.cache.Get(ref)
}

// Release discards a stored image. Releasing an unknown reference is a no-op.
func (s *Store) Release(ref string) {
	s.cache.Del(ref)
}

// Close releases the store's resources.
func (s *Store) Close() {
	s.cache.Close()
}
