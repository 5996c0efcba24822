// Package archive provides a SQLite-backed implementation of the
// imagestudio.Storage interface. Generated images are written into a single
// database file so a studio instance can keep its output across restarts
// without any external object store.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mhpenta/imagestudio"
)

// Archive implements imagestudio.Storage using SQLite.
type Archive struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Ensure Archive implements the interface.
var _ imagestudio.Storage = (*Archive)(nil)

// Open creates or opens an archive database at dbPath.
func Open(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{db: db}

	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return a, nil
}

func (a *Archive) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS images (
		id           TEXT PRIMARY KEY,
		path         TEXT NOT NULL UNIQUE,
		content_type TEXT NOT NULL,
		size         INTEGER NOT NULL,
		data         BLOB NOT NULL,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_images_created ON images(created_at);
	`

	_, err := a.db.Exec(schema)
	return err
}

// SaveFile stores image data under path and returns the URL it can be
// retrieved under. Saving to an existing path replaces the previous image.
func (a *Archive) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return "", fmt.Errorf("archive is closed")
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO images (id, path, content_type, size, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_type = excluded.content_type,
			size         = excluded.size,
			data         = excluded.data,
			created_at   = CURRENT_TIMESTAMP
	`, uuid.New().String(), path, contentType, len(data), data)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "archive://" + path, nil
}

// LoadFile reads back the image saved under path.
func (a *Archive) LoadFile(ctx context.Context, path string) ([]byte, string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return nil, "", fmt.Errorf("archive is closed")
	}

	var data []byte
	var contentType string
	err := a.db.QueryRowContext(ctx,
		`SELECT data, content_type FROM images WHERE path = ?`, path,
	).Scan(&data, &contentType)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load image %q: %w", path, err)
	}

	return data, contentType, nil
}

// Count returns the number of archived images.
func (a *Archive) Count(ctx context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return 0, fmt.Errorf("archive is closed")
	}

	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	return a.db.Close()
}
