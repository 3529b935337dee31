// Package sqlite provides a SQLite implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jwulff/basil-go/internal/domain"
	"github.com/jwulff/basil-go/internal/storage"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:", 1)
}

// NewFileStore creates a file-based SQLite store. Writers wait up to five
// seconds for a lock held by another process.
func NewFileStore(path string) (*Store, error) {
	return newStore(path+"?_pragma=busy_timeout(5000)", 0)
}

func newStore(dsn string, maxConns int) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" opens its own empty database.
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	domain.Logger().Debug("store opened", "dsn", dsn)
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Bitmap methods

// SaveBitmap inserts an asset or replaces the pixels of the asset with the
// same name. The stored ID and creation time of an existing asset are kept.
func (s *Store) SaveBitmap(ctx context.Context, asset *storage.Asset) error {
	if len(asset.Pixels) != asset.Width*asset.Height {
		return fmt.Errorf("asset %q: %d pixels for %dx%d", asset.Name, len(asset.Pixels), asset.Width, asset.Height)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bitmaps (id, name, width, height, pixels, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			pixels = excluded.pixels,
			updated_at = excluded.updated_at
	`, asset.ID, asset.Name, asset.Width, asset.Height, storage.EncodePixels(asset.Pixels), asset.CreatedAt, asset.UpdatedAt)
	return err
}

func (s *Store) GetBitmap(ctx context.Context, name string) (*storage.Asset, error) {
	var asset storage.Asset
	var blob []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, width, height, pixels, created_at, updated_at FROM bitmaps WHERE name = ?
	`, name).Scan(&asset.ID, &asset.Name, &asset.Width, &asset.Height, &blob, &asset.CreatedAt, &asset.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "bitmap", ID: name}
	}
	if err != nil {
		return nil, err
	}

	if asset.Pixels, err = storage.DecodePixels(blob); err != nil {
		return nil, fmt.Errorf("bitmap %q: %w", name, err)
	}
	asset.Size = int64(len(blob))
	return &asset, nil
}

// ListBitmaps returns asset metadata ordered by name, without pixel data.
func (s *Store) ListBitmaps(ctx context.Context) ([]*storage.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, width, height, length(pixels), created_at, updated_at
		FROM bitmaps ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*storage.Asset
	for rows.Next() {
		var asset storage.Asset
		if err := rows.Scan(&asset.ID, &asset.Name, &asset.Width, &asset.Height, &asset.Size, &asset.CreatedAt, &asset.UpdatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, &asset)
	}
	return assets, rows.Err()
}

func (s *Store) DeleteBitmap(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bitmaps WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound{Resource: "bitmap", ID: name}
	}
	return nil
}

// Font methods

func (s *Store) SaveFont(ctx context.Context, font *storage.FontRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO fonts (name, atlas, glyph_width, glyph_height, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, font.Name, font.Atlas, font.GlyphWidth, font.GlyphHeight, font.CreatedAt)
	return err
}

func (s *Store) GetFont(ctx context.Context, name string) (*storage.FontRecord, error) {
	var font storage.FontRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT name, atlas, glyph_width, glyph_height, created_at FROM fonts WHERE name = ?
	`, name).Scan(&font.Name, &font.Atlas, &font.GlyphWidth, &font.GlyphHeight, &font.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "font", ID: name}
	}
	if err != nil {
		return nil, err
	}
	return &font, nil
}

// Frame cache methods

func (s *Store) CacheFrame(ctx context.Context, frame *storage.CachedFrame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO frame_cache (id, scene, width, height, frame_data, generated_at)
		VALUES (1, ?, ?, ?, ?, ?)
	`, frame.Scene, frame.Width, frame.Height, frame.FrameData, frame.GeneratedAt)
	return err
}

func (s *Store) GetCachedFrame(ctx context.Context) (*storage.CachedFrame, error) {
	var frame storage.CachedFrame
	err := s.db.QueryRowContext(ctx, `
		SELECT scene, width, height, frame_data, generated_at FROM frame_cache WHERE id = 1
	`).Scan(&frame.Scene, &frame.Width, &frame.Height, &frame.FrameData, &frame.GeneratedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "frame_cache", ID: "1"}
	}
	if err != nil {
		return nil, err
	}
	return &frame, nil
}

// Config methods

func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound{Resource: "config", ID: key}
	}
	return value, err
}

func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO config (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now())
	return err
}

func (s *Store) DeleteConfig(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM config WHERE key = ?", key)
	return err
}

// Verify interface compliance
var _ storage.Store = (*Store)(nil)
