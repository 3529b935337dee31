package sqlite

// schema contains the database schema DDL.
const schema = `
-- Bitmap assets; pixels are little-endian packed ARGB32 values
CREATE TABLE IF NOT EXISTS bitmaps (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    width INTEGER NOT NULL CHECK (width > 0),
    height INTEGER NOT NULL CHECK (height > 0),
    pixels BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Fonts backed by a stored atlas bitmap
CREATE TABLE IF NOT EXISTS fonts (
    name TEXT PRIMARY KEY,
    atlas TEXT NOT NULL,
    glyph_width INTEGER NOT NULL CHECK (glyph_width > 0),
    glyph_height INTEGER NOT NULL CHECK (glyph_height > 0),
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Configuration
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Frame cache
CREATE TABLE IF NOT EXISTS frame_cache (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    scene TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    frame_data BLOB NOT NULL,
    generated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
