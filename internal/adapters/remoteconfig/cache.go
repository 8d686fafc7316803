package remoteconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	perr "peloton/internal/platform/errors"
)

// Cache persists the last activated document per namespace in a local
// SQLite file, so a cold start with no network can still serve the
// last-known payload
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS documents (
	namespace  TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	etag       TEXT NOT NULL DEFAULT '',
	parameters TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);`

// OpenCache opens (and if needed initializes) the cache file
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCache, "open cache")
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeCache, "init cache schema")
	}
	return &Cache{db: db}, nil
}

// Put upserts the document for a namespace
func (c *Cache) Put(ctx context.Context, namespace string, doc Document) error {
	params, err := json.Marshal(doc.Parameters)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeCache, "encode parameters")
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO documents (namespace, version, etag, parameters, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			version = excluded.version,
			etag = excluded.etag,
			parameters = excluded.parameters,
			fetched_at = excluded.fetched_at`,
		namespace, doc.Version, doc.ETag, string(params), doc.FetchedAt.Unix())
	return perr.WrapIf(err, perr.ErrorCodeCache, "write document")
}

// Get returns the cached document for a namespace, or nil when absent
func (c *Cache) Get(ctx context.Context, namespace string) (*Document, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT version, etag, parameters, fetched_at
		FROM documents WHERE namespace = ?`, namespace)

	var doc Document
	var params string
	var fetchedAt int64
	err := row.Scan(&doc.Version, &doc.ETag, &params, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCache, "read document")
	}
	if err := json.Unmarshal([]byte(params), &doc.Parameters); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCache, "decode parameters")
	}
	doc.FetchedAt = time.Unix(fetchedAt, 0).UTC()
	return &doc, nil
}

// Close closes the underlying database
func (c *Cache) Close() error { return c.db.Close() }
