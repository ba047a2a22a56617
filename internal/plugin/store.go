package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darkden-lab/argus/extensions/internal/routing"
)

type ExtensionRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	Metadata   Metadata        `json:"metadata"`
	Navigation Navigation      `json:"navigation"`
	Routes     []routing.Entry `json:"routes"`
	LoadID     uuid.UUID       `json:"load_id"`
	Enabled    bool            `json:"enabled"`
	LoadedAt   time.Time       `json:"loaded_at"`
}

type ExtensionStore struct {
	pool *pgxpool.Pool
}

func NewExtensionStore(pool *pgxpool.Pool) *ExtensionStore {
	return &ExtensionStore{pool: pool}
}

func (s *ExtensionStore) SaveExtension(ctx context.Context, rec ExtensionRecord) error {
	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	navJSON, err := json.Marshal(rec.Navigation)
	if err != nil {
		return fmt.Errorf("failed to marshal navigation: %w", err)
	}
	routesJSON, err := json.Marshal(rec.Routes)
	if err != nil {
		return fmt.Errorf("failed to marshal routes: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO extensions (id, name, version, metadata, navigation, routes, load_id, enabled, loaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET name = $2, version = $3, metadata = $4,
		   navigation = $5, routes = $6, load_id = $7, enabled = $8, loaded_at = $9`,
		rec.ID, rec.Name, rec.Version, metadataJSON, navJSON, routesJSON, rec.LoadID, rec.Enabled, rec.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save extension: %w", err)
	}
	return nil
}

func (s *ExtensionStore) GetExtension(ctx context.Context, id string) (*ExtensionRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, version, metadata, navigation, routes, load_id, enabled, loaded_at
		 FROM extensions WHERE id = $1`,
		id,
	)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("extension not found: %w", err)
	}
	return rec, nil
}

func (s *ExtensionStore) ListExtensions(ctx context.Context) ([]*ExtensionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, version, metadata, navigation, routes, load_id, enabled, loaded_at
		 FROM extensions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list extensions: %w", err)
	}
	defer rows.Close()

	var recs []*ExtensionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extension: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *ExtensionStore) UpdateStatus(ctx context.Context, id string, enabled bool) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE extensions SET enabled = $2 WHERE id = $1`,
		id, enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to update extension status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*ExtensionRecord, error) {
	var r ExtensionRecord
	var metadataJSON, navJSON, routesJSON []byte
	if err := row.Scan(&r.ID, &r.Name, &r.Version, &metadataJSON, &navJSON, &routesJSON,
		&r.LoadID, &r.Enabled, &r.LoadedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metadataJSON, &r.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	if err := json.Unmarshal(navJSON, &r.Navigation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal navigation: %w", err)
	}
	if err := json.Unmarshal(routesJSON, &r.Routes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal routes: %w", err)
	}
	return &r, nil
}
