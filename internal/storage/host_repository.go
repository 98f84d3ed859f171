package storage

import (
	"context"

	"github.com/vitorhrds/schedly/internal/model"
	"github.com/vitorhrds/schedly/libs/db"
)

type HostRepository struct {
	pool *db.Pool
}

func NewHostRepository(pool *db.Pool) *HostRepository {
	return &HostRepository{pool: pool}
}

func (r *HostRepository) Create(ctx context.Context, host model.Host) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hosts (id, name, username)
		VALUES ($1, $2, $3)
	`, host.ID, host.Name, host.Username)
	return err
}

func (r *HostRepository) GetByUsername(ctx context.Context, username string) (model.Host, error) {
	var host model.Host
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, username, created_at
		FROM hosts
		WHERE username = $1
	`, username).Scan(&host.ID, &host.Name, &host.Username, &host.CreatedAt)
	if err != nil {
		return model.Host{}, err
	}
	return host, nil
}

func (r *HostRepository) GetByID(ctx context.Context, id string) (model.Host, error) {
	var host model.Host
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, username, created_at
		FROM hosts
		WHERE id = $1
	`, id).Scan(&host.ID, &host.Name, &host.Username, &host.CreatedAt)
	if err != nil {
		return model.Host{}, err
	}
	return host, nil
}
