package farm

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines pond data access.
type Repository interface {
	ListPonds(ctx context.Context) ([]Pond, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListPonds(ctx context.Context) ([]Pond, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pond_id, name, area_sqm, depth_m, active, created_at
		FROM ponds
		ORDER BY name, pond_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ponds []Pond
	for rows.Next() {
		var p Pond
		if err := rows.Scan(&p.ID, &p.Name, &p.AreaSqM, &p.DepthM, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		ponds = append(ponds, p)
	}
	return ponds, rows.Err()
}
