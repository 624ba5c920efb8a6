package repositories

import (
	"context"
)

// TenantRepository reads tenant labels off the containers table. Tenants are
// not a normalized entity; the distinct owner strings are the source of truth.
type TenantRepository interface {
	ListNames(ctx context.Context) ([]string, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepository(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT tenant FROM containers ORDER BY tenant`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
