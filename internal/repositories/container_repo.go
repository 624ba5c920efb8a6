package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vertifarm/internal/common"
	"vertifarm/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories need. pgxmock
// satisfies it too, which keeps the SQL testable without a live server.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type ContainerRepository interface {
	List(ctx context.Context, filter *models.ContainerFilter) ([]*models.Container, int, error)
	GetByID(ctx context.Context, id string) (*models.Container, error)
	GetByName(ctx context.Context, name string) (*models.Container, error)
	Create(ctx context.Context, req *models.ContainerCreate) (*models.Container, error)
	Update(ctx context.Context, id string, patch *models.ContainerUpdate) (*models.Container, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByType(ctx context.Context, typeFilter string) (map[string]int, error)
}

type containerRepo struct {
	db Database
}

func NewContainerRepository(db Database) ContainerRepository {
	return &containerRepo{db: db}
}

const containerSelect = `
	SELECT c.id, c.name, c.type, c.tenant, c.purpose, c.status, c.location_id, c.seed_types, c.notes,
	       c.has_alert, c.shadow_service_enabled, c.ecosystem_connected, c.created, c.modified,
	       l.city, l.country, l.address
	FROM containers c
	LEFT JOIN locations l ON c.location_id = l.id
`

// rowQuerier lets the scan helpers run against the pool or an open transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func scanContainer(row pgx.Row) (*models.Container, error) {
	c := &models.Container{}
	var seedJSON []byte
	var city, country, address *string
	err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Tenant, &c.Purpose, &c.Status, &c.LocationID, &seedJSON, &c.Notes,
		&c.HasAlert, &c.ShadowServiceEnabled, &c.EcosystemConnected, &c.Created, &c.Modified,
		&city, &country, &address)
	if err != nil {
		return nil, err
	}
	if len(seedJSON) > 0 {
		if err := json.Unmarshal(seedJSON, &c.SeedTypes); err != nil {
			return nil, fmt.Errorf("decode seed_types for container %s: %w", c.ID, err)
		}
	}
	if c.LocationID != nil && city != nil && country != nil {
		c.Location = &models.Location{
			ID:      *c.LocationID,
			City:    *city,
			Country: *country,
			Address: address,
		}
	}
	return c, nil
}

// List returns one page of containers plus the total count over the same
// filter set. Filters are conjunctive; search is a case-insensitive substring
// disjunction over name, tenant, purpose and status. Ordering is most recently
// modified first.
func (r *containerRepo) List(ctx context.Context, filter *models.ContainerFilter) ([]*models.Container, int, error) {
	whereClause := ""
	args := []interface{}{}
	argN := 0

	addCondition := func(cond string) {
		if whereClause == "" {
			whereClause = " WHERE " + cond
		} else {
			whereClause += " AND " + cond
		}
	}

	if filter.Search != "" {
		argN++
		addCondition(fmt.Sprintf(`(
			c.name ILIKE $%d OR
			c.tenant ILIKE $%d OR
			c.purpose ILIKE $%d OR
			c.status ILIKE $%d
		)`, argN, argN, argN, argN))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.TypeFilter != "" {
		argN++
		addCondition(fmt.Sprintf(`c.type = $%d`, argN))
		args = append(args, filter.TypeFilter)
	}
	if filter.TenantFilter != "" {
		argN++
		addCondition(fmt.Sprintf(`c.tenant = $%d`, argN))
		args = append(args, filter.TenantFilter)
	}
	if filter.PurposeFilter != "" {
		argN++
		addCondition(fmt.Sprintf(`c.purpose = $%d`, argN))
		args = append(args, filter.PurposeFilter)
	}
	if filter.StatusFilter != "" {
		argN++
		addCondition(fmt.Sprintf(`c.status = $%d`, argN))
		args = append(args, filter.StatusFilter)
	}
	if filter.HasAlerts != nil {
		argN++
		addCondition(fmt.Sprintf(`c.has_alert = $%d`, argN))
		args = append(args, *filter.HasAlerts)
	}

	// Total is computed over the same filters, independent of the page window.
	var total int
	countQuery := `SELECT COUNT(*) FROM containers c` + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := containerSelect + whereClause + fmt.Sprintf(` ORDER BY c.modified DESC LIMIT $%d OFFSET $%d`, argN+1, argN+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var containers []*models.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, 0, err
		}
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return containers, total, nil
}

func (r *containerRepo) GetByID(ctx context.Context, id string) (*models.Container, error) {
	return r.get(ctx, r.db, id)
}

func (r *containerRepo) get(ctx context.Context, q rowQuerier, id string) (*models.Container, error) {
	row := q.QueryRow(ctx, containerSelect+` WHERE c.id = $1`, id)
	c, err := scanContainer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrContainerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByName returns (nil, nil) when no container carries the name.
func (r *containerRepo) GetByName(ctx context.Context, name string) (*models.Container, error) {
	row := r.db.QueryRow(ctx, containerSelect+` WHERE c.name = $1`, name)
	c, err := scanContainer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create persists a new container. A location payload is only honored for
// physical containers; its row is inserted first and referenced from the
// container row, all inside one transaction. The unique name constraint is
// the final arbiter against concurrent creators.
func (r *containerRepo) Create(ctx context.Context, req *models.ContainerCreate) (*models.Container, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var locationID *uuid.UUID
	var location *models.Location
	if req.Type == models.ContainerTypePhysical && req.Location != nil {
		id := uuid.New()
		_, err = tx.Exec(ctx,
			`INSERT INTO locations (id, city, country, address) VALUES ($1, $2, $3, $4)`,
			id, req.Location.City, req.Location.Country, req.Location.Address)
		if err != nil {
			return nil, err
		}
		locationID = &id
		location = &models.Location{
			ID:      id,
			City:    req.Location.City,
			Country: req.Location.Country,
			Address: req.Location.Address,
		}
	}

	now := time.Now().UTC()
	c := &models.Container{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Type:                 req.Type,
		Tenant:               req.Tenant,
		Purpose:              req.Purpose,
		Status:               models.ContainerStatusCreated,
		LocationID:           locationID,
		SeedTypes:            req.SeedTypes,
		Notes:                req.Notes,
		ShadowServiceEnabled: req.Settings.ShadowServiceEnabled,
		EcosystemConnected:   len(req.Settings.Ecosystem) > 0,
		Created:              now,
		Modified:             now,
		Location:             location,
	}

	seedJSON, err := json.Marshal(c.SeedTypes)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO containers (id, name, type, tenant, purpose, status, location_id, seed_types, notes,
		                        has_alert, shadow_service_enabled, ecosystem_connected, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, c.ID, c.Name, c.Type, c.Tenant, c.Purpose, c.Status, c.LocationID, seedJSON, c.Notes,
		c.HasAlert, c.ShadowServiceEnabled, c.EcosystemConnected, c.Created, c.Modified)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrDuplicateName
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Update merges a partial payload into the stored row. Absent fields keep
// their stored values. The location payload mutates the attached location row
// in place, or creates one when the physical container has none; for virtual
// containers it is accepted and dropped.
func (r *containerRepo) Update(ctx context.Context, id string, patch *models.ContainerUpdate) (*models.Container, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	c, err := r.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if patch.Location.Set && patch.Location.Valid && c.Type == models.ContainerTypePhysical {
		loc := patch.Location.Value
		if c.LocationID != nil {
			_, err = tx.Exec(ctx,
				`UPDATE locations SET city = $1, country = $2, address = $3 WHERE id = $4`,
				loc.City, loc.Country, loc.Address, *c.LocationID)
			if err != nil {
				return nil, err
			}
			c.Location = &models.Location{ID: *c.LocationID, City: loc.City, Country: loc.Country, Address: loc.Address}
		} else {
			locID := uuid.New()
			_, err = tx.Exec(ctx,
				`INSERT INTO locations (id, city, country, address) VALUES ($1, $2, $3, $4)`,
				locID, loc.City, loc.Country, loc.Address)
			if err != nil {
				return nil, err
			}
			c.LocationID = &locID
			c.Location = &models.Location{ID: locID, City: loc.City, Country: loc.Country, Address: loc.Address}
		}
	}

	if patch.SeedTypes.Set {
		if patch.SeedTypes.Valid {
			c.SeedTypes = patch.SeedTypes.Value
		} else {
			c.SeedTypes = nil
		}
	}

	if patch.Settings.Set && patch.Settings.Valid {
		s := patch.Settings.Value
		if s.ShadowServiceEnabled.Set && s.ShadowServiceEnabled.Valid {
			c.ShadowServiceEnabled = s.ShadowServiceEnabled.Value
		}
		// Recompute only when the key is present; an absent ecosystem key
		// keeps the stored flag.
		if s.Ecosystem.Set {
			c.EcosystemConnected = s.Ecosystem.Valid && len(s.Ecosystem.Value) > 0
		}
	}

	if patch.Tenant.Set && patch.Tenant.Valid {
		c.Tenant = patch.Tenant.Value
	}
	if patch.Purpose.Set && patch.Purpose.Valid {
		c.Purpose = patch.Purpose.Value
	}
	if patch.Status.Set && patch.Status.Valid {
		c.Status = patch.Status.Value
	}
	if patch.Notes.Set {
		if patch.Notes.Valid {
			notes := patch.Notes.Value
			c.Notes = &notes
		} else {
			c.Notes = nil
		}
	}

	c.Modified = time.Now().UTC()

	seedJSON, err := json.Marshal(c.SeedTypes)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE containers
		SET tenant = $1, purpose = $2, status = $3, location_id = $4, seed_types = $5, notes = $6,
		    shadow_service_enabled = $7, ecosystem_connected = $8, modified = $9
		WHERE id = $10
	`, c.Tenant, c.Purpose, c.Status, c.LocationID, seedJSON, c.Notes,
		c.ShadowServiceEnabled, c.EcosystemConnected, c.Modified, c.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the container row and reports whether one existed. The
// attached location row and any dependent crop/tray/panel rows are left in
// place.
func (r *containerRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM containers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountByType returns container counts grouped by type, optionally restricted
// to one type.
func (r *containerRepo) CountByType(ctx context.Context, typeFilter string) (map[string]int, error) {
	query := `SELECT type, COUNT(*) FROM containers`
	args := []interface{}{}
	if typeFilter != "" {
		query += ` WHERE type = $1`
		args = append(args, typeFilter)
	}
	query += ` GROUP BY type`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var containerType string
		var count int
		if err := rows.Scan(&containerType, &count); err != nil {
			return nil, err
		}
		counts[containerType] = count
	}
	return counts, rows.Err()
}
