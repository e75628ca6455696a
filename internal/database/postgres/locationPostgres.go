package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/eventhub/internal/entity"
)

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (name, address, city, state, country, zip_code, capacity, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		location.Name,
		location.Address,
		location.City,
		location.State,
		location.Country,
		location.ZipCode,
		location.Capacity,
		location.Description,
		location.IsActive,
		now,
		now,
	).Scan(&location.ID)

	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	location.CreatedAt = now
	location.UpdatedAt = now
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	query := `
		SELECT id, name, address, city, state, country, zip_code, capacity, description, is_active, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var location entity.Location
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&location.ID,
		&location.Name,
		&location.Address,
		&location.City,
		&location.State,
		&location.Country,
		&location.ZipCode,
		&location.Capacity,
		&location.Description,
		&location.IsActive,
		&location.CreatedAt,
		&location.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &location, nil
}

func (r *locationRepository) GetAll(ctx context.Context) ([]*entity.Location, error) {
	query := `
		SELECT id, name, address, city, state, country, zip_code, capacity, description, is_active, created_at, updated_at
		FROM locations
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all locations: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var location entity.Location
		err := rows.Scan(
			&location.ID,
			&location.Name,
			&location.Address,
			&location.City,
			&location.State,
			&location.Country,
			&location.ZipCode,
			&location.Capacity,
			&location.Description,
			&location.IsActive,
			&location.CreatedAt,
			&location.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, &location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

func (r *locationRepository) Update(ctx context.Context, location *entity.Location) error {
	query := `
		UPDATE locations
		SET name = $1, address = $2, city = $3, state = $4, country = $5, zip_code = $6,
		    capacity = $7, description = $8, is_active = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		location.Name,
		location.Address,
		location.City,
		location.State,
		location.Country,
		location.ZipCode,
		location.Capacity,
		location.Description,
		location.IsActive,
		time.Now(),
		location.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrLocationNotFound
	}

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM locations WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrLocationNotFound
	}

	return nil
}
