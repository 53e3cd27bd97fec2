// internal/repository/postgres/business_type_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cprice-service/internal/domain/businesstype"
	xerrors "cprice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BusinessTypeRepository struct {
	db *pgxpool.Pool
}

func NewBusinessTypeRepository(db *pgxpool.Pool) *BusinessTypeRepository {
	return &BusinessTypeRepository{db: db}
}

func scanBusinessType(row pgx.Row) (*businesstype.BusinessType, error) {
	var bt businesstype.BusinessType
	err := row.Scan(
		&bt.ID, &bt.Name, &bt.Code, &bt.Description,
		&bt.IsActive, &bt.CreatedAt, &bt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan business type: %w", err)
	}
	return &bt, nil
}

// Create inserts a new business type.
func (r *BusinessTypeRepository) Create(ctx context.Context, bt *businesstype.BusinessType) error {
	query := `
		INSERT INTO business_types (id, name, code, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		bt.ID, bt.Name, bt.Code, bt.Description, bt.IsActive,
	).Scan(&bt.CreatedAt, &bt.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create business type: %w", err)
	}
	return nil
}

// FindByID retrieves a business type by id.
func (r *BusinessTypeRepository) FindByID(ctx context.Context, id string) (*businesstype.BusinessType, error) {
	query := `
		SELECT id, name, code, description, is_active, created_at, updated_at
		FROM business_types
		WHERE id = $1
	`
	return scanBusinessType(r.db.QueryRow(ctx, query, id))
}

// ExistsByCode reports whether another business type already uses the code.
// excludeID is skipped, so updates can keep their own code.
func (r *BusinessTypeRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM business_types WHERE code = $1 AND id != $2)`
	if err := r.db.QueryRow(ctx, query, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check business type code: %w", err)
	}
	return exists, nil
}

// Update mutates a business type.
func (r *BusinessTypeRepository) Update(ctx context.Context, bt *businesstype.BusinessType) error {
	query := `
		UPDATE business_types
		SET name = $1, code = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query,
		bt.Name, bt.Code, bt.Description, bt.IsActive, time.Now(), bt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a business type. Callers must check referencing rows first.
func (r *BusinessTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM business_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves business types with filters.
func (r *BusinessTypeRepository) List(ctx context.Context, filters *businesstype.ListFilters) ([]businesstype.BusinessType, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM business_types WHERE %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count business types: %w", err)
	}

	sortColumn := "created_at"
	switch filters.SortBy {
	case "created_at", "name", "code":
		sortColumn = filters.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, name, code, description, is_active, created_at, updated_at
		FROM business_types
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, order, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list business types: %w", err)
	}
	defer rows.Close()

	types := []businesstype.BusinessType{}
	for rows.Next() {
		bt, err := scanBusinessType(rows)
		if err != nil {
			return nil, 0, err
		}
		types = append(types, *bt)
	}

	return types, total, nil
}

// ListActive retrieves all active business types for public dropdowns.
func (r *BusinessTypeRepository) ListActive(ctx context.Context) ([]businesstype.BusinessType, error) {
	query := `
		SELECT id, name, code, description, is_active, created_at, updated_at
		FROM business_types
		WHERE is_active = TRUE
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active business types: %w", err)
	}
	defer rows.Close()

	types := []businesstype.BusinessType{}
	for rows.Next() {
		bt, err := scanBusinessType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *bt)
	}

	return types, nil
}
