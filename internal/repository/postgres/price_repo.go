// internal/repository/postgres/price_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cprice-service/internal/domain/price"
	xerrors "cprice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const priceColumns = `
	p.id, p.business_type_id, p.origin, p.destination, p.price_type,
	p.price, p.currency, p.unit, p.valid_from, p.valid_to, p.description,
	p.is_active, p.created_by,
	bt.name AS business_type_name, bt.code AS business_type_code,
	u.username AS created_by_name,
	p.created_at, p.updated_at`

type PriceRepository struct {
	db *pgxpool.Pool
}

func NewPriceRepository(db *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{db: db}
}

func scanPrice(row pgx.Row) (*price.Price, error) {
	var p price.Price
	err := row.Scan(
		&p.ID, &p.BusinessTypeID, &p.Origin, &p.Destination, &p.PriceType,
		&p.Price, &p.Currency, &p.Unit, &p.ValidFrom, &p.ValidTo, &p.Description,
		&p.IsActive, &p.CreatedBy,
		&p.BusinessTypeName, &p.BusinessTypeCode, &p.CreatedByName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan price: %w", err)
	}
	return &p, nil
}

// Create inserts a new price record.
func (r *PriceRepository) Create(ctx context.Context, p *price.Price) error {
	query := `
		INSERT INTO prices (
			id, business_type_id, origin, destination, price_type, price,
			currency, unit, valid_from, valid_to, description, is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.BusinessTypeID, p.Origin, p.Destination, p.PriceType, p.Price,
		p.Currency, p.Unit, p.ValidFrom, p.ValidTo, p.Description, p.IsActive, p.CreatedBy,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create price: %w", err)
	}
	return nil
}

// FindByID retrieves an active price with joined display fields.
func (r *PriceRepository) FindByID(ctx context.Context, id string) (*price.Price, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM prices p
		LEFT JOIN business_types bt ON p.business_type_id = bt.id
		LEFT JOIN users u ON p.created_by = u.id
		WHERE p.id = $1 AND p.is_active = TRUE
	`, priceColumns)

	return scanPrice(r.db.QueryRow(ctx, query, id))
}

// Update mutates a price record.
func (r *PriceRepository) Update(ctx context.Context, p *price.Price) error {
	query := `
		UPDATE prices
		SET business_type_id = $1, origin = $2, destination = $3, price_type = $4,
		    price = $5, currency = $6, unit = $7, valid_from = $8, valid_to = $9,
		    description = $10, updated_at = $11
		WHERE id = $12 AND is_active = TRUE
	`

	result, err := r.db.Exec(ctx, query,
		p.BusinessTypeID, p.Origin, p.Destination, p.PriceType,
		p.Price, p.Currency, p.Unit, p.ValidFrom, p.ValidTo,
		p.Description, time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// SoftDelete deactivates a price.
func (r *PriceRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE prices SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`

	result, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// CountActive counts active prices, for dashboard stats.
func (r *PriceRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM prices WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count prices: %w", err)
	}
	return count, nil
}

// CountByBusinessType counts active prices for a business type.
func (r *PriceRepository) CountByBusinessType(ctx context.Context, businessTypeID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM prices WHERE business_type_id = $1 AND is_active = TRUE`,
		businessTypeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count prices by business type: %w", err)
	}
	return count, nil
}

// List retrieves active prices with filters.
func (r *PriceRepository) List(ctx context.Context, filters *price.ListFilters) ([]price.Price, int64, error) {
	conditions := []string{"p.is_active = TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.origin ILIKE $%d OR p.destination ILIKE $%d OR p.description ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	if filters.BusinessType != "" {
		conditions = append(conditions, fmt.Sprintf("p.business_type_id = $%d", argPos))
		args = append(args, filters.BusinessType)
		argPos++
	}

	if filters.Origin != "" {
		conditions = append(conditions, fmt.Sprintf("p.origin ILIKE $%d", argPos))
		args = append(args, "%"+filters.Origin+"%")
		argPos++
	}

	if filters.Destination != "" {
		conditions = append(conditions, fmt.Sprintf("p.destination ILIKE $%d", argPos))
		args = append(args, "%"+filters.Destination+"%")
		argPos++
	}

	if filters.PriceType != "" {
		conditions = append(conditions, fmt.Sprintf("p.price_type = $%d", argPos))
		args = append(args, filters.PriceType)
		argPos++
	}

	sortColumn := "created_at"
	switch filters.SortBy {
	case "created_at", "price", "origin", "destination", "valid_from":
		sortColumn = filters.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	return r.listWhere(ctx, conditions, args, argPos, sortColumn, order, filters.Page, filters.PageSize)
}

// SearchPublic retrieves public, unexpired prices for the marketing site.
// Business type is matched by code here, not id.
func (r *PriceRepository) SearchPublic(ctx context.Context, filters *price.PublicSearchFilters) ([]price.Price, int64, error) {
	conditions := []string{
		"p.is_active = TRUE",
		"p.price_type = 'public'",
		"(p.valid_to IS NULL OR p.valid_to >= CURRENT_DATE::text)",
	}
	args := []interface{}{}
	argPos := 1

	if filters.BusinessType != "" {
		conditions = append(conditions, fmt.Sprintf("bt.code = $%d", argPos))
		args = append(args, filters.BusinessType)
		argPos++
	}

	if filters.Origin != "" {
		conditions = append(conditions, fmt.Sprintf("p.origin ILIKE $%d", argPos))
		args = append(args, "%"+filters.Origin+"%")
		argPos++
	}

	if filters.Destination != "" {
		conditions = append(conditions, fmt.Sprintf("p.destination ILIKE $%d", argPos))
		args = append(args, "%"+filters.Destination+"%")
		argPos++
	}

	return r.listWhere(ctx, conditions, args, argPos, "created_at", "DESC", filters.Page, filters.PageSize)
}

func (r *PriceRepository) listWhere(
	ctx context.Context,
	conditions []string,
	args []interface{},
	argPos int,
	sortColumn, order string,
	page, pageSize int,
) ([]price.Price, int64, error) {
	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM prices p
		LEFT JOIN business_types bt ON p.business_type_id = bt.id
		WHERE %s
	`, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count prices: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM prices p
		LEFT JOIN business_types bt ON p.business_type_id = bt.id
		LEFT JOIN users u ON p.created_by = u.id
		WHERE %s
		ORDER BY p.%s %s
		LIMIT $%d OFFSET $%d
	`, priceColumns, whereClause, sortColumn, order, argPos, argPos+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	prices := []price.Price{}
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, 0, err
		}
		prices = append(prices, *p)
	}

	return prices, total, nil
}
