// internal/repository/postgres/inquiry_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cprice-service/internal/domain/inquiry"
	xerrors "cprice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inquiryColumns = `
	ci.id, ci.customer_name, ci.customer_email, ci.customer_phone, ci.customer_region,
	ci.business_type, ci.origin, ci.destination,
	ci.cargo_description, ci.estimated_weight, ci.estimated_volume,
	ci.expected_ship_date, ci.additional_requirements,
	ci.status, ci.assigned_to, u.username AS assigned_to_name,
	ci.assigned_at, ci.auto_release_at, ci.created_at, ci.updated_at`

type InquiryRepository struct {
	db *pgxpool.Pool
}

func NewInquiryRepository(db *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func scanInquiry(row pgx.Row) (*inquiry.CustomerInquiry, error) {
	var i inquiry.CustomerInquiry
	err := row.Scan(
		&i.ID, &i.CustomerName, &i.CustomerEmail, &i.CustomerPhone, &i.CustomerRegion,
		&i.BusinessType, &i.Origin, &i.Destination,
		&i.CargoDescription, &i.EstimatedWeight, &i.EstimatedVolume,
		&i.ExpectedShipDate, &i.AdditionalRequirements,
		&i.Status, &i.AssignedTo, &i.AssignedToName,
		&i.AssignedAt, &i.AutoReleaseAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan inquiry: %w", err)
	}
	return &i, nil
}

// Create inserts a new pending inquiry from the public form.
func (r *InquiryRepository) Create(ctx context.Context, i *inquiry.CustomerInquiry) error {
	query := `
		INSERT INTO customer_inquiries (
			id, customer_name, customer_email, customer_phone, customer_region,
			business_type, origin, destination, cargo_description,
			estimated_weight, estimated_volume, expected_ship_date,
			additional_requirements, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		i.ID, i.CustomerName, i.CustomerEmail, i.CustomerPhone, i.CustomerRegion,
		i.BusinessType, i.Origin, i.Destination, i.CargoDescription,
		i.EstimatedWeight, i.EstimatedVolume, i.ExpectedShipDate,
		i.AdditionalRequirements, inquiry.StatusPending,
	).Scan(&i.CreatedAt, &i.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// FindByID retrieves an inquiry with the assignee username joined in.
func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*inquiry.CustomerInquiry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM customer_inquiries ci
		LEFT JOIN users u ON ci.assigned_to = u.id
		WHERE ci.id = $1
	`, inquiryColumns)

	return scanInquiry(r.db.QueryRow(ctx, query, id))
}

// List retrieves inquiries with filters. The caller's user id resolves the
// "me" assignment filter.
func (r *InquiryRepository) List(ctx context.Context, viewerID string, filters *inquiry.ListFilters) ([]inquiry.CustomerInquiry, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(ci.customer_name ILIKE $%d OR ci.customer_email ILIKE $%d OR ci.origin ILIKE $%d OR ci.destination ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ci.status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}

	if filters.BusinessType != "" {
		conditions = append(conditions, fmt.Sprintf("ci.business_type = $%d", argPos))
		args = append(args, filters.BusinessType)
		argPos++
	}

	if filters.Region != "" {
		conditions = append(conditions, fmt.Sprintf("ci.customer_region ILIKE $%d", argPos))
		args = append(args, "%"+filters.Region+"%")
		argPos++
	}

	switch filters.AssignedTo {
	case "":
	case "unassigned":
		conditions = append(conditions, "ci.assigned_to IS NULL")
	case "me":
		conditions = append(conditions, fmt.Sprintf("ci.assigned_to = $%d", argPos))
		args = append(args, viewerID)
		argPos++
	default:
		conditions = append(conditions, fmt.Sprintf("ci.assigned_to = $%d", argPos))
		args = append(args, filters.AssignedTo)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customer_inquiries ci WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	// Sort key allow-list; anything else falls back to created_at.
	sortColumn := "created_at"
	switch filters.SortBy {
	case "created_at", "customer_name", "status", "assigned_at":
		sortColumn = filters.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM customer_inquiries ci
		LEFT JOIN users u ON ci.assigned_to = u.id
		WHERE %s
		ORDER BY ci.%s %s
		LIMIT $%d OFFSET $%d
	`, inquiryColumns, whereClause, sortColumn, order, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []inquiry.CustomerInquiry{}
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, err
		}
		inquiries = append(inquiries, *i)
	}

	return inquiries, total, nil
}

// ClaimPending atomically assigns a pending inquiry to userID. The
// status='pending' predicate is part of the UPDATE itself, so concurrent
// claims resolve in the database: exactly one caller sees true.
func (r *InquiryRepository) ClaimPending(ctx context.Context, id, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE customer_inquiries
		SET status = $1, assigned_to = $2, assigned_at = $3,
		    auto_release_at = $4, updated_at = $3
		WHERE id = $5 AND status = $6
	`

	result, err := r.db.Exec(ctx, query,
		inquiry.StatusAssigned, userID, now, now.Add(inquiry.AutoReleaseAfter),
		id, inquiry.StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim inquiry: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Release returns an inquiry to the pool, clearing all assignment fields.
// Unconditional: releasing an already-pending inquiry is a no-op success.
func (r *InquiryRepository) Release(ctx context.Context, id string, now time.Time) error {
	query := `
		UPDATE customer_inquiries
		SET status = $1, assigned_to = NULL, assigned_at = NULL,
		    auto_release_at = NULL, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, inquiry.StatusPending, now, id)
	if err != nil {
		return fmt.Errorf("failed to release inquiry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus advances the lifecycle status without touching assignment.
func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status inquiry.Status, now time.Time) error {
	query := `UPDATE customer_inquiries SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, now, id)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Assign sets the assignee unconditionally, regardless of current status.
// Administrative override path; the pending-only guard lives in ClaimPending.
func (r *InquiryRepository) Assign(ctx context.Context, id, userID string, now time.Time) error {
	query := `
		UPDATE customer_inquiries
		SET status = $1, assigned_to = $2, assigned_at = $3,
		    auto_release_at = $4, updated_at = $3
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query,
		inquiry.StatusAssigned, userID, now, now.Add(inquiry.AutoReleaseAfter), id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign inquiry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ReleaseExpired resets every assigned inquiry whose holding period has
// elapsed, in one set-based statement. Returns the number of rows released.
func (r *InquiryRepository) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE customer_inquiries
		SET status = $1, assigned_to = NULL, assigned_at = NULL,
		    auto_release_at = NULL, updated_at = $2
		WHERE status = $3 AND auto_release_at <= $2
	`

	result, err := r.db.Exec(ctx, query, inquiry.StatusPending, now, inquiry.StatusAssigned)
	if err != nil {
		return 0, fmt.Errorf("failed to release expired inquiries: %w", err)
	}
	return result.RowsAffected(), nil
}

// ListPending returns the most recent unassigned inquiries.
func (r *InquiryRepository) ListPending(ctx context.Context, limit int) ([]inquiry.CustomerInquiry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM customer_inquiries ci
		LEFT JOIN users u ON ci.assigned_to = u.id
		WHERE ci.status = $1
		ORDER BY ci.created_at DESC
		LIMIT $2
	`, inquiryColumns)

	return r.queryMany(ctx, query, inquiry.StatusPending, limit)
}

// ListAssignedToOthers returns recently claimed inquiries held by users
// other than userID.
func (r *InquiryRepository) ListAssignedToOthers(ctx context.Context, userID string, limit int) ([]inquiry.CustomerInquiry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM customer_inquiries ci
		LEFT JOIN users u ON ci.assigned_to = u.id
		WHERE ci.status = $1 AND ci.assigned_to != $2
		ORDER BY ci.assigned_at DESC
		LIMIT $3
	`, inquiryColumns)

	return r.queryMany(ctx, query, inquiry.StatusAssigned, userID, limit)
}

// ListMine returns the caller's active inquiries (assigned or quoted).
func (r *InquiryRepository) ListMine(ctx context.Context, userID string, limit int) ([]inquiry.CustomerInquiry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM customer_inquiries ci
		LEFT JOIN users u ON ci.assigned_to = u.id
		WHERE ci.assigned_to = $1 AND ci.status IN ($2, $3)
		ORDER BY ci.assigned_at DESC
		LIMIT $4
	`, inquiryColumns)

	return r.queryMany(ctx, query, userID, inquiry.StatusAssigned, inquiry.StatusQuoted, limit)
}

// Count returns the total number of inquiries.
func (r *InquiryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_inquiries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of inquiries in the given status.
func (r *InquiryRepository) CountByStatus(ctx context.Context, status inquiry.Status) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_inquiries WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries by status: %w", err)
	}
	return count, nil
}

// CountAssignedTo returns the number of inquiries ever assigned to userID.
func (r *InquiryRepository) CountAssignedTo(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_inquiries WHERE assigned_to = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned inquiries: %w", err)
	}
	return count, nil
}

// CountByBusinessType returns the number of inquiries for a business-type code.
func (r *InquiryRepository) CountByBusinessType(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_inquiries WHERE business_type = $1`, code).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries by business type: %w", err)
	}
	return count, nil
}

func (r *InquiryRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]inquiry.CustomerInquiry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []inquiry.CustomerInquiry{}
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, *i)
	}
	return inquiries, nil
}
