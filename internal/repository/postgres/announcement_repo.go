// internal/repository/postgres/announcement_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cprice-service/internal/domain/announcement"
	xerrors "cprice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const announcementColumns = `
	a.id, a.title, a.content, a.priority, a.is_active, a.created_by,
	u.username AS created_by_name, a.created_at, a.updated_at`

type AnnouncementRepository struct {
	db *pgxpool.Pool
}

func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func scanAnnouncement(row pgx.Row) (*announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Priority, &a.IsActive, &a.CreatedBy,
		&a.CreatedByName, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan announcement: %w", err)
	}
	return &a, nil
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	query := `
		INSERT INTO announcements (id, title, content, priority, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.ID, a.Title, a.Content, a.Priority, a.IsActive, a.CreatedBy,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

// FindByID retrieves an announcement by id.
func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*announcement.Announcement, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM announcements a
		LEFT JOIN users u ON a.created_by = u.id
		WHERE a.id = $1
	`, announcementColumns)

	return scanAnnouncement(r.db.QueryRow(ctx, query, id))
}

// Update mutates an announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, a *announcement.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, content = $2, priority = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query,
		a.Title, a.Content, a.Priority, a.IsActive, time.Now(), a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateStatusBatch activates or deactivates a set of announcements in one
// statement and reports how many rows changed.
func (r *AnnouncementRepository) UpdateStatusBatch(ctx context.Context, ids []string, isActive bool) (int64, error) {
	query := `
		UPDATE announcements
		SET is_active = $1, updated_at = $2
		WHERE id = ANY($3)
	`

	result, err := r.db.Exec(ctx, query, isActive, time.Now(), pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to batch update announcements: %w", err)
	}
	return result.RowsAffected(), nil
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves announcements with filters, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, filters *announcement.ListFilters) ([]announcement.Announcement, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	if filters.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("a.priority = $%d", argPos))
		args = append(args, filters.Priority)
		argPos++
	}

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("a.is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM announcements a WHERE %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	sortColumn := "created_at"
	switch filters.SortBy {
	case "created_at", "title", "priority":
		sortColumn = filters.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM announcements a
		LEFT JOIN users u ON a.created_by = u.id
		WHERE %s
		ORDER BY a.%s %s
		LIMIT $%d OFFSET $%d
	`, announcementColumns, whereClause, sortColumn, order, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	items := []announcement.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *a)
	}

	return items, total, nil
}

// ListActive retrieves the newest active announcements, high priority first.
func (r *AnnouncementRepository) ListActive(ctx context.Context, limit int) ([]announcement.Announcement, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM announcements a
		LEFT JOIN users u ON a.created_by = u.id
		WHERE a.is_active = TRUE
		ORDER BY
			CASE a.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
			a.created_at DESC
		LIMIT $1
	`, announcementColumns)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active announcements: %w", err)
	}
	defer rows.Close()

	items := []announcement.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}

	return items, nil
}
