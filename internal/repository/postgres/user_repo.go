// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cprice-service/internal/domain/user"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/pkg/permission"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername retrieves an active user by username, for login.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE username = $1 AND is_active = TRUE
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT id, username, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// ExistsActive reports whether an active user with the given id exists.
// Used to validate reassignment targets.
func (r *UserRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_active = TRUE)`
	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// ExistsByUsernameOrEmail checks uniqueness before user creation.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// Permissions loads the grant list for a user. Grants are loaded per login
// and embedded in the token.
func (r *UserRepository) Permissions(ctx context.Context, userID string) ([]permission.Grant, error) {
	query := `
		SELECT p.module, p.action
		FROM user_permissions up
		JOIN permissions p ON up.permission_id = p.id
		WHERE up.user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	defer rows.Close()

	grants := []permission.Grant{}
	for rows.Next() {
		var g permission.Grant
		if err := rows.Scan(&g.Module, &g.Action); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, nil
}

// PermissionDefinitions returns the global permission catalogue.
func (r *UserRepository) PermissionDefinitions(ctx context.Context) ([]user.PermissionDefinition, error) {
	query := `SELECT id, module, action FROM permissions ORDER BY module, action`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permission definitions: %w", err)
	}
	defer rows.Close()

	defs := []user.PermissionDefinition{}
	for rows.Next() {
		var d user.PermissionDefinition
		if err := rows.Scan(&d.ID, &d.Module, &d.Action); err != nil {
			return nil, fmt.Errorf("failed to scan permission definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Create inserts a user and its permission grants in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *user.User, permissionIDs []string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (id, username, email, password_hash, role, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		for _, pid := range permissionIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO user_permissions (user_id, permission_id) VALUES ($1, $2)`,
				u.ID, pid,
			)
			if err != nil {
				return fmt.Errorf("failed to grant permission %s: %w", pid, err)
			}
		}
		return nil
	})
}

// Update mutates user fields and, when permissionIDs is non-nil, replaces
// the grant set.
func (r *UserRepository) Update(ctx context.Context, u *user.User, permissionIDs []string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET email = $1, role = $2, is_active = $3, updated_at = $4
			WHERE id = $5
		`
		result, err := tx.Exec(ctx, query, u.Email, u.Role, u.IsActive, time.Now(), u.ID)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if result.RowsAffected() == 0 {
			return xerrors.ErrNotFound
		}

		if permissionIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1`, u.ID); err != nil {
			return fmt.Errorf("failed to clear permissions: %w", err)
		}
		for _, pid := range permissionIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO user_permissions (user_id, permission_id) VALUES ($1, $2)`,
				u.ID, pid,
			)
			if err != nil {
				return fmt.Errorf("failed to grant permission %s: %w", pid, err)
			}
		}
		return nil
	})
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// SetActive toggles the active flag (soft deactivation).
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set active flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves users with filters.
func (r *UserRepository) List(ctx context.Context, filters *user.ListFilters) ([]user.User, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(username ILIKE $%d OR email ILIKE $%d)", argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	if filters.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argPos))
		args = append(args, filters.Role)
		argPos++
	}

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sortColumn := "created_at"
	switch filters.SortBy {
	case "created_at", "username", "email", "role":
		sortColumn = filters.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, order, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, total, nil
}
