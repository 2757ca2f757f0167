package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsersRepository manages external user identities and their roles. Users are
// owned by an outside identity provider; rows here exist only as foreign-key
// targets and role holders.
type UsersRepository struct {
	pool *pgxpool.Pool
}

// Ensure provisions a user row on first sight so rating and bookmark writes
// satisfy their foreign keys.
func (r *UsersRepository) Ensure(ctx context.Context, userID string) error {
	return ensureUser(ctx, r.pool, userID)
}

// GrantRole gives the user a role, provisioning the user row if needed.
// Granting an already-held role is a no-op.
func (r *UsersRepository) GrantRole(ctx context.Context, userID, role string) error {
	if err := ensureUser(ctx, r.pool, userID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
        INSERT INTO user_roles (user_id, role)
        VALUES ($1,$2)
        ON CONFLICT (user_id, role) DO NOTHING
    `, userID, role)
	return err
}

// RevokeRole removes a role from the user. Revoking an absent role is a no-op.
func (r *UsersRepository) RevokeRole(ctx context.Context, userID, role string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, role)
	return err
}

// HasRole reports whether the user holds the given role.
func (r *UsersRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var has bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`, userID, role).Scan(&has)
	return has, err
}

const ensureUserQuery = `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`

func ensureUser(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	_, err := pool.Exec(ctx, ensureUserQuery, userID)
	return err
}

func ensureUserTx(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, ensureUserQuery, userID)
	return err
}
