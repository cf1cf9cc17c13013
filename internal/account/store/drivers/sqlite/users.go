package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/telemost/accountd/internal/account/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, phone_number, plan_id, password_hash, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone_number, plan_id, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PhoneNumber, mapOptionalInt64(u.PlanID), u.PasswordHash, now, now)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateEmail(ctx context.Context, userID string, newEmail string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, updated_at = ? WHERE id = ?`,
		newEmail, time.Now().UTC(), userID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePlanID(ctx context.Context, userID string, planID *int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET plan_id = ?, updated_at = ? WHERE id = ?`,
		mapOptionalInt64(planID), time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var planID sql.NullInt64
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PhoneNumber,
		&planID, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.PlanID = mapNullInt64Ptr(planID)
	return u, nil
}

// requireRowAffected maps zero-row updates to ErrNotFound so mutations on a
// deleted or unknown user surface the same way as failed lookups.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
