package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

const userColumns = `id, email, username, first_name, last_name, photo,
                     college_name, course, specialization, graduation_start_year, graduation_end_year,
                     phone_number, gender, has_completed_profile, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Photo,
		&u.CollegeName, &u.Course, &u.Specialization, &u.GraduationStartYear, &u.GraduationEndYear,
		&u.PhoneNumber, &u.Gender, &u.HasCompletedProfile, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, identity model.Identity) (*model.User, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, err
	}
	const query = `INSERT INTO users (id, email, username, first_name, last_name, photo)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (id) DO UPDATE
                   SET email = EXCLUDED.email,
                       username = EXCLUDED.username,
                       first_name = EXCLUDED.first_name,
                       last_name = EXCLUDED.last_name,
                       photo = EXCLUDED.photo
                   RETURNING ` + userColumns
	return scanUser(pool.QueryRow(ctx, query,
		identity.ID, identity.Email, identity.Username, identity.FirstName, identity.LastName, identity.Photo))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, err
	}
	return scanUser(pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, p model.Profile) (*model.User, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, err
	}
	const query = `INSERT INTO users (id, college_name, course, specialization, graduation_start_year,
                                      graduation_end_year, phone_number, gender, has_completed_profile)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
                   ON CONFLICT (id) DO UPDATE
                   SET college_name = EXCLUDED.college_name,
                       course = EXCLUDED.course,
                       specialization = EXCLUDED.specialization,
                       graduation_start_year = EXCLUDED.graduation_start_year,
                       graduation_end_year = EXCLUDED.graduation_end_year,
                       phone_number = EXCLUDED.phone_number,
                       gender = EXCLUDED.gender,
                       has_completed_profile = TRUE
                   RETURNING ` + userColumns
	return scanUser(pool.QueryRow(ctx, query,
		id, p.CollegeName, p.Course, p.Specialization, p.GraduationStartYear, p.GraduationEndYear, p.PhoneNumber, p.Gender))
}

// Delete removes the user and applies the order policy in one transaction.
// Events the user organised are dropped when nobody bought them, otherwise orphaned.
func (r *userRepository) Delete(ctx context.Context, id string, policy model.OrderDeletePolicy) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		orderStmt := `UPDATE orders SET buyer_id = NULL WHERE buyer_id=$1`
		if policy == model.OrderDeletePolicyDelete {
			orderStmt = `DELETE FROM orders WHERE buyer_id=$1`
		}
		if _, err := tx.Exec(ctx, orderStmt, id); err != nil {
			return err
		}

		const dropUnsold = `DELETE FROM events
                            WHERE organizer_id=$1
                              AND NOT EXISTS (SELECT 1 FROM orders WHERE orders.event_id = events.id)`
		if _, err := tx.Exec(ctx, dropUnsold, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE events SET organizer_id = NULL WHERE organizer_id=$1`, id); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		_, err = tx.Exec(ctx, `INSERT INTO deleted_users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id)
		return err
	})
}
