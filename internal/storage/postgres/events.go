package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

func (r *eventRepository) Create(ctx context.Context, event model.Event) (*model.Event, error) {
	const insert = `INSERT INTO events (id, title, description, location, starts_at, ends_at, organizer_id, price, is_free)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9)
                    RETURNING created_at`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := ensureUserTx(ctx, tx, event.OrganizerID); err != nil {
			return err
		}
		return tx.QueryRow(ctx, insert,
			event.ID, event.Title, event.Description, event.Location, event.StartsAt, event.EndsAt,
			event.OrganizerID, event.Price.String(), event.IsFree,
		).Scan(&event.CreatedAt)
	})
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT id, title, description, location, starts_at, ends_at,
                          COALESCE(organizer_id, ''), price::text, is_free, created_at
                   FROM events WHERE id=$1`
	var (
		e     model.Event
		price string
	)
	err = pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt,
		&e.OrganizerID, &price, &e.IsFree, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if e.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return &e, nil
}
