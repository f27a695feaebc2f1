package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

const orderColumns = `o.stripe_id, o.event_id, COALESCE(o.buyer_id, ''), o.total_amount::text, o.metadata, o.created_at`

func scanOrder(row pgx.Row, extra ...any) (*model.Order, error) {
	var (
		o      model.Order
		amount string
		meta   []byte
	)
	dest := append([]any{&o.StripeID, &o.EventID, &o.BuyerID, &amount, &meta, &o.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	var err error
	if o.TotalAmount, err = normalizeAmount(amount); err != nil {
		return nil, err
	}
	if o.Metadata, err = decodeMetadata(meta); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) queryOne(ctx context.Context, query string, args ...any) (*model.Order, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, err
	}
	order, err := scanOrder(pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) FindByEventAndBuyer(ctx context.Context, eventID, buyerID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders o WHERE o.event_id=$1 AND o.buyer_id=$2`
	return r.queryOne(ctx, query, eventID, buyerID)
}

func (r *orderRepository) GetByStripeID(ctx context.Context, stripeID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders o WHERE o.stripe_id=$1`
	return r.queryOne(ctx, query, stripeID)
}

// Insert stores the order in one transaction. The buyer row is created as a stub
// when the identity mirror has not seen the user yet.
func (r *orderRepository) Insert(ctx context.Context, order model.Order) (*model.Order, error) {
	meta, err := encodeMetadata(order.Metadata)
	if err != nil {
		return nil, err
	}

	const insert = `INSERT INTO orders (stripe_id, event_id, buyer_id, total_amount, metadata)
                    VALUES ($1, $2, $3, $4::numeric, $5)
                    RETURNING created_at`

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := ensureUserTx(ctx, tx, order.BuyerID); err != nil {
			return err
		}
		return tx.QueryRow(ctx, insert, order.StripeID, order.EventID, order.BuyerID, order.TotalAmount, meta).Scan(&order.CreatedAt)
	})
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]model.OrderView, int, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE buyer_id=$1`, buyerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + orderColumns + `, e.title, e.starts_at
                   FROM orders o JOIN events e ON e.id = o.event_id
                   WHERE o.buyer_id=$1
                   ORDER BY o.created_at DESC
                   LIMIT $2 OFFSET $3`
	rows, err := pool.Query(ctx, query, buyerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.OrderView
	for rows.Next() {
		var v model.OrderView
		order, err := scanOrder(rows, &v.EventTitle, &v.EventStartsAt)
		if err != nil {
			return nil, 0, err
		}
		v.Order = *order
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *orderRepository) ListByEvent(ctx context.Context, eventID, search string) ([]model.OrderView, error) {
	pool, err := r.storage.db(ctx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + orderColumns + `, e.title, e.starts_at,
                          COALESCE(u.email, ''), COALESCE(u.username, ''), COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
                   FROM orders o
                   JOIN events e ON e.id = o.event_id
                   LEFT JOIN users u ON u.id = o.buyer_id
                   WHERE o.event_id=$1
                     AND ($2::text = '' OR o.buyer_id ILIKE $3 OR u.email ILIKE $3 OR u.username ILIKE $3)
                   ORDER BY o.created_at DESC`
	rows, err := pool.Query(ctx, query, eventID, search, likePattern(search))
	if err != nil {
		return nil, fmt.Errorf("list event orders: %w", err)
	}
	defer rows.Close()

	var result []model.OrderView
	for rows.Next() {
		var v model.OrderView
		order, err := scanOrder(rows, &v.EventTitle, &v.EventStartsAt, &v.BuyerEmail, &v.BuyerUsername, &v.BuyerFirstName, &v.BuyerLastName)
		if err != nil {
			return nil, err
		}
		v.Order = *order
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
