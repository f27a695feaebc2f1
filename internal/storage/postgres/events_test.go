package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

func TestEventRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &eventRepository{storage: storage}
	now := time.Now()

	event := model.Event{
		ID:          "evt_1",
		Title:       "Go Meetup",
		Description: "Talks",
		Location:    "Hall A",
		StartsAt:    now.Add(24 * time.Hour),
		EndsAt:      now.Add(26 * time.Hour),
		OrganizerID: "user_1",
		Price:       decimal.RequireFromString("15.5"),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WithArgs("user_1").WillReturnRows(deletedRow(false))
	mock.ExpectQuery("INSERT INTO events").
		WithArgs("evt_1", "Go Meetup", "Talks", "Hall A", event.StartsAt, event.EndsAt, "user_1", "15.5", false).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at to be set, got %v", created.CreatedAt)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WithArgs("user_1").WillReturnRows(deletedRow(false))
	mock.ExpectQuery("INSERT INTO events").WithArgs(anyArgs(9)...).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()
	if _, err := repo.Create(context.Background(), event); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestEventRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &eventRepository{storage: storage}
	now := time.Now()

	columns := []string{"id", "title", "description", "location", "starts_at", "ends_at", "organizer_id", "price", "is_free", "created_at"}
	mock.ExpectQuery("FROM events WHERE id=").WithArgs("evt_1").WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("evt_1", "Go Meetup", "Talks", "Hall A", now, now.Add(time.Hour), "", "0", true, now))

	event, err := repo.GetByID(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !event.IsFree || !event.Price.IsZero() || event.OrganizerID != "" {
		t.Fatalf("unexpected event: %+v", event)
	}

	mock.ExpectQuery("FROM events WHERE id=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM events WHERE id=").WithArgs("evt_2").WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("evt_2", "Broken", "", "", now, now, "user_1", "abc", false, now))
	if _, err := repo.GetByID(context.Background(), "evt_2"); err == nil {
		t.Fatal("expected price parse error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
