package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

var userRowColumns = []string{
	"id", "email", "username", "first_name", "last_name", "photo",
	"college_name", "course", "specialization", "graduation_start_year", "graduation_end_year",
	"phone_number", "gender", "has_completed_profile", "created_at",
}

func userRow(now time.Time, completed bool) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(userRowColumns).AddRow(
		"user_1", "alice@example.com", "alice", "Alice", "Doe", "https://img/1.png",
		"MIT", "CS", "AI", 2021, 2025,
		"9876543210", "female", completed, now,
	)
}

func TestUserRepositoryUpsert(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}
	now := time.Now()

	identity := model.Identity{ID: "user_1", Email: "alice@example.com", Username: "alice", FirstName: "Alice", LastName: "Doe", Photo: "https://img/1.png"}
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user_1", "alice@example.com", "alice", "Alice", "Doe", "https://img/1.png").
		WillReturnRows(userRow(now, false))

	user, err := repo.Upsert(context.Background(), identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" || user.GraduationEndYear != 2025 || user.HasCompletedProfile {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs(anyArgs(6)...).WillReturnError(errors.New("boom"))
	if _, err := repo.Upsert(context.Background(), identity); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("user_1").WillReturnRows(userRow(time.Now(), true))
	user, err := repo.GetByID(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.HasCompletedProfile || user.CollegeName != "MIT" {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("ghost").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	profile := model.Profile{
		CollegeName:         "MIT",
		Course:              "CS",
		Specialization:      "AI",
		GraduationStartYear: 2021,
		GraduationEndYear:   2025,
		PhoneNumber:         "9876543210",
		Gender:              "female",
	}
	mock.ExpectQuery("has_completed_profile = TRUE").
		WithArgs("user_1", "MIT", "CS", "AI", 2021, 2025, "9876543210", "female").
		WillReturnRows(userRow(time.Now(), true))

	user, err := repo.UpdateProfile(context.Background(), "user_1", profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.HasCompletedProfile {
		t.Fatal("expected completed profile")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	tests := []struct {
		name      string
		policy    model.OrderDeletePolicy
		orderStmt string
	}{
		{name: "unlink", policy: model.OrderDeletePolicyUnlink, orderStmt: "UPDATE orders SET buyer_id = NULL"},
		{name: "delete", policy: model.OrderDeletePolicyDelete, orderStmt: "DELETE FROM orders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newMockStorage(t)
			defer mock.Close()
			repo := &userRepository{storage: storage}

			mock.ExpectBegin()
			mock.ExpectExec(tt.orderStmt).WithArgs("user_1").WillReturnResult(pgxmockv3.NewResult("UPDATE", 2))
			mock.ExpectExec("DELETE FROM events").WithArgs("user_1").WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
			mock.ExpectExec("UPDATE events SET organizer_id = NULL").WithArgs("user_1").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
			mock.ExpectExec("DELETE FROM users").WithArgs("user_1").WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
			mock.ExpectExec("INSERT INTO deleted_users").WithArgs("user_1").WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
			mock.ExpectCommit()

			if err := repo.Delete(context.Background(), "user_1", tt.policy); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations not met: %v", err)
			}
		})
	}
}

func TestUserRepositoryDeleteUnknownUser(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET buyer_id = NULL").WithArgs("ghost").WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM events").WithArgs("ghost").WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	mock.ExpectExec("UPDATE events SET organizer_id = NULL").WithArgs("ghost").WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM users").WithArgs("ghost").WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), "ghost", model.OrderDeletePolicyUnlink); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET buyer_id = NULL").WithArgs("user_2").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()
	if err := repo.Delete(context.Background(), "user_2", model.OrderDeletePolicyUnlink); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
