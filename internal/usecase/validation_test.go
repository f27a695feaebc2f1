package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

func TestValidatePhoneNumber(t *testing.T) {
	cases := map[string]bool{
		"9876543210":  true,
		"987654321":   false,
		"98765432101": false,
		"98765a3210":  false,
		"":            false,
	}
	for number, want := range cases {
		if got := ValidatePhoneNumber(number); got != want {
			t.Fatalf("ValidatePhoneNumber(%q) = %v, want %v", number, got, want)
		}
	}
}

func TestValidateProfile(t *testing.T) {
	base := validProfile()
	if err := ValidateProfile(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mutations := map[string]func(*model.Profile){
		"college":        func(p *model.Profile) { p.CollegeName = "" },
		"course":         func(p *model.Profile) { p.Course = "" },
		"specialization": func(p *model.Profile) { p.Specialization = "" },
		"short year":     func(p *model.Profile) { p.GraduationStartYear = 22 },
		"reversed":       func(p *model.Profile) { p.GraduationEndYear = 2020 },
		"phone":          func(p *model.Profile) { p.PhoneNumber = "+19876543210" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			if err := ValidateProfile(p); !errors.Is(err, domainErrors.ErrInvalidProfile) {
				t.Fatalf("expected invalid profile, got %v", err)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	ok := model.Event{Title: "Meetup", StartsAt: start, EndsAt: start.Add(time.Hour), Price: decimal.RequireFromString("5")}
	if err := ValidateEvent(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []model.Event{
		{StartsAt: start, EndsAt: start},
		{Title: "x", EndsAt: start},
		{Title: "x", StartsAt: start, EndsAt: start.Add(-time.Hour)},
		{Title: "x", StartsAt: start, EndsAt: start, Price: decimal.RequireFromString("-1")},
	}
	for _, e := range bad {
		if err := ValidateEvent(e); !errors.Is(err, domainErrors.ErrInvalidEvent) {
			t.Fatalf("expected invalid event for %+v, got %v", e, err)
		}
	}
}
