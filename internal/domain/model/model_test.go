package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCompletedCheckoutTotalAmount(t *testing.T) {
	cases := []struct {
		name     string
		checkout CompletedCheckout
		want     string
	}{
		{"whole units", CompletedCheckout{AmountTotal: 150000}, "1500"},
		{"cents", CompletedCheckout{AmountTotal: 1999}, "19.99"},
		{"zero amount", CompletedCheckout{AmountTotal: 0}, "0"},
		{"marked free", CompletedCheckout{AmountTotal: 500, Free: true}, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.checkout.TotalAmount(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEventUnitAmountAndFinished(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	event := Event{Price: decimal.RequireFromString("19.99"), EndsAt: now.Add(-time.Minute)}
	if got := event.UnitAmount(); got != 1999 {
		t.Fatalf("expected 1999 minor units, got %d", got)
	}
	if !event.Finished(now) {
		t.Fatalf("expected event to be finished")
	}

	event.IsFree = true
	event.EndsAt = now.Add(time.Hour)
	if got := event.UnitAmount(); got != 0 {
		t.Fatalf("expected free event to cost 0, got %d", got)
	}
	if event.Finished(now) {
		t.Fatalf("expected event to be running")
	}
}

func TestProfileMetadataKeys(t *testing.T) {
	p := Profile{
		CollegeName:         "MIT",
		Course:              "BTech",
		Specialization:      "CS",
		GraduationStartYear: 2022,
		GraduationEndYear:   2026,
		PhoneNumber:         "9876543210",
	}
	m := p.Metadata()
	if m["graduationStartYear"] != "2022" || m["Course"] != "BTech" {
		t.Fatalf("unexpected metadata %v", m)
	}
	if _, ok := m["gender"]; ok {
		t.Fatalf("did not expect empty gender to be rendered")
	}
}
