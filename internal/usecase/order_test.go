package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	testhelpers "github.com/polkiloo/eventhub/internal/test"
)

type enricherFunc func(context.Context, string) model.ProfileMetadata

func (f enricherFunc) ProfileMetadata(ctx context.Context, buyerID string) model.ProfileMetadata {
	return f(ctx, buyerID)
}

func TestListByBuyerPaging(t *testing.T) {
	var orders []model.Order
	for i := 0; i < 7; i++ {
		orders = append(orders, model.Order{StripeID: fmt.Sprintf("cs_%d", i), EventID: fmt.Sprintf("evt_%d", i), BuyerID: "user_1"})
	}
	orders = append(orders, model.Order{StripeID: "cs_other", EventID: "evt_0", BuyerID: "user_2"})
	uc := NewOrderQueryUseCase(&testhelpers.OrderRepositoryStub{Orders: orders}, &testhelpers.EventRepositoryStub{}, nil)

	page, err := uc.ListByBuyer(context.Background(), "user_1", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 3 || len(page.Items) != DefaultPageLimit {
		t.Fatalf("unexpected page %d items, %d pages", len(page.Items), page.TotalPages)
	}
	if page.Items[0].StripeID != "cs_6" {
		t.Fatalf("expected newest first, got %s", page.Items[0].StripeID)
	}

	page, err = uc.ListByBuyer(context.Background(), "user_1", 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].StripeID != "cs_0" {
		t.Fatalf("unexpected last page %+v", page.Items)
	}

	page, err = uc.ListByBuyer(context.Background(), "nobody", 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 || page.TotalPages != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestListByBuyerClampsLimit(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &testhelpers.OrderRepositoryStub{ListByBuyerFn: func(_ context.Context, _ string, limit, offset int) ([]model.OrderView, int, error) {
		gotLimit, gotOffset = limit, offset
		return nil, 0, nil
	}}
	uc := NewOrderQueryUseCase(repo, &testhelpers.EventRepositoryStub{}, nil)

	if _, err := uc.ListByBuyer(context.Background(), "user_1", -2, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != MaxPageLimit || gotOffset != 0 {
		t.Fatalf("expected limit %d offset 0, got %d and %d", MaxPageLimit, gotLimit, gotOffset)
	}
}

func TestRegistrants(t *testing.T) {
	events := &testhelpers.EventRepositoryStub{Events: map[string]*model.Event{
		"evt_1": {ID: "evt_1", OrganizerID: "org_1"},
	}}
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{
		{StripeID: "cs_1", EventID: "evt_1", BuyerID: "alice", Metadata: model.ProfileMetadata{"collegeName": "MIT"}},
		{StripeID: "cs_2", EventID: "evt_1", BuyerID: "bob"},
		{StripeID: "cs_3", EventID: "evt_1", BuyerID: ""},
		{StripeID: "cs_4", EventID: "evt_2", BuyerID: "carol"},
	}}
	var lookups atomic.Int32
	enricher := enricherFunc(func(_ context.Context, buyerID string) model.ProfileMetadata {
		lookups.Add(1)
		return model.ProfileMetadata{"live": buyerID}
	})
	uc := NewOrderQueryUseCase(orders, events, enricher)

	views, err := uc.Registrants(context.Background(), "org_1", "evt_1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 registrants, got %d", len(views))
	}
	if views[0].Metadata["collegeName"] != "MIT" {
		t.Fatalf("stored snapshot must be kept, got %v", views[0].Metadata)
	}
	if views[1].Metadata["live"] != "bob" {
		t.Fatalf("expected live metadata for bob, got %v", views[1].Metadata)
	}
	if views[2].Metadata != nil {
		t.Fatalf("unlinked order must not be enriched, got %v", views[2].Metadata)
	}
	if lookups.Load() != 1 {
		t.Fatalf("expected one live lookup, got %d", lookups.Load())
	}
	for _, o := range orders.Orders {
		if o.StripeID == "cs_2" && o.Metadata != nil {
			t.Fatal("live metadata must not be persisted")
		}
	}

	views, err = uc.Registrants(context.Background(), "org_1", "evt_1", "ALI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].BuyerID != "alice" {
		t.Fatalf("unexpected search result %+v", views)
	}
}

func TestRegistrantsAccess(t *testing.T) {
	events := &testhelpers.EventRepositoryStub{Events: map[string]*model.Event{
		"evt_1": {ID: "evt_1", OrganizerID: "org_1"},
		"evt_2": {ID: "evt_2"},
	}}
	uc := NewOrderQueryUseCase(&testhelpers.OrderRepositoryStub{}, events, nil)

	if _, err := uc.Registrants(context.Background(), "user_1", "evt_1", ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.Registrants(context.Background(), "", "evt_2", ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for organizer-less event, got %v", err)
	}
	if _, err := uc.Registrants(context.Background(), "org_1", "evt_x", ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	views, err := uc.Registrants(context.Background(), "org_1", "evt_1", "")
	if err != nil || views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil list, got %v %v", views, err)
	}
}
