package test

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// DirectoryStub simulates the identity provider metadata API.
type DirectoryStub struct {
	ProfileMetadataFn func(context.Context, string) (model.ProfileMetadata, error)
	PushMetadataFn    func(context.Context, string, model.ProfileMetadata) error

	mu     sync.Mutex
	Calls  []string
	Pushed map[string]model.ProfileMetadata
}

// ProfileMetadata records the lookup and returns configured metadata.
func (s *DirectoryStub) ProfileMetadata(ctx context.Context, userID string) (model.ProfileMetadata, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, userID)
	s.mu.Unlock()
	if s.ProfileMetadataFn != nil {
		return s.ProfileMetadataFn(ctx, userID)
	}
	return model.ProfileMetadata{}, nil
}

// PushMetadata stores pushed metadata per user.
func (s *DirectoryStub) PushMetadata(ctx context.Context, userID string, metadata model.ProfileMetadata) error {
	if s.PushMetadataFn != nil {
		return s.PushMetadataFn(ctx, userID, metadata)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Pushed == nil {
		s.Pushed = make(map[string]model.ProfileMetadata)
	}
	s.Pushed[userID] = metadata
	return nil
}

// LookupCount returns number of metadata lookups.
func (s *DirectoryStub) LookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// GatewayStub simulates the payment provider API.
type GatewayStub struct {
	CreateCheckoutFn func(context.Context, model.CheckoutRequest) (*model.CheckoutSession, error)
	CompletedSinceFn func(context.Context, time.Time) ([]model.CompletedCheckout, error)

	Requests []model.CheckoutRequest
}

// CreateCheckout records request and returns configured session.
func (s *GatewayStub) CreateCheckout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateCheckoutFn != nil {
		return s.CreateCheckoutFn(ctx, req)
	}
	return &model.CheckoutSession{ID: "cs_test", URL: "https://checkout.example.com/cs_test"}, nil
}

// CompletedSince returns configured sessions.
func (s *GatewayStub) CompletedSince(ctx context.Context, since time.Time) ([]model.CompletedCheckout, error) {
	if s.CompletedSinceFn != nil {
		return s.CompletedSinceFn(ctx, since)
	}
	return nil, nil
}

// PaymentVerifierStub returns configured payment events.
type PaymentVerifierStub struct {
	VerifyFn func([]byte, string) (*model.PaymentEvent, error)
}

// Verify delegates to override or accepts a completed checkout.
func (s PaymentVerifierStub) Verify(payload []byte, signature string) (*model.PaymentEvent, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(payload, signature)
	}
	return &model.PaymentEvent{ID: "evt_test", Kind: model.PaymentEventCheckoutCompleted}, nil
}

// IdentityVerifierStub returns configured identity events.
type IdentityVerifierStub struct {
	VerifyFn func([]byte, http.Header) (*model.IdentityEvent, error)
}

// Verify delegates to override or returns an unrelated event kind.
func (s IdentityVerifierStub) Verify(payload []byte, headers http.Header) (*model.IdentityEvent, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(payload, headers)
	}
	return &model.IdentityEvent{Kind: "session.created"}, nil
}
