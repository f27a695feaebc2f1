package identity

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	svix "github.com/svix/svix-webhooks/go"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

// WebhookVerifier authenticates Svix-signed identity provider deliveries.
type WebhookVerifier struct {
	wh *svix.Webhook
}

type webhookEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewWebhookVerifier creates verifier for a whsec_ signing secret.
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("init identity webhook: %w", err)
	}
	return &WebhookVerifier{wh: wh}, nil
}

// Verify checks the svix headers and decodes the user payload.
func (v *WebhookVerifier) Verify(payload []byte, headers http.Header) (*model.IdentityEvent, error) {
	if err := v.wh.Verify(payload, headers); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrSignatureInvalid, err)
	}

	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrMalformedEvent, err)
	}
	event := &model.IdentityEvent{Kind: env.Type}
	switch env.Type {
	case model.IdentityEventUserCreated, model.IdentityEventUserUpdated, model.IdentityEventUserDeleted:
	default:
		return event, nil
	}

	var u clerk.User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrMalformedEvent, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: user id missing", domainErrors.ErrMalformedEvent)
	}
	event.Identity = identityFromUser(&u)
	return event, nil
}

func identityFromUser(u *clerk.User) model.Identity {
	return model.Identity{
		ID:        u.ID,
		Email:     primaryEmail(u),
		Username:  deref(u.Username),
		FirstName: deref(u.FirstName),
		LastName:  deref(u.LastName),
		Photo:     deref(u.ImageURL),
	}
}

func primaryEmail(u *clerk.User) string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	if u.PrimaryEmailAddressID != nil {
		for _, addr := range u.EmailAddresses {
			if addr != nil && addr.ID == *u.PrimaryEmailAddressID {
				return addr.EmailAddress
			}
		}
	}
	if u.EmailAddresses[0] == nil {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
