package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

// Directory exposes profile metadata kept by the identity provider.
type Directory interface {
	ProfileMetadata(ctx context.Context, userID string) (model.ProfileMetadata, error)
	PushMetadata(ctx context.Context, userID string, metadata model.ProfileMetadata) error
}

type userAPI interface {
	Get(ctx context.Context, id string) (*clerk.User, error)
	UpdateMetadata(ctx context.Context, id string, params *user.UpdateMetadataParams) (*clerk.User, error)
}

// Client implements Directory via the Clerk backend API.
type Client struct {
	users  userAPI
	logger *slog.Logger
}

// NewClient creates Clerk client. Without a key every call fails with ErrIdentityUnavailable.
func NewClient(key string, logger *slog.Logger) *Client {
	if key == "" {
		return &Client{logger: logger}
	}
	return NewClientWithConfig(&clerk.ClientConfig{
		BackendConfig: clerk.BackendConfig{Key: clerk.String(key)},
	}, logger)
}

// NewClientWithConfig creates client over an explicit backend configuration.
func NewClientWithConfig(cfg *clerk.ClientConfig, logger *slog.Logger) *Client {
	return &Client{users: user.NewClient(cfg), logger: logger}
}

// ProfileMetadata fetches the user's unsafe metadata as a flat string map.
func (c *Client) ProfileMetadata(ctx context.Context, userID string) (model.ProfileMetadata, error) {
	if c.users == nil {
		return nil, fmt.Errorf("%w: api key not configured", domainErrors.ErrIdentityUnavailable)
	}
	u, err := c.users.Get(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	return ConvertMetadata(u.UnsafeMetadata)
}

// PushMetadata merges metadata into the user's unsafe metadata.
func (c *Client) PushMetadata(ctx context.Context, userID string, metadata model.ProfileMetadata) error {
	if c.users == nil {
		return fmt.Errorf("%w: api key not configured", domainErrors.ErrIdentityUnavailable)
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	msg := json.RawMessage(raw)
	if _, err := c.users.UpdateMetadata(ctx, userID, &user.UpdateMetadataParams{UnsafeMetadata: &msg}); err != nil {
		return apiError(err)
	}
	return nil
}

// ConvertMetadata flattens provider metadata into strings.
// Strings are kept, other values become their JSON text and nulls are dropped.
func ConvertMetadata(raw json.RawMessage) (model.ProfileMetadata, error) {
	result := model.ProfileMetadata{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	for key, value := range fields {
		value = bytes.TrimSpace(value)
		if len(value) == 0 || bytes.Equal(value, []byte("null")) {
			continue
		}
		if value[0] == '"' {
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("decode metadata %q: %w", key, err)
			}
			result[key] = s
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return nil, fmt.Errorf("decode metadata %q: %w", key, err)
		}
		result[key] = compact.String()
	}
	return result, nil
}

func apiError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	var apiErr *clerk.APIErrorResponse
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 404 {
		return fmt.Errorf("%w: %v", domainErrors.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", domainErrors.ErrIdentityUnavailable, err)
}
