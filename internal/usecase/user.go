package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/domain/repository"
)

// MetadataSink writes profile metadata back to the identity provider.
type MetadataSink interface {
	PushMetadata(ctx context.Context, userID string, metadata model.ProfileMetadata) error
}

// UserUseCase manages the local mirror of identity provider users.
type UserUseCase struct {
	users  repository.UserRepository
	sink   MetadataSink
	policy model.OrderDeletePolicy
	logger *slog.Logger
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, sink MetadataSink, policy model.OrderDeletePolicy, logger *slog.Logger) *UserUseCase {
	if policy == "" {
		policy = model.OrderDeletePolicyUnlink
	}
	return &UserUseCase{users: users, sink: sink, policy: policy, logger: logger}
}

// Me returns the stored user.
func (u *UserUseCase) Me(ctx context.Context, userID string) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// CompleteProfile stores onboarding answers and mirrors them to the identity provider.
// When the push fails the stored user is still returned with ErrIdentityUnavailable.
func (u *UserUseCase) CompleteProfile(ctx context.Context, userID string, profile model.Profile) (*model.User, error) {
	profile = normalizeProfile(profile)
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	user, err := u.users.UpdateProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	if err := u.sink.PushMetadata(ctx, userID, profile.Metadata()); err != nil {
		u.logger.Error("push profile metadata failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		if !errors.Is(err, domainErrors.ErrIdentityUnavailable) {
			err = errors.Join(domainErrors.ErrIdentityUnavailable, err)
		}
		return user, err
	}
	return user, nil
}

// Delete removes the user under the configured order policy.
func (u *UserUseCase) Delete(ctx context.Context, userID string) error {
	return u.users.Delete(ctx, userID, u.policy)
}

// SyncIdentity applies an identity provider notification.
func (u *UserUseCase) SyncIdentity(ctx context.Context, event model.IdentityEvent) error {
	switch event.Kind {
	case model.IdentityEventUserCreated, model.IdentityEventUserUpdated:
		_, err := u.users.Upsert(ctx, event.Identity)
		return err
	case model.IdentityEventUserDeleted:
		return u.Delete(ctx, event.Identity.ID)
	default:
		return nil
	}
}

func normalizeProfile(p model.Profile) model.Profile {
	p.CollegeName = strings.TrimSpace(p.CollegeName)
	p.Course = strings.TrimSpace(p.Course)
	p.Specialization = strings.TrimSpace(p.Specialization)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.Gender = strings.TrimSpace(p.Gender)
	return p
}
