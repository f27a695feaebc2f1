package errors

import (
	"errors"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrMalformedEvent      = errors.New("malformed payment event")
	ErrSignatureInvalid    = errors.New("webhook signature verification failed")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrTimeout             = errors.New("processing timeout")
	ErrDuplicateOrder      = errors.New("order already exists")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrEventFinished       = errors.New("event has already finished")
	ErrOwnEvent            = errors.New("organizer cannot buy own event")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrInvalidEvent        = errors.New("invalid event")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
	ErrPaymentProvider     = errors.New("payment provider error")
	ErrUserDeleted         = errors.New("user account deleted")
)

// DuplicateOrderError reports an order that already exists for the (event, buyer) pair.
// Existing is nil when the conflicting row could not be read back.
type DuplicateOrderError struct {
	Existing *model.Order
}

func (e *DuplicateOrderError) Error() string {
	if e.Existing == nil {
		return ErrDuplicateOrder.Error()
	}
	return ErrDuplicateOrder.Error() + ": " + e.Existing.StripeID
}

func (e *DuplicateOrderError) Is(target error) bool {
	return target == ErrDuplicateOrder
}
