package usecase

import (
	"fmt"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

// ValidatePhoneNumber checks for exactly ten digits.
func ValidatePhoneNumber(number string) bool {
	if len(number) != 10 {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}

func validYear(year int) bool {
	return year >= 1000 && year <= 9999
}

// ValidateProfile checks onboarding answers.
func ValidateProfile(p model.Profile) error {
	switch {
	case p.CollegeName == "":
		return fmt.Errorf("%w: college name is required", domainErrors.ErrInvalidProfile)
	case p.Course == "":
		return fmt.Errorf("%w: course is required", domainErrors.ErrInvalidProfile)
	case p.Specialization == "":
		return fmt.Errorf("%w: specialization is required", domainErrors.ErrInvalidProfile)
	case !validYear(p.GraduationStartYear) || !validYear(p.GraduationEndYear):
		return fmt.Errorf("%w: graduation years must have 4 digits", domainErrors.ErrInvalidProfile)
	case p.GraduationEndYear < p.GraduationStartYear:
		return fmt.Errorf("%w: graduation end year precedes start year", domainErrors.ErrInvalidProfile)
	case !ValidatePhoneNumber(p.PhoneNumber):
		return fmt.Errorf("%w: phone number must have 10 digits", domainErrors.ErrInvalidProfile)
	}
	return nil
}

// ValidateEvent checks organizer input before an event is stored.
func ValidateEvent(e model.Event) error {
	switch {
	case e.Title == "":
		return fmt.Errorf("%w: title is required", domainErrors.ErrInvalidEvent)
	case e.StartsAt.IsZero() || e.EndsAt.IsZero():
		return fmt.Errorf("%w: start and end are required", domainErrors.ErrInvalidEvent)
	case e.EndsAt.Before(e.StartsAt):
		return fmt.Errorf("%w: event ends before it starts", domainErrors.ErrInvalidEvent)
	case !e.IsFree && e.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", domainErrors.ErrInvalidEvent)
	}
	return nil
}
