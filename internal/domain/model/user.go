package model

import (
	"strconv"
	"time"
)

// OrderDeletePolicy decides what happens to a user's orders when the user is removed.
type OrderDeletePolicy string

const (
	OrderDeletePolicyUnlink OrderDeletePolicy = "unlink"
	OrderDeletePolicyDelete OrderDeletePolicy = "delete"
)

// Identity carries the fields mirrored from the identity provider.
type Identity struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	Photo     string
}

// Profile holds onboarding answers.
type Profile struct {
	CollegeName         string
	Course              string
	Specialization      string
	GraduationStartYear int
	GraduationEndYear   int
	PhoneNumber         string
	Gender              string
}

// Metadata renders the profile with the keys the identity provider stores.
func (p Profile) Metadata() ProfileMetadata {
	m := ProfileMetadata{
		"collegeName":         p.CollegeName,
		"Course":              p.Course,
		"specialization":      p.Specialization,
		"graduationStartYear": strconv.Itoa(p.GraduationStartYear),
		"graduationEndYear":   strconv.Itoa(p.GraduationEndYear),
		"phoneNumber":         p.PhoneNumber,
	}
	if p.Gender != "" {
		m["gender"] = p.Gender
	}
	return m
}

// User is the local mirror of an identity-provider account.
type User struct {
	Identity
	Profile
	HasCompletedProfile bool
	CreatedAt           time.Time
}

// Identity provider notification kinds mirrored locally.
const (
	IdentityEventUserCreated = "user.created"
	IdentityEventUserUpdated = "user.updated"
	IdentityEventUserDeleted = "user.deleted"
)

// IdentityEvent is a verified notification from the identity provider.
type IdentityEvent struct {
	Kind     string
	Identity Identity
}
