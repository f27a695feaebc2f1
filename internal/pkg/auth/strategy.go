package auth

import "time"

// Strategy issues and verifies API bearer tokens.
// The subject is the identity provider user id.
type Strategy interface {
	IssueToken(userID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
