package session

import "fmt"

// Repository persists session tokens keyed by Token.Key.
type Repository interface {
	// Save stores the token, replacing any token with the same key.
	Save(token *Token) error

	// Get returns the token stored under key.
	// Returns TokenNotFoundError if none exists.
	Get(key string) (*Token, error)

	// Delete removes the token stored under key.
	// Returns TokenNotFoundError if none exists.
	Delete(key string) error

	// Close releases any resources held by the repository.
	Close() error
}

// TokenNotFoundError is returned when no token is stored under Key.
type TokenNotFoundError struct {
	Key string
}

func (e *TokenNotFoundError) Error() string {
	return fmt.Sprintf("session token not found: %s", e.Key)
}
