package sqlite

import (
	"time"

	"github.com/zjrosen/rounds/internal/session"
)

// TokenModel is the database row for the session_tokens table.
// Time values are stored as Unix seconds.
type TokenModel struct {
	ID        int64
	GUID      string
	Key       string
	Value     string
	Email     string
	Subject   string
	ExpiresAt *int64 // nullable
	CreatedAt int64
}

func toTokenModel(t *session.Token) *TokenModel {
	m := &TokenModel{
		ID:        t.ID(),
		GUID:      t.GUID(),
		Key:       t.Key(),
		Value:     t.Value(),
		Email:     t.Email(),
		Subject:   t.Subject(),
		CreatedAt: t.CreatedAt().Unix(),
	}
	if !t.ExpiresAt().IsZero() {
		exp := t.ExpiresAt().Unix()
		m.ExpiresAt = &exp
	}
	return m
}

func (m *TokenModel) toDomain() *session.Token {
	var expiresAt time.Time
	if m.ExpiresAt != nil {
		expiresAt = time.Unix(*m.ExpiresAt, 0).UTC()
	}
	return session.ReconstituteToken(
		m.ID, m.GUID, m.Key, m.Value, m.Email, m.Subject,
		expiresAt, time.Unix(m.CreatedAt, 0).UTC(),
	)
}
