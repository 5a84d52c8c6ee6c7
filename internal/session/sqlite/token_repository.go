package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/session"
)

// tokenRepository implements session.Repository using SQLite.
type tokenRepository struct {
	db *sql.DB
}

func newTokenRepository(db *sql.DB) *tokenRepository {
	return &tokenRepository{db: db}
}

var _ session.Repository = (*tokenRepository)(nil)

// Save upserts the token by key and sets its ID.
func (r *tokenRepository) Save(token *session.Token) error {
	m := toTokenModel(token)

	var id int64
	err := r.db.QueryRow(
		`INSERT INTO session_tokens (guid, key, value, email, subject, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			guid = excluded.guid,
			value = excluded.value,
			email = excluded.email,
			subject = excluded.subject,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
		RETURNING id`,
		m.GUID, m.Key, m.Value, m.Email, m.Subject, m.ExpiresAt, m.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("save token %s: %w", m.Key, err)
	}

	token.SetID(id)
	log.Debug(log.CatSession, "token saved", "key", m.Key, "id", id)
	return nil
}

func (r *tokenRepository) Get(key string) (*session.Token, error) {
	var m TokenModel
	err := r.db.QueryRow(
		`SELECT id, guid, key, value, email, subject, expires_at, created_at
		FROM session_tokens WHERE key = ?`, key,
	).Scan(&m.ID, &m.GUID, &m.Key, &m.Value, &m.Email, &m.Subject, &m.ExpiresAt, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &session.TokenNotFoundError{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("get token %s: %w", key, err)
	}
	return m.toDomain(), nil
}

func (r *tokenRepository) Delete(key string) error {
	result, err := r.db.Exec(`DELETE FROM session_tokens WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete token %s: %w", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete token %s: %w", key, err)
	}
	if n == 0 {
		return &session.TokenNotFoundError{Key: key}
	}
	log.Debug(log.CatSession, "token deleted", "key", key)
	return nil
}

// Close is a no-op; the connection belongs to DB.
func (r *tokenRepository) Close() error {
	return nil
}
