// Package session holds the credentials issued to a signed-in doctor.
//
// The registration flow never writes a token itself: the backend returns it,
// the app wraps it in a Token and hands it to a Repository.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DoctorTokenKey is the storage key of the doctor session token.
const DoctorTokenKey = "doctortoken"

// Token is a stored session credential.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type Token struct {
	id        int64
	guid      string
	key       string
	value     string
	email     string
	subject   string
	expiresAt time.Time
	createdAt time.Time
}

// NewToken wraps a freshly issued credential. Claims are read from value
// when it is a JWT; opaque tokens are kept as-is.
func NewToken(key, value, email string) *Token {
	claims := Inspect(value)
	return &Token{
		guid:      uuid.NewString(),
		key:       key,
		value:     value,
		email:     email,
		subject:   claims.Subject,
		expiresAt: claims.ExpiresAt,
		createdAt: time.Now().UTC().Truncate(time.Second),
	}
}

// ReconstituteToken rebuilds a Token from persisted fields.
func ReconstituteToken(id int64, guid, key, value, email, subject string, expiresAt, createdAt time.Time) *Token {
	return &Token{
		id:        id,
		guid:      guid,
		key:       key,
		value:     value,
		email:     email,
		subject:   subject,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}

func (t *Token) ID() int64            { return t.id }
func (t *Token) GUID() string         { return t.guid }
func (t *Token) Key() string          { return t.key }
func (t *Token) Value() string        { return t.value }
func (t *Token) Email() string        { return t.email }
func (t *Token) Subject() string      { return t.subject }
func (t *Token) ExpiresAt() time.Time { return t.expiresAt }
func (t *Token) CreatedAt() time.Time { return t.createdAt }

// SetID is used by repositories after insert.
func (t *Token) SetID(id int64) { t.id = id }

// Expired reports whether the token carries an expiry that is before now.
// Tokens without an expiry never expire client side.
func (t *Token) Expired(now time.Time) bool {
	return !t.expiresAt.IsZero() && now.After(t.expiresAt)
}

// Masked returns the token value with all but the last four characters hidden.
func (t *Token) Masked() string {
	if len(t.value) <= 4 {
		return strings.Repeat("*", len(t.value))
	}
	return strings.Repeat("*", 8) + t.value[len(t.value)-4:]
}

// Claims is what the client can learn from a token without verifying it.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IsJWT     bool
}

// Inspect reads the subject and expiry of a JWT without checking its
// signature. The server is the authority; these values are display-only.
func Inspect(value string) Claims {
	if strings.Count(value, ".") != 2 {
		return Claims{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return Claims{}
	}

	out := Claims{IsJWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.UTC()
	}
	return out
}
