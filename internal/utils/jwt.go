package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only failure Verify reports. Bad signatures,
// expired tokens and garbage input are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed JWT together with its expiry. Token is what the
// client sends back in the Authorization header; Exp is reported to the
// client as expires_at.
type AccessToken struct {
	Token string    // the serialized JWT
	Exp   time.Time // UTC expiry
}

// RefreshToken is an opaque random token. Raw goes to the client once;
// only HashRefreshRaw(Raw) is persisted.
type RefreshToken struct {
	Raw string    // returned to the client, never stored
	Exp time.Time // UTC expiry
}

// Claims is what a verified access token carries.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 access tokens. The secret is set
// once at construction and never changes.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer. A nil now uses time.Now.
func NewTokenIssuer(secret string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: now}
}

// TTL is the lifetime of issued tokens.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue builds and signs a token for subject with claims sub, exp and iat.
// The subject is the username; CurrentUser resolves it back to a row on
// every request.
func (t *TokenIssuer) Issue(subject string) (AccessToken, error) {
	// Both timestamps come from the injected clock.
	now := t.now().UTC()
	exp := now.Add(t.ttl)
	// RegisteredClaims serializes to the standard sub, exp and iat keys.
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	// Sign with HS256 and the shared secret to get the compact string form.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Verify checks signature and expiry in one step. Tokens signed with any
// algorithm other than HS256 are rejected before the key is consulted.
func (t *TokenIssuer) Verify(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	// The parser options pin the algorithm, require an exp claim and
	// evaluate exp against the injected clock rather than wall time.
	tok, err := jwt.ParseWithClaims(raw, &rc,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	// A token without a subject cannot be mapped to a user.
	if err != nil || !tok.Valid || rc.Subject == "" || rc.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}, nil
}

// NewRefreshToken returns a random 96-character hex token expiring ttl
// after now.
func NewRefreshToken(now time.Time, ttl time.Duration) (RefreshToken, error) {
	// 48 random bytes encode to 96 hex characters.
	raw, err := randomHex(48)
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: raw, Exp: now.UTC().Add(ttl)}, nil
}

// HashRefreshRaw returns the SHA-256 hex digest stored in place of the raw
// refresh token.
func HashRefreshRaw(raw string) string {
	// Digest the raw bytes and hex encode the 32-byte sum.
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns n bytes from crypto/rand as a hex string. A failing
// random source is reported, never papered over.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	// rand.Read fills the whole slice or returns an error.
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
