package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrTokenNotUsable covers unknown, revoked and expired refresh tokens.
	ErrTokenNotUsable = errors.New("refresh token not usable")
	// ErrOwnerUnavailable is returned by a Rotate owner check to spend the
	// presented token without storing a replacement.
	ErrOwnerUnavailable = errors.New("refresh token owner unavailable")
)

// TokenRepo persists refresh tokens by their SHA-256 hash.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Store inserts a refresh token row.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)",
		userID, tokenHash, exp.UTC())
	return err
}

// OwnerCheck runs inside Rotate once the owner of the presented token is
// known. Returning ErrOwnerUnavailable commits the revoke alone; any other
// error rolls the whole rotation back.
type OwnerCheck func(ctx context.Context, userID uint64) error

// Rotate consumes oldHash and stores newHash for the same owner in one
// transaction. The revoke is a single conditional UPDATE, so of several
// concurrent rotations of the same token exactly one affects a row; the
// rest get ErrTokenNotUsable. A failed insert leaves oldHash usable.
func (r *TokenRepo) Rotate(ctx context.Context, oldHash, newHash string, newExp, now time.Time, check OwnerCheck) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	const qConsume = `UPDATE refresh_tokens SET revoked = 1, revoked_at = ?
	                  WHERE token_hash = ? AND revoked = 0 AND expires_at > ?`
	now = now.UTC()
	res, err := tx.ExecContext(ctx, qConsume, now, oldHash, now)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, ErrTokenNotUsable
	}
	var userID uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT user_id FROM refresh_tokens WHERE token_hash = ?", oldHash).Scan(&userID); err != nil {
		return 0, err
	}

	if check != nil {
		if cerr := check(ctx, userID); cerr != nil {
			if !errors.Is(cerr, ErrOwnerUnavailable) {
				return 0, cerr
			}
			if err := tx.Commit(); err != nil {
				return 0, err
			}
			done = true
			return userID, cerr
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)",
		userID, newHash, newExp.UTC()); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	done = true
	return userID, nil
}

// Revoke marks a token revoked. Unknown or already revoked tokens are a no-op.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked = 1, revoked_at = UTC_TIMESTAMP() WHERE token_hash = ? AND revoked = 0",
		tokenHash)
	return err
}

// RevokeAllForUser revokes every active token of a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked = 1, revoked_at = UTC_TIMESTAMP() WHERE user_id = ? AND revoked = 0",
		userID)
	return err
}

// DeleteStale removes rows that expired or were revoked before cutoff and
// returns how many were deleted.
func (r *TokenRepo) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at < ? OR (revoked = 1 AND revoked_at < ?)",
		cutoff.UTC(), cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
