package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/queue"
	"github.com/iliyamo/studio-showcase/internal/repository"
	"github.com/iliyamo/studio-showcase/internal/utils"
)

var (
	ErrDuplicateEmail     = apperr.Conflict("DUPLICATE_EMAIL", "Email already registered.")
	ErrDuplicateUsername  = apperr.Conflict("DUPLICATE_USERNAME", "Username already taken.")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "Incorrect username or password.")
	ErrInactiveAccount    = apperr.New(apperr.KindForbidden, "INACTIVE_ACCOUNT", "Account is inactive.")
	ErrInvalidOrExpired   = apperr.New(apperr.KindUnauthenticated, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired.")
	ErrUserUnavailable    = apperr.New(apperr.KindUnauthenticated, "USER_UNAVAILABLE", "User no longer exists or is inactive.")
	ErrUserNotFound       = apperr.NotFound("USER_NOT_FOUND", "User not found.")
	ErrUnauthenticated    = apperr.New(apperr.KindUnauthenticated, "UNAUTHENTICATED", "Could not validate credentials.")
	ErrForbidden          = apperr.New(apperr.KindForbidden, "FORBIDDEN", "Administrator privileges required.")
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// TokenStore persists refresh tokens by hash. Rotate must consume the old
// token and store the new one atomically, reporting
// repository.ErrTokenNotUsable when the old token cannot be consumed.
type TokenStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Rotate(ctx context.Context, oldHash, newHash string, newExp, now time.Time, check repository.OwnerCheck) (uint64, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

type AuthConfig struct {
	RefreshTTL                     time.Duration
	RevokeSessionsOnPasswordChange bool
}

// AuthService orchestrates registration, login, token refresh, logout and
// password changes.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	hasher *utils.Hasher
	issuer *utils.TokenIssuer
	cfg    AuthConfig
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummy     string
}

func NewAuthService(users UserStore, tokens TokenStore, hasher *utils.Hasher, issuer *utils.TokenIssuer,
	cfg AuthConfig, events EventPublisher, log *zap.Logger) *AuthService {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		issuer: issuer,
		cfg:    cfg,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for refresh token expiry.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int64            `json:"expires_in"`
	ExpiresAt    time.Time        `json:"expires_at"`
	User         model.PublicUser `json:"user"`
}

// Register creates a non-admin, active user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	const op = "auth.Register"

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	}
	taken, err = s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateUsername)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Upstream("PASSWORD_HASH_FAILED", "Could not create account.", err))
	}
	u := &model.User{
		Email:        email,
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      false,
	}
	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}

	s.events.Publish(ctx, queue.Event{Type: queue.UserRegistered, Subject: u.Username, UserID: u.ID, OccurredAt: s.now().UTC()})
	return u, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown users
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	const op = "auth.Login"

	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn a hash comparison so unknown users take as long as known ones.
			s.hasher.Verify(password, s.dummyDigest())
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrInactiveAccount)
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pair, nil
}

// Refresh rotates a refresh token. The owner is loaded and the new pair is
// minted inside the rotation, so any failure there leaves the presented
// token usable. The one exception is an owner that no longer exists or is
// inactive: the token is spent and ErrUserUnavailable returned.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	const op = "auth.Refresh"

	rawRefresh = strings.TrimSpace(rawRefresh)
	if rawRefresh == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidOrExpired)
	}
	now := s.now()
	refresh, err := utils.NewRefreshToken(now, s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Upstream("TOKEN_ISSUE_FAILED", "Could not issue refresh token.", err))
	}

	var (
		owner  *model.User
		access utils.AccessToken
	)
	check := func(ctx context.Context, userID uint64) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return repository.ErrOwnerUnavailable
			}
			return err
		}
		if !u.IsActive {
			return repository.ErrOwnerUnavailable
		}
		if access, err = s.issuer.Issue(u.Username); err != nil {
			return apperr.Upstream("TOKEN_ISSUE_FAILED", "Could not issue access token.", err)
		}
		owner = u
		return nil
	}

	_, err = s.tokens.Rotate(ctx, utils.HashRefreshRaw(rawRefresh), utils.HashRefreshRaw(refresh.Raw), refresh.Exp, now, check)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTokenNotUsable):
			err = ErrInvalidOrExpired
		case errors.Is(err, repository.ErrOwnerUnavailable):
			err = ErrUserUnavailable
		default:
			if _, ok := apperr.As(err); !ok {
				err = storeFailure(err)
			}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.pair(owner, access, refresh), nil
}

// Logout revokes a refresh token. It never fails visibly: store errors are
// logged and swallowed.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string) {
	rawRefresh = strings.TrimSpace(rawRefresh)
	if rawRefresh == "" {
		return
	}
	if err := s.tokens.Revoke(ctx, utils.HashRefreshRaw(rawRefresh)); err != nil {
		s.log.Warn("refresh token revoke failed", zap.Error(err))
	}
}

// ChangePassword replaces the user's password after checking the current
// one. Outstanding refresh tokens survive unless the service is configured
// to revoke them.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, current, next string) error {
	const op = "auth.ChangePassword"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	if !s.hasher.Verify(current, u.PasswordHash) {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("%s: %w", op, apperr.Upstream("PASSWORD_HASH_FAILED", "Could not update password.", err))
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	if s.cfg.RevokeSessionsOnPasswordChange {
		if err := s.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
			return fmt.Errorf("%s: %w", op, storeFailure(err))
		}
	}

	s.events.Publish(ctx, queue.Event{Type: queue.UserPasswordChanged, Subject: u.Username, UserID: u.ID, OccurredAt: s.now().UTC()})
	return nil
}

// CurrentUser resolves a bearer access token to its user.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*model.User, error) {
	const op = "auth.CurrentUser"

	claims, err := s.issuer.Verify(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	u, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	// An inactive owner is treated like a missing one.
	if !u.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	return u, nil
}

// RequireAdmin is the admin guard applied to every content mutation.
func (s *AuthService) RequireAdmin(u *model.User) error {
	if u == nil {
		return ErrUnauthenticated
	}
	if !u.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) issuePair(ctx context.Context, u *model.User) (*TokenPair, error) {
	access, err := s.issuer.Issue(u.Username)
	if err != nil {
		return nil, apperr.Upstream("TOKEN_ISSUE_FAILED", "Could not issue access token.", err)
	}
	refresh, err := utils.NewRefreshToken(s.now(), s.cfg.RefreshTTL)
	if err != nil {
		return nil, apperr.Upstream("TOKEN_ISSUE_FAILED", "Could not issue refresh token.", err)
	}
	if err := s.tokens.Store(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, storeFailure(err)
	}
	return s.pair(u, access, refresh), nil
}

func (s *AuthService) pair(u *model.User, access utils.AccessToken, refresh utils.RefreshToken) *TokenPair {
	return &TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.issuer.TTL() / time.Second),
		ExpiresAt:    access.Exp,
		User:         u.Public(),
	}
}

// storeFailure wraps an unexpected repository error.
func storeFailure(err error) error {
	return apperr.Upstream("DATABASE_ERROR", "A database error occurred.", err)
}

// dummyDigest returns a digest at the configured cost, computed once.
func (s *AuthService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		s.dummy, _ = s.hasher.Hash("studio-showcase-timing-pad")
	})
	return s.dummy
}
