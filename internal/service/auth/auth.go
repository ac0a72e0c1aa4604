package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tsmaulik/movie-demo-test/internal/apperrors"
	"github.com/tsmaulik/movie-demo-test/internal/models"
	"github.com/tsmaulik/movie-demo-test/internal/repository"
	"github.com/tsmaulik/movie-demo-test/internal/token"
)

const (
	defaultAccessCookieName   = "accessToken"
	defaultRefreshCookieName  = "refreshToken"
	defaultRememberCookieName = "rememberMe"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

// Manager of self-contained signed tokens
type TokenManager interface {
	Issue(userID uuid.UUID, kind token.Kind) (models.IssuedToken, error)
	Verify(value string, kind token.Kind) (token.Claims, error)
}

type Config struct {
	// Hasher to use during user registration or login process
	// Defaults to BcryptHasher
	Hasher PasswordHasher

	// Cookie names the session is carried in
	// If not set than default is used
	AccessCookieName   string
	RefreshCookieName  string
	RememberCookieName string
}

// Auth service
// Owns the session carrier contract: which cookies convey the tokens, how
// they are set on login and how they are cleared on logout
type AuthService struct {
	tokens TokenManager
	hasher PasswordHasher

	userRepo repository.UserRepo

	accessCookieName   string
	refreshCookieName  string
	rememberCookieName string
}

func NewService(cfg Config, tokens TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	if tokens == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	setDefaultName := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	setDefaultName(&cfg.AccessCookieName, defaultAccessCookieName)
	setDefaultName(&cfg.RefreshCookieName, defaultRefreshCookieName)
	setDefaultName(&cfg.RememberCookieName, defaultRememberCookieName)

	return &AuthService{
		tokens:             tokens,
		hasher:             hasher,
		userRepo:           userRepo,
		accessCookieName:   cfg.AccessCookieName,
		refreshCookieName:  cfg.RefreshCookieName,
		rememberCookieName: cfg.RememberCookieName,
	}, nil
}

// Register new user
// Duplicate email (case-insensitive) returns apperrors.ErrUserAlreadyExists
func (s *AuthService) Register(ctx context.Context, email string, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, email, hash)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login user with email and password
// Unknown email: apperrors.ErrUserNotFound
// Wrong password: apperrors.ErrInvalidCredentials
// Refresh token is issued only when the user asked to be remembered
func (s *AuthService) Login(ctx context.Context, email string, password string, remember bool) (models.User, models.Session, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, models.Session{}, apperrors.ErrInvalidCredentials
	}

	session, err := s.issueSession(user, remember)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	return user, session, nil
}

func (s *AuthService) issueSession(user models.User, remember bool) (models.Session, error) {
	session := models.Session{Remember: remember}

	access, err := s.tokens.Issue(user.ID, token.KindAccess)
	if err != nil {
		return session, fmt.Errorf("token could not generated, sorry. %w", err)
	}
	session.Access = access

	if remember {
		refresh, err := s.tokens.Issue(user.ID, token.KindRefresh)
		if err != nil {
			return session, fmt.Errorf("token could not generated, sorry. %w", err)
		}
		session.Refresh = refresh
	}

	return session, nil
}

// Refresh reissues an access token from a valid refresh token.
// Tokens are stateless so the refresh token itself is left as is.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.IssuedToken, error) {
	claims, err := s.tokens.Verify(refresh, token.KindRefresh)
	if err != nil {
		return models.IssuedToken{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.IssuedToken{}, fmt.Errorf("%w: user no longer exists", apperrors.ErrTokenInvalid)
		}
		return models.IssuedToken{}, err
	}

	access, err := s.tokens.Issue(user.ID, token.KindAccess)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return access, nil
}

// Authenticate resolves the caller's identity from the request or fails.
// Cookie -> verified access token -> user lookup; every failure collapses to
// apperrors.ErrTokenInvalid. Expiry is checked by token verification only,
// there is no separate expiry comparison here.
func (s *AuthService) Authenticate(ctx context.Context, r *http.Request) (models.User, error) {
	cookie, err := r.Cookie(s.accessCookieName)
	if err != nil || cookie.Value == "" {
		return models.User{}, fmt.Errorf("%w: access token cookie is missing", apperrors.ErrTokenInvalid)
	}

	claims, err := s.tokens.Verify(cookie.Value, token.KindAccess)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Stale token referencing a deleted user
			return models.User{}, fmt.Errorf("%w: user no longer exists", apperrors.ErrTokenInvalid)
		}
		return models.User{}, err
	}

	return user, nil
}

// GetRefreshString extracts the refresh token value from the request
func (s *AuthService) GetRefreshString(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.refreshCookieName)
	if err != nil || cookie.Value == "" {
		return "", fmt.Errorf("%w: refresh token cookie is missing", apperrors.ErrTokenInvalid)
	}

	return cookie.Value, nil
}

// SetSessionToResponse writes the session cookies
// The remember marker and the refresh cookie appear only together
func (s *AuthService) SetSessionToResponse(w http.ResponseWriter, session models.Session) {
	http.SetCookie(w, sessionCookie(s.accessCookieName, session.Access.Value, session.Access.ExpiresAt))

	if session.Remember && session.Refresh.Value != "" {
		http.SetCookie(w, sessionCookie(s.refreshCookieName, session.Refresh.Value, session.Refresh.ExpiresAt))
		http.SetCookie(w, sessionCookie(s.rememberCookieName, "true", session.Refresh.ExpiresAt))
	}
}

// SetAccessToResponse rolls only the access cookie, used on refresh
func (s *AuthService) SetAccessToResponse(w http.ResponseWriter, access models.IssuedToken) {
	http.SetCookie(w, sessionCookie(s.accessCookieName, access.Value, access.ExpiresAt))
}

// ClearSessionFromResponse expires every session cookie whether or not the
// request carried them, so logout stays idempotent
func (s *AuthService) ClearSessionFromResponse(w http.ResponseWriter) {
	for _, name := range []string{s.accessCookieName, s.refreshCookieName, s.rememberCookieName} {
		cookie := sessionCookie(name, "", time.Time{})
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

func sessionCookie(name string, value string, expiresAt time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if !expiresAt.IsZero() {
		cookie.MaxAge = int(time.Until(expiresAt).Seconds())
	}

	return cookie
}
