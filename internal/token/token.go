package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tsmaulik/movie-demo-test/internal/apperrors"
	"github.com/tsmaulik/movie-demo-test/internal/models"
)

// Token kind selects the signing secret and lifetime.
// Access and refresh tokens are never interchangeable: a token signed as one
// kind fails verification as the other.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	defaultAccessTTL     = 1 * time.Hour
	defaultRefreshTTL    = 7 * 24 * time.Hour
	defaultSigningMethod = "HS256"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"uid"`
}

// Manager config with sensible defaults
type Config struct {
	// Secrets to sign access and refresh tokens
	// Both required to be set and must differ
	AccessSecret  string
	RefreshSecret string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set than default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Manager issues and verifies self-contained signed tokens.
// No token is ever persisted: expiry is the only invalidation mechanism.
type Manager struct {
	accessSecret  string
	refreshSecret string

	alg jwt.SigningMethod

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets must not be empty")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTTL)

	return &Manager{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		alg:           jwt.GetSigningMethod(cfg.Alg),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}, nil
}

func (m *Manager) kindParams(kind Kind) (secret string, ttl time.Duration, err error) {
	switch kind {
	case KindAccess:
		return m.accessSecret, m.accessTTL, nil
	case KindRefresh:
		return m.refreshSecret, m.refreshTTL, nil
	default:
		return "", 0, fmt.Errorf("unknown token kind %q", kind)
	}
}

// Issue signed token for the user with the kind's secret and lifetime
func (m *Manager) Issue(userID uuid.UUID, kind Kind) (models.IssuedToken, error) {
	secret, ttl, err := m.kindParams(kind)
	if err != nil {
		return models.IssuedToken{}, err
	}

	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID: userID,
		},
	)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing %s token. Err: %w", kind, err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify signature and expiry against the kind's secret.
// A token is binary valid or invalid: malformed structure, wrong algorithm,
// signature mismatch and passed expiry all collapse to apperrors.ErrTokenInvalid.
func (m *Manager) Verify(value string, kind Kind) (Claims, error) {
	secret, _, err := m.kindParams(kind)
	if err != nil {
		return Claims{}, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(
		value,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w. Err: %w", apperrors.ErrTokenInvalid, err)
	}

	return *claims, nil
}

// Decode parses claims without verifying the signature.
// Inspection only: must never be used as an authorization check.
func (m *Manager) Decode(value string) (Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(value, claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error while decoding token. Err: %w", err)
	}

	return *claims, nil
}
