package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/model"
)

// Claims represents JWT claims.
type Claims struct {
	UserID       uint       `json:"user_id"`
	AadharNumber string     `json:"aadhar_number"`
	Role         model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller extracted from a verified token.
// Downstream components use it without re-hitting storage.
type Identity struct {
	UserID       uint
	AadharNumber string
	Role         model.Role
}

// TokenService issues and verifies signed identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service with the given signing secret and TTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token asserting the user's identity and role at issuance
// time. Later role or voted-flag changes are not reflected until reissue.
func (s *TokenService) Issue(userID uint, aadharNumber string, role model.Role) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:       userID,
		AadharNumber: aadharNumber,
		Role:         role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Expired-but-well-signed tokens fail with ErrTokenExpired; everything else
// fails with ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrTokenInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, errors.ErrTokenInvalid
	}

	return claims, nil
}

// Authorize verifies the token and, when requiredRole is non-empty, enforces
// it. A role mismatch is ErrForbidden, never conflated with verification
// failures or any storage lookup: this is a pure function of token and clock.
func (s *TokenService) Authorize(tokenString string, requiredRole model.Role) (Identity, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return Identity{}, err
	}
	if requiredRole != "" && claims.Role != requiredRole {
		return Identity{}, errors.ErrForbidden
	}
	return Identity{
		UserID:       claims.UserID,
		AadharNumber: claims.AadharNumber,
		Role:         claims.Role,
	}, nil
}

// IdentityFromClaims converts verified claims into an Identity value.
func IdentityFromClaims(claims *Claims) Identity {
	return Identity{
		UserID:       claims.UserID,
		AadharNumber: claims.AadharNumber,
		Role:         claims.Role,
	}
}
