package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teakhata/backend/internal/infrastructure/config"
)

// Role identifies what a portal token is allowed to see. Tokens are issued
// by the external auth provider; this backend only recognizes the two roles
// below.
type Role string

const (
	// RoleAdmin is the shop owner and staff. Full read access plus ledger
	// writes, reports and reminder dispatch.
	RoleAdmin Role = "admin"
	// RolePartner is a trade partner logging into the portal. Access is
	// scoped to the customer id carried in the token.
	RolePartner Role = "partner"
)

// Common errors
var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrTokenNotYetValid  = errors.New("token is not yet valid")
	ErrInvalidClaims     = errors.New("invalid token claims")
	ErrInvalidIssuer     = errors.New("token issuer not recognized")
	ErrUnknownRole       = errors.New("unknown role in claims")
	ErrMissingCustomerID = errors.New("missing customer_id in partner claims")
	ErrTokenRevoked      = errors.New("token has been revoked")
)

// Claims are the custom JWT claims the auth provider embeds in portal
// tokens. Subject is the provider-side account id; CustomerID is only set
// for partner tokens and names the khata customer the account belongs to.
type Claims struct {
	jwt.RegisteredClaims
	Role       Role   `json:"role"`
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name,omitempty"`
}

// IsAdmin reports whether the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsPartner reports whether the token carries the partner role.
func (c *Claims) IsPartner() bool {
	return c.Role == RolePartner
}

// GetIssuedAtTime returns the token's issued-at time as time.Time
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// GetExpiresAtTime returns the token's expiration time as time.Time
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// TokenVerifier validates bearer tokens minted by the external auth
// provider. It never issues or refreshes tokens.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier from the shared-secret config.
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify parses and validates a token string and returns its claims.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrInvalidIssuer
	}

	switch claims.Role {
	case RoleAdmin:
		// Admin tokens carry no customer scope.
	case RolePartner:
		if claims.CustomerID == "" {
			return nil, ErrMissingCustomerID
		}
	default:
		return nil, ErrUnknownRole
	}

	return claims, nil
}
