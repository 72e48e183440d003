package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teakhata/backend/internal/infrastructure/config"
)

const (
	testSecret = "test-secret-key-with-enough-length!"
	testIssuer = "teakhata-auth"
)

func newTestVerifier() *TokenVerifier {
	return NewTokenVerifier(config.JWTConfig{
		Secret: testSecret,
		Issuer: testIssuer,
	})
}

// signToken mints a token the way the external auth provider would.
func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseRegisteredClaims(issuer string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        "jti-123",
		Issuer:    issuer,
		Subject:   "account-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
	}
}

func adminClaims() *Claims {
	return &Claims{
		RegisteredClaims: baseRegisteredClaims(testIssuer),
		Role:             RoleAdmin,
		Name:             "Owner",
	}
}

func partnerClaims(customerID string) *Claims {
	return &Claims{
		RegisteredClaims: baseRegisteredClaims(testIssuer),
		Role:             RolePartner,
		CustomerID:       customerID,
		Name:             "Gupta Tea House",
	}
}

func TestVerify_AdminToken(t *testing.T) {
	v := newTestVerifier()
	token := signToken(t, adminClaims(), testSecret)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin())
	assert.False(t, claims.IsPartner())
	assert.Empty(t, claims.CustomerID)
	assert.Equal(t, "account-1", claims.Subject)
	assert.Equal(t, "jti-123", claims.ID)
}

func TestVerify_PartnerToken(t *testing.T) {
	v := newTestVerifier()
	token := signToken(t, partnerClaims("cust-42"), testSecret)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RolePartner, claims.Role)
	assert.True(t, claims.IsPartner())
	assert.Equal(t, "cust-42", claims.CustomerID)
	assert.Equal(t, "Gupta Tea House", claims.Name)
}

func TestVerify_PartnerMissingCustomerID(t *testing.T) {
	v := newTestVerifier()
	token := signToken(t, partnerClaims(""), testSecret)

	claims, err := v.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrMissingCustomerID)
}

func TestVerify_UnknownRole(t *testing.T) {
	v := newTestVerifier()
	c := adminClaims()
	c.Role = Role("superuser")
	token := signToken(t, c, testSecret)

	claims, err := v.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestVerify_MissingRole(t *testing.T) {
	v := newTestVerifier()
	c := adminClaims()
	c.Role = ""
	token := signToken(t, c, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := newTestVerifier()
	c := adminClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signToken(t, c, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_NotYetValid(t *testing.T) {
	v := newTestVerifier()
	c := adminClaims()
	c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token := signToken(t, c, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := newTestVerifier()
	token := signToken(t, adminClaims(), "a-completely-different-secret-value")

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	v := newTestVerifier()
	c := adminClaims()
	c.Issuer = "some-other-service"
	token := signToken(t, c, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestVerify_EmptyConfiguredIssuerSkipsCheck(t *testing.T) {
	v := NewTokenVerifier(config.JWTConfig{Secret: testSecret})
	c := adminClaims()
	c.Issuer = "anything-goes"
	token := signToken(t, c, testSecret)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "anything-goes", claims.Issuer)
}

func TestVerify_GarbageToken(t *testing.T) {
	v := newTestVerifier()

	_, err := v.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetIssuedAtTime(t *testing.T) {
	issued := time.Now().Add(-5 * time.Minute).Truncate(time.Second)
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issued),
		},
	}
	assert.Equal(t, issued.Unix(), c.GetIssuedAtTime().Unix())

	empty := &Claims{}
	assert.True(t, empty.GetIssuedAtTime().IsZero())
}

func TestClaims_GetExpiresAtTime(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	assert.Equal(t, expires.Unix(), c.GetExpiresAtTime().Unix())

	empty := &Claims{}
	assert.True(t, empty.GetExpiresAtTime().IsZero())
}
