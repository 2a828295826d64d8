package common

import (
	"testing"
	"time"

	"ecom-admin/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jwtTestConfig struct {
	expiresIn string
	secret    string
	issuer    string
}

func (c jwtTestConfig) TokenExpiresIn() string { return c.expiresIn }
func (c jwtTestConfig) TokenSecret() string    { return c.secret }
func (c jwtTestConfig) TokenIssuer() string    { return c.issuer }

func testUser() *domain.User {
	return &domain.User{
		SQLModel: domain.SQLModel{ID: "9b4e8a1c-2f3d-4e5f-8a9b-0c1d2e3f4a5b"},
		Email:    "admin@example.com",
		RoleID:   "role-1",
	}
}

func TestJWTProvider_ExpiresIn(t *testing.T) {
	tests := []struct {
		configured string
		want       time.Duration
	}{
		{"15m", 15 * time.Minute},
		{"1h", time.Hour},
		{"8h", 8 * time.Hour},
		{"24h", 24 * time.Hour},
		{"168h", 168 * time.Hour},
		{"30s", DefaultTokenExpiry},
		{"2h", DefaultTokenExpiry},
		{"", DefaultTokenExpiry},
	}
	for _, tt := range tests {
		provider := NewJWTProvider(jwtTestConfig{expiresIn: tt.configured, secret: "secret"})
		assert.Equal(t, tt.want, provider.ExpiresIn(), "configured %q", tt.configured)
	}
}

func TestJWTProvider_GenerateAndVerify(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{expiresIn: "1h", secret: "test-secret", issuer: "ecom-admin"})
	user := testUser()

	token, expiresIn, err := provider.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := provider.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID())
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.RoleID, claims.RoleID)
	assert.Equal(t, "ecom-admin", claims.Issuer)
}

func TestJWTProvider_VerifyRejectsWrongSecret(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{expiresIn: "1h", secret: "right-secret"})
	token, _, err := provider.Generate(testUser())
	require.NoError(t, err)

	other := NewJWTProvider(jwtTestConfig{expiresIn: "1h", secret: "wrong-secret"})
	_, err = other.Verify(token)
	assert.Error(t, err)

	// Decode tolerates expiry, not a bad signature.
	_, err = other.Decode(token)
	assert.Error(t, err)
}

func expiredToken(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := domain.JwtClaims{
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTProvider_ExpiredToken(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{expiresIn: "1h", secret: "test-secret"})
	token := expiredToken(t, "test-secret", "user-1")

	_, err := provider.Verify(token)
	assert.Error(t, err, "Verify must reject an expired token")

	claims, err := provider.Decode(token)
	require.NoError(t, err, "Decode must tolerate an expired token")
	assert.Equal(t, "user-1", claims.SubjectID())
}

func TestJwtClaims_SubjectID_LegacyFallback(t *testing.T) {
	claims := &domain.JwtClaims{LegacyUID: "legacy-id"}
	assert.Equal(t, "legacy-id", claims.SubjectID())

	claims.Subject = "canonical-id"
	assert.Equal(t, "canonical-id", claims.SubjectID())
}

func TestJWTProvider_VerifyRejectsUnsignedToken(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{expiresIn: "1h", secret: "test-secret"})
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = provider.Verify(unsigned)
	assert.Error(t, err)
	_, err = provider.Decode(unsigned)
	assert.Error(t, err)
}
