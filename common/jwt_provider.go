package common

import (
	"errors"
	"time"

	"ecom-admin/domain"
	"ecom-admin/pkg/log"

	"github.com/golang-jwt/jwt/v5"
)

type JwtProviderConfig interface {
	TokenExpiresIn() string
	TokenSecret() string
	TokenIssuer() string
}

// allowedExpiries is the set of operator-configurable token lifetimes. An
// unrecognized value falls back to DefaultTokenExpiry so a misconfigured
// deployment can never mint unbounded-lifetime tokens.
var allowedExpiries = map[string]time.Duration{
	"15m":  15 * time.Minute,
	"1h":   time.Hour,
	"8h":   8 * time.Hour,
	"24h":  24 * time.Hour,
	"168h": 168 * time.Hour,
}

const DefaultTokenExpiry = 24 * time.Hour

type JWTProvider struct {
	cfg JwtProviderConfig
}

func NewJWTProvider(cfg JwtProviderConfig) *JWTProvider {
	return &JWTProvider{cfg: cfg}
}

// ExpiresIn returns the validated token lifetime.
func (j *JWTProvider) ExpiresIn() time.Duration {
	if d, ok := allowedExpiries[j.cfg.TokenExpiresIn()]; ok {
		return d
	}
	log.GetDefaultLogger().Warn("Unrecognized token expiry, using default",
		log.String("configured", j.cfg.TokenExpiresIn()),
		log.Duration("default", DefaultTokenExpiry),
	)
	return DefaultTokenExpiry
}

func (j *JWTProvider) Generate(user *domain.User) (string, int64, error) {
	expiresIn := j.ExpiresIn()
	claims := domain.JwtClaims{
		Email:  user.Email,
		RoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.TokenIssuer(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.TokenSecret()))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(expiresIn.Seconds()), nil
}

// Verify checks signature and expiry. Used on every protected path.
func (j *JWTProvider) Verify(tokenStr string) (*domain.JwtClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &domain.JwtClaims{}, j.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*domain.JwtClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Decode verifies the signature but tolerates an expired token. It exists for
// the refresh endpoint only; every other path must use Verify.
func (j *JWTProvider) Decode(tokenStr string) (*domain.JwtClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &domain.JwtClaims{}, j.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return nil, err
	}
	claims, ok := token.Claims.(*domain.JwtClaims)
	if !ok {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (j *JWTProvider) keyFunc(token *jwt.Token) (interface{}, error) {
	return []byte(j.cfg.TokenSecret()), nil
}
