package managers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the validity of an issued session token.
const TokenLifetime = time.Hour

var errInvalidSubject = errors.New("token carries no subject")

// JWTMgr issues and verifies the HS256 session tokens.
type JWTMgr interface {
	GenerateJWT(claims jwt.Claims) (string, error)
	ValidateJWT(tokenString string) (jwt.Claims, error)
	GenerateClaims(userId string) jwt.Claims
	ExtractUserId(claims jwt.Claims) (string, error)
}

// JWTManager handles JWT generation, signing, and validation with a shared secret.
type JWTManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTManager creates a new JWTManager signing with the given secret.
func NewJWTManager(secret []byte, issuer string) JWTMgr {
	return &JWTManager{
		secret: secret,
		issuer: issuer,
		now:    time.Now,
	}
}

// GenerateClaims binds a token to the user and lets it expire after TokenLifetime.
func (jm *JWTManager) GenerateClaims(userId string) jwt.Claims {
	issuedAt := jm.now()
	return jwt.RegisteredClaims{
		Issuer:    jm.issuer,
		Subject:   userId,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenLifetime)),
	}
}

// GenerateJWT generates a new JWT with the given claims.
func (jm *JWTManager) GenerateJWT(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.secret)
}

// ValidateJWT checks signature, algorithm, issuer and expiry and returns the claims if valid.
func (jm *JWTManager) ValidateJWT(tokenString string) (jwt.Claims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jm.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(jm.now),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

// ExtractUserId returns the subject of validated claims.
func (jm *JWTManager) ExtractUserId(claims jwt.Claims) (string, error) {
	subject, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("reading subject: %w", err)
	}
	if subject == "" {
		return "", errInvalidSubject
	}
	return subject, nil
}
