package services

import (
	"fmt"
	"time"

	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "credential-vault"

// JWTService mints and validates the access tokens that attribute a caller
// identity to each request.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

type Claims struct {
	Identity string `json:"identity"`
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *JWTService) GenerateToken(identity vault.Identity) (*Token, error) {
	if identity == "" {
		return nil, vault.ErrIdentityRequired
	}

	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := Claims{
		Identity: string(identity),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   string(identity),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Identity == "" || claims.Identity != claims.Subject {
		return nil, fmt.Errorf("invalid identity in token")
	}

	return claims, nil
}

func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}
