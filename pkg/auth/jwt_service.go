package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the identity the auth service vouches for. Tokens are issued by
// the external auth service; this service only verifies them.
type Principal struct {
	UserID      uuid.UUID
	Email       string
	Roles       []string
	DisplayName string
}

func (p Principal) HasAnyRole(required ...string) bool {
	for _, have := range p.Roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

type JWTService struct {
	secretKey []byte
}

type gatewayClaims struct {
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	DisplayName string   `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string) *JWTService {
	return &JWTService{secretKey: []byte(secretKey)}
}

func (s *JWTService) ValidateToken(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &gatewayClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature algorithm: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*gatewayClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("error when parsing token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}

	return &Principal{
		UserID:      userID,
		Email:       claims.Email,
		Roles:       claims.Roles,
		DisplayName: claims.DisplayName,
	}, nil
}

// SignToken mirrors the auth service's token format. Only used by tests and
// local seeding.
func (s *JWTService) SignToken(p Principal, lifespan time.Duration) (string, error) {
	claims := gatewayClaims{
		Email:       p.Email,
		Roles:       p.Roles,
		DisplayName: p.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifespan)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   p.UserID.String(),
			Issuer:    "campus-auth-service",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("cannot sign token: %w", err)
	}

	return signedString, nil
}
