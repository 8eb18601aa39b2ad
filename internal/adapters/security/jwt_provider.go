package security

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const (
	msgTokenMissing = "token missing"
	msgTokenExpired = "token expired"
	msgTokenInvalid = "invalid token"
)

// Claims is the token payload
type Claims struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// JWTProvider implements TokenProvider with HS256 signed tokens
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTProvider creates a token provider
func NewJWTProvider(secret string, ttl time.Duration) providers.TokenProvider {
	return &JWTProvider{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for user that expires after the configured TTL
func (p *JWTProvider) Issue(user entities.PublicUser) (string, error) {
	issuedAt := p.now()
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(p.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded identity
func (p *JWTProvider) Verify(tokenString string) (*entities.PublicUser, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, apperrors.NewUnauthorizedError(msgTokenMissing)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewUnauthorizedError(msgTokenExpired)
		}
		return nil, apperrors.NewUnauthorizedError(msgTokenInvalid)
	}
	if !token.Valid || claims.ExpiresAt == nil {
		return nil, apperrors.NewUnauthorizedError(msgTokenInvalid)
	}

	return &entities.PublicUser{
		ID:       claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
