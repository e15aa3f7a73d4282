package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/logger"
)

// ErrInvalidAlgorithm возвращается для токенов, подписанных не HMAC.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - утверждения токена сервиса аутентификации.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier проверяет bearer-токены, подписанные HS256 общим секретом.
type JWTVerifier struct {
	secretKey []byte
	issuer    string
}

// NewJWTVerifier создает провайдер сессий по JWT. Пустой issuer не проверяется.
func NewJWTVerifier(secretKey, issuer string) services.SessionProvider {
	return &JWTVerifier{secretKey: []byte(secretKey), issuer: issuer}
}

// Session возвращает identity из действительного токена или nil, nil.
func (v *JWTVerifier) Session(ctx context.Context, creds services.Credentials) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", "JWTVerifier.Session"))

	if creds.BearerToken == "" {
		return nil, nil
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(creds.BearerToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return v.secretKey, nil
	}, options...)
	if err != nil {
		log.Debug(ctx, "bearer token rejected", zap.Error(err))
		return nil, nil
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		log.Debug(ctx, "bearer token has no subject")
		return nil, nil
	}

	return &entities.Identity{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
	}, nil
}
