package session_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook/internal/notebook/adapters/session"
	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/db/redis"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	s := miniredis.RunT(t)
	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host, cfg.Port = host, port

	client, err := redis.NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestRedisStore_Session(t *testing.T) {
	ctx := context.Background()
	s, client := newRedis(t)
	store := session.NewRedisStore(client, "")

	require.NoError(t, s.Set("session:valid", `{"user":{"id":"ext-1","email":"ann@example.com","name":"Ann"}}`))
	require.NoError(t, s.Set("session:expired", `{"user":{"id":"ext-2"},"expiresAt":"2000-01-01T00:00:00Z"}`))
	require.NoError(t, s.Set("session:garbage", `{not json`))
	require.NoError(t, s.Set("session:anonymous", `{"user":{"email":"x@example.com"}}`))

	tests := []struct {
		name  string
		token string
		want  *entities.Identity
	}{
		{name: "valid", token: "valid", want: &entities.Identity{ExternalID: "ext-1", Email: "ann@example.com", Name: "Ann"}},
		{name: "no token", token: ""},
		{name: "unknown", token: "missing"},
		{name: "expired", token: "expired"},
		{name: "malformed", token: "garbage"},
		{name: "no user id", token: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := store.Session(ctx, services.Credentials{SessionToken: tt.token})
			require.NoError(t, err)
			assert.Equal(t, tt.want, identity)
		})
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, client := newRedis(t)
	store := session.NewRedisStore(client, "")
	s.Close()

	_, err := store.Session(context.Background(), services.Credentials{SessionToken: "valid"})

	require.Error(t, err)
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims session.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTVerifier_Session(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"
	verifier := session.NewJWTVerifier(secret, "auth-service")

	valid := session.Claims{
		Email: "ann@example.com",
		Name:  "Ann",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ext-1",
			Issuer:    "auth-service",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name  string
		token string
		want  *entities.Identity
	}{
		{
			name:  "valid",
			token: signToken(t, jwt.SigningMethodHS256, []byte(secret), valid),
			want:  &entities.Identity{ExternalID: "ext-1", Email: "ann@example.com", Name: "Ann"},
		},
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(secret), valid)},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, []byte(secret), expired)},
		{name: "wrong issuer", token: signToken(t, jwt.SigningMethodHS256, []byte(secret), wrongIssuer)},
		{name: "no subject", token: signToken(t, jwt.SigningMethodHS256, []byte(secret), noSubject)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := verifier.Session(ctx, services.Credentials{BearerToken: tt.token})
			require.NoError(t, err)
			assert.Equal(t, tt.want, identity)
		})
	}
}
