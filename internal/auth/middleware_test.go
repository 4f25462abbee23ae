package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret, userID string, expiry time.Duration) string {
	t.Helper()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	middleware := NewMiddleware("secret")

	t.Run("valid token", func(t *testing.T) {
		claims, err := middleware.ValidateToken(sign(t, "secret", "u1", time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := middleware.ValidateToken(sign(t, "other", "u1", time.Hour))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := middleware.ValidateToken(sign(t, "secret", "u1", -time.Hour))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := middleware.ValidateToken(sign(t, "secret", "", time.Hour))
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthenticate(t *testing.T) {
	middleware := NewMiddleware("secret")

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value("userID").(string)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes identity through", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer "+sign(t, "secret", "u7", time.Hour))
		recorder := httptest.NewRecorder()

		middleware.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "u7", seenUserID)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()

		middleware.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Token abc")
		recorder := httptest.NewRecorder()

		middleware.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	middleware := NewMiddleware("secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	middleware.OptionalAuthenticate(next).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
