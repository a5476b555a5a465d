package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func newTokens(t *testing.T, secret string) utils.TokenManager {
	t.Helper()
	tokens, err := utils.NewTokenManager(utils.JWTConfig{Secret: secret, ExpiryHours: 1})
	require.NoError(t, err)
	return tokens
}

// identityEcho answers 200 and the admin flag it found in the context.
var identityEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	if identity.IsAdmin {
		w.Write([]byte("admin"))
		return
	}
	w.Write([]byte("user"))
})

func TestAuth(t *testing.T) {
	tokens := newTokens(t, "secret-a")
	userToken, err := tokens.Generate(bson.NewObjectID(), false)
	require.NoError(t, err)
	adminToken, err := tokens.Generate(bson.NewObjectID(), true)
	require.NoError(t, err)
	foreignToken, err := newTokens(t, "secret-b").Generate(bson.NewObjectID(), true)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		admin      bool
		wantStatus int
		wantBody   string
	}{
		{name: "no token", token: "", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", token: "abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", token: foreignToken, wantStatus: http.StatusUnauthorized},
		{name: "user", token: userToken, wantStatus: http.StatusOK, wantBody: "user"},
		{name: "admin", token: adminToken, wantStatus: http.StatusOK, wantBody: "admin"},
		{name: "admin route, no token", token: "", admin: true, wantStatus: http.StatusUnauthorized},
		{name: "admin route, user", token: userToken, admin: true, wantStatus: http.StatusForbidden},
		{name: "admin route, admin", token: adminToken, admin: true, wantStatus: http.StatusOK, wantBody: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h http.Handler = identityEcho
			if tt.admin {
				h = Admin(zap.NewNop())(h)
			}
			h = Auth(tokens, zap.NewNop())(h)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set(AuthHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := newTokens(t, "secret-a")
	token, err := tokens.Generate(bson.NewObjectID(), false)
	require.NoError(t, err)

	expired, err := utils.NewTokenManager(utils.JWTConfig{Secret: "secret-a", ExpiryHours: 1},
		utils.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) }))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AuthHeader, token)
	rec := httptest.NewRecorder()
	Auth(expired, zap.NewNop())(identityEcho).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}
