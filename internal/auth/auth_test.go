package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/cofre/internal/auth"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte(id))
}

func TestTokens_Middleware(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	h := tokens.Middleware(http.HandlerFunc(echoUser))

	valid, err := tokens.Sign("user-42", time.Hour)
	require.NoError(t, err)

	expired, err := tokens.Sign("user-42", -time.Minute)
	require.NoError(t, err)

	foreign, err := auth.NewTokens("other-secret").Sign("user-42", time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "Valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "user-42"},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "NotBearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "Expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "WrongSecret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "AlgNone", header: "Bearer " + unsigned, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
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

func TestAdminKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name       string
		hash       string
		key        string
		wantStatus int
	}{
		{name: "Valid", hash: string(hash), key: "s3cret", wantStatus: http.StatusNoContent},
		{name: "Wrong", hash: string(hash), key: "nope", wantStatus: http.StatusUnauthorized},
		{name: "Missing", hash: string(hash), wantStatus: http.StatusUnauthorized},
		{name: "NotConfigured", key: "s3cret", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.key != "" {
				req.Header.Set(auth.AdminKeyHeader, tt.key)
			}

			rec := httptest.NewRecorder()
			auth.AdminKey(tt.hash)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
