package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/notetoc/internal/pkg/jwt"
)

func TestSessionAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("s")
	token, err := jwt.GenerateToken("u1", "s1", secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		aborted bool
	}{
		{name: "no credentials", prepare: func(r *http.Request) {}, aborted: true},
		{name: "cookie", prepare: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		}},
		{name: "bearer", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }},
		{name: "bad scheme", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, aborted: true},
		{name: "bad token", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer junk") }, aborted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			tt.prepare(c.Request)
			SessionAuth(secret)(c)
			require.Equal(t, tt.aborted, c.IsAborted())
			if !tt.aborted {
				require.Equal(t, "u1", c.GetString(ContextUserIDKey))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RequestID()(c)
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(RequestIDHeader, "given")
	RequestID()(c)
	require.Equal(t, "given", rec.Header().Get(RequestIDHeader))
}
