package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/masspath/masspath/backend/internal/types"
)

type staticValidator map[string]string

func (v staticValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	sub, ok := v[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}, Email: sub + "@umass.edu"}, nil
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestEngine(AuthMiddleware(staticValidator{"good": "user-1"}))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c)+" "+c.GetString(EmailKey))
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "user-1 user-1@umass.edu"},
		{"missing", "", http.StatusUnauthorized, `{"error":"missing authorization header"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"error":"invalid authorization header format"}`},
		{"bad token", "Bearer nope", http.StatusUnauthorized, `{"error":"invalid token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}
