package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fooddash/api/ctxutil"
	"fooddash/config"
	"fooddash/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = &config.AuthConfig{JWTSecret: "test-secret", Issuer: "fooddash"}

func sign(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testAuth.JWTSecret))
	require.NoError(t, err)
	return token
}

func claimsFor(sub, role, issuer string, expires time.Time) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	actor := shared.Actor{UserID: 21, Role: shared.RoleRestaurantOwner}
	token, err := IssueToken(testAuth, actor, time.Hour)
	require.NoError(t, err)

	got, err := ParseToken(testAuth, token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestParseToken_Rejects(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(t, jwt.SigningMethodHS256, claimsFor("11", "CUSTOMER", "fooddash", time.Now().Add(-time.Minute)))},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, claimsFor("11", "CUSTOMER", "someone-else", future))},
		{"unknown role", sign(t, jwt.SigningMethodHS256, claimsFor("11", "CHEF", "fooddash", future))},
		{"non numeric subject", sign(t, jwt.SigningMethodHS256, claimsFor("alice", "CUSTOMER", "fooddash", future))},
		{"zero subject", sign(t, jwt.SigningMethodHS256, claimsFor("0", "CUSTOMER", "fooddash", future))},
		{"other hmac", sign(t, jwt.SigningMethodHS512, claimsFor("11", "CUSTOMER", "fooddash", future))},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(testAuth, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestParseToken_LowercaseRole(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, claimsFor("31", "delivery_partner", "fooddash", time.Now().Add(time.Hour)))
	actor, err := ParseToken(testAuth, token)
	require.NoError(t, err)
	assert.Equal(t, shared.Actor{UserID: 31, Role: shared.RoleDeliveryPartner}, actor)
}

func TestActorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", ActorMiddleware(testAuth), func(c *gin.Context) {
		actor, ok := ctxutil.ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
	})

	token, err := IssueToken(testAuth, shared.Actor{UserID: 11, Role: shared.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"basic auth", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"tampered", "Bearer " + token + "x", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":11,"role":"CUSTOMER"}`, w.Body.String())
			}
		})
	}
}
