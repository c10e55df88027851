package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkenzh/buildops/internal/auth"
	"github.com/dkenzh/buildops/internal/model"
)

func testRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/", Auth(tokens))
	authed.GET("/me", func(c *gin.Context) {
		principal, _ := MustPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": principal})
	})
	authed.GET("/admin", RequireRoles(model.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func issueToken(t *testing.T, tokens *auth.TokenManager, role model.Role) string {
	t.Helper()
	token, err := tokens.Issue(&model.User{ID: uuid.New(), Name: "Dana", Role: role})
	require.NoError(t, err)
	return token
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsForgedToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	forger := auth.NewTokenManager("other-secret", time.Hour)
	router := testRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, forger, model.RoleAdmin))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleUser))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleManager))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleAdmin))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
