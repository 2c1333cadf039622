package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/college-api/internal/access"
	"github.com/campushub/college-api/internal/models"
)

func newAccessRouter(t *testing.T, claims *models.JWTClaims) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policy, err := access.NewPolicy("/auth/login", []access.Rule{
		{Method: "POST", Path: "/auth/login", Bucket: access.BucketPublic},
		{Method: "GET", Path: "/dashboard/admin", Bucket: access.BucketAdmin},
		{Method: "GET", Path: "/attendance/mine", Bucket: access.BucketStudent},
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	})
	r.Use(Access(policy))

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.POST("/auth/login", ok)
	r.GET("/dashboard/admin", ok)
	r.GET("/attendance/mine", ok)
	r.GET("/notifications", ok)
	return r
}

func decodeEnvelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func redirectOf(t *testing.T, envelope map[string]interface{}) string {
	t.Helper()
	meta, ok := envelope["meta"].(map[string]interface{})
	require.True(t, ok, "expected redirect meta")
	redirect, _ := meta["redirect"].(string)
	return redirect
}

func TestAccessPublicRouteWithoutSession(t *testing.T) {
	r := newAccessRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessProtectedRouteWithoutSession(t *testing.T) {
	r := newAccessRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, access.LoginPath, redirectOf(t, envelope))
}

func TestAccessRoleMismatchRedirectsHome(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStaff}
	r := newAccessRouter(t, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/attendance/mine", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "/dashboard/staff", redirectOf(t, envelope))
}

func TestAccessAdminRouteExcludesStudent(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u2", Role: models.RoleStudent}
	r := newAccessRouter(t, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "/dashboard/student", redirectOf(t, envelope))
}

func TestAccessMatchingRolePasses(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u3", Role: models.RoleHOD}
	r := newAccessRouter(t, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessLoginBouncesAuthenticatedCaller(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u4", Role: models.RoleStudent}
	r := newAccessRouter(t, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "/dashboard/student", redirectOf(t, envelope))
}

func TestAccessUnlistedRouteRequiresSession(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u5", Role: models.RoleStudent}
	r := newAccessRouter(t, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
