package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/college-api/internal/models"
)

func TestNewPolicyRejectsDuplicates(t *testing.T) {
	_, err := NewPolicy("/auth/login", []Rule{
		{Method: "GET", Path: "/courses", Bucket: BucketAdmin},
		{Method: "GET", Path: "/courses", Bucket: BucketStaff},
	})
	require.Error(t, err)
}

func TestNewPolicyRejectsUnknownBucket(t *testing.T) {
	_, err := NewPolicy("/auth/login", []Rule{
		{Method: "GET", Path: "/courses", Bucket: Bucket("manager")},
	})
	require.Error(t, err)
}

func TestClassifyExactLookup(t *testing.T) {
	policy, err := NewPolicy("/auth/login", []Rule{
		{Method: "POST", Path: "/auth/login", Bucket: BucketPublic},
		{Method: "GET", Path: "/dashboard/admin", Bucket: BucketAdmin},
		{Method: "GET", Path: "/attendance/mine", Bucket: BucketStudent},
	})
	require.NoError(t, err)

	assert.Equal(t, BucketPublic, policy.Classify("POST", "/auth/login"))
	assert.Equal(t, BucketAdmin, policy.Classify("GET", "/dashboard/admin"))
	assert.Equal(t, BucketStudent, policy.Classify("GET", "/attendance/mine"))

	// Same path, different method: no rule applies.
	assert.Equal(t, BucketAuthenticated, policy.Classify("DELETE", "/dashboard/admin"))
	// Unlisted routes require a session.
	assert.Equal(t, BucketAuthenticated, policy.Classify("GET", "/notifications"))
	assert.Equal(t, BucketAuthenticated, policy.Classify("GET", ""))
}

func TestAllowsIsRoleExclusive(t *testing.T) {
	policy, err := NewPolicy("", nil)
	require.NoError(t, err)

	assert.True(t, policy.Allows(BucketAdmin, models.RoleHOD))
	assert.False(t, policy.Allows(BucketAdmin, models.RoleStaff))
	assert.False(t, policy.Allows(BucketAdmin, models.RoleStudent))

	assert.True(t, policy.Allows(BucketStaff, models.RoleStaff))
	assert.False(t, policy.Allows(BucketStaff, models.RoleHOD))

	assert.True(t, policy.Allows(BucketStudent, models.RoleStudent))
	assert.False(t, policy.Allows(BucketStudent, models.RoleStaff))

	for _, role := range []models.UserRole{models.RoleHOD, models.RoleStaff, models.RoleStudent} {
		assert.True(t, policy.Allows(BucketAuthenticated, role))
		assert.True(t, policy.Allows(BucketPublic, role))
	}
}

func TestHomePathPerRole(t *testing.T) {
	assert.Equal(t, "/dashboard/admin", HomePath(models.RoleHOD))
	assert.Equal(t, "/dashboard/staff", HomePath(models.RoleStaff))
	assert.Equal(t, "/dashboard/student", HomePath(models.RoleStudent))
	assert.Equal(t, "/", HomePath(models.UserRole("unknown")))
}
