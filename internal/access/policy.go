package access

import (
	"fmt"
	"strings"

	"github.com/campushub/college-api/internal/models"
)

// Bucket is the access classification of a route.
type Bucket string

const (
	// BucketPublic routes require no session.
	BucketPublic Bucket = "public"
	// BucketAdmin routes are reachable by HOD accounts only.
	BucketAdmin Bucket = "admin"
	// BucketStaff routes are reachable by staff accounts only.
	BucketStaff Bucket = "staff"
	// BucketStudent routes are reachable by student accounts only.
	BucketStudent Bucket = "student"
	// BucketAuthenticated routes require a session but no specific role.
	// It is also the default for routes missing from the table.
	BucketAuthenticated Bucket = "authenticated"
)

// Rule binds one registered route to a bucket.
type Rule struct {
	Method string
	Path   string
	Bucket Bucket
}

// Policy is the route table resolved once at startup. Classification is an
// exact lookup on the registered route pattern (method + path), so there is
// no ordering or prefix ambiguity: a route either has an explicit rule or
// falls back to BucketAuthenticated.
type Policy struct {
	table      map[string]Bucket
	loginRoute string
}

// NewPolicy builds the table, rejecting duplicate route entries.
func NewPolicy(loginRoute string, rules []Rule) (*Policy, error) {
	table := make(map[string]Bucket, len(rules))
	for _, rule := range rules {
		key := routeKey(rule.Method, rule.Path)
		if _, exists := table[key]; exists {
			return nil, fmt.Errorf("duplicate access rule for %s", key)
		}
		switch rule.Bucket {
		case BucketPublic, BucketAdmin, BucketStaff, BucketStudent, BucketAuthenticated:
		default:
			return nil, fmt.Errorf("unknown bucket %q for %s", rule.Bucket, key)
		}
		table[key] = rule.Bucket
	}
	return &Policy{table: table, loginRoute: loginRoute}, nil
}

// Classify returns the bucket for a registered route pattern. Unregistered
// or unlisted routes default to authentication-required.
func (p *Policy) Classify(method, routePath string) Bucket {
	if routePath == "" {
		return BucketAuthenticated
	}
	if bucket, ok := p.table[routeKey(method, routePath)]; ok {
		return bucket
	}
	return BucketAuthenticated
}

// Allows reports whether a role satisfies the bucket.
func (p *Policy) Allows(bucket Bucket, role models.UserRole) bool {
	switch bucket {
	case BucketPublic, BucketAuthenticated:
		return true
	case BucketAdmin:
		return role == models.RoleHOD
	case BucketStaff:
		return role == models.RoleStaff
	case BucketStudent:
		return role == models.RoleStudent
	default:
		return false
	}
}

// IsLoginRoute reports whether the route is the login entry point, which
// bounces already-authenticated callers to their dashboard.
func (p *Policy) IsLoginRoute(routePath string) bool {
	return p.loginRoute != "" && routePath == p.loginRoute
}

// HomePath returns the dashboard route for a role.
func HomePath(role models.UserRole) string {
	switch role {
	case models.RoleHOD:
		return "/dashboard/admin"
	case models.RoleStaff:
		return "/dashboard/staff"
	case models.RoleStudent:
		return "/dashboard/student"
	default:
		return "/"
	}
}

// LoginPath is where unauthenticated callers are pointed.
const LoginPath = "/auth/login"

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
