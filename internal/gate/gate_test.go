package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bersekolah/gateway/internal/models"
)

func sessionWithRole(role models.UserRole) *models.Session {
	return &models.Session{
		Token: "tok",
		User:  models.User{ID: "u1", Name: "Budi", Role: role},
	}
}

func TestEvaluate_NilSessionRedirectsToLogin(t *testing.T) {
	decision := Evaluate(nil, []models.UserRole{models.UserRoleUser}, "/form-pendaftaran")

	assert.Equal(t, Redirect, decision.Kind)
	assert.Equal(t, "/masuk?redirect=%2Fform-pendaftaran", decision.Target)
}

func TestEvaluate_NilSessionWithoutPath(t *testing.T) {
	decision := Evaluate(nil, []models.UserRole{models.UserRoleUser}, "")

	assert.Equal(t, Redirect, decision.Kind)
	assert.Equal(t, LoginPath, decision.Target)
}

func TestEvaluate_MatchingRoleAllows(t *testing.T) {
	decision := Evaluate(sessionWithRole(models.UserRoleBeswan),
		[]models.UserRole{models.UserRoleUser, models.UserRoleBeswan}, "/form-pendaftaran")

	assert.Equal(t, Allow, decision.Kind)
}

func TestEvaluate_AdminCrossRedirectsFromUserArea(t *testing.T) {
	for _, role := range []models.UserRole{models.UserRoleAdmin, models.UserRoleSuperAdmin} {
		t.Run(string(role), func(t *testing.T) {
			decision := Evaluate(sessionWithRole(role),
				[]models.UserRole{models.UserRoleUser, models.UserRoleBeswan}, "/form-pendaftaran")

			assert.Equal(t, Redirect, decision.Kind)
			assert.Equal(t, AdminAreaPath, decision.Target)
		})
	}
}

func TestEvaluate_UserDeniedFromAdminArea(t *testing.T) {
	decision := Evaluate(sessionWithRole(models.UserRoleUser),
		[]models.UserRole{models.UserRoleAdmin, models.UserRoleSuperAdmin}, "/dashboard")

	assert.Equal(t, Deny, decision.Kind)
	assert.Contains(t, decision.Reason, `"user"`)
}

// Every (session, requiredRoles) pair yields exactly one decision.
func TestEvaluate_Total(t *testing.T) {
	roles := []models.UserRole{
		models.UserRoleUser, models.UserRoleBeswan,
		models.UserRoleAdmin, models.UserRoleSuperAdmin,
		models.UserRole("garbage"),
	}
	requiredSets := [][]models.UserRole{
		nil,
		{models.UserRoleUser},
		{models.UserRoleUser, models.UserRoleBeswan},
		{models.UserRoleAdmin, models.UserRoleSuperAdmin},
	}

	sessions := []*models.Session{nil}
	for _, role := range roles {
		sessions = append(sessions, sessionWithRole(role))
	}

	for _, sess := range sessions {
		for _, required := range requiredSets {
			decision := Evaluate(sess, required, "/somewhere")
			switch decision.Kind {
			case Allow, Redirect, Deny:
			default:
				t.Fatalf("unexpected decision kind %q", decision.Kind)
			}
		}
	}
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, UserAreaPath, LandingPath(models.UserRoleUser))
	assert.Equal(t, UserAreaPath, LandingPath(models.UserRoleBeswan))
	assert.Equal(t, AdminAreaPath, LandingPath(models.UserRoleAdmin))
	assert.Equal(t, AdminAreaPath, LandingPath(models.UserRoleSuperAdmin))
}
