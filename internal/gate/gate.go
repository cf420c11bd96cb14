package gate

import (
	"fmt"
	"net/url"

	"bersekolah/gateway/internal/models"
)

const (
	LoginPath     = "/masuk"
	UserAreaPath  = "/form-pendaftaran"
	AdminAreaPath = "/dashboard"
)

type DecisionKind string

const (
	Allow    DecisionKind = "allow"
	Redirect DecisionKind = "redirect"
	Deny     DecisionKind = "deny"
)

type Decision struct {
	Kind   DecisionKind
	Target string // redirect target, set when Kind == Redirect
	Reason string // human-readable explanation, set when Kind == Deny
}

// Evaluate decides what happens when a session knocks on a page requiring
// one of requiredRoles. Total: every input yields exactly one decision.
//
//   - no session: redirect to login, carrying the attempted path so a
//     successful login can land back where the visitor was headed
//   - admin roles knocking on the ordinary-user area: cross-redirect to the
//     dashboard instead of a bare denial, those roles are supersets in
//     practice
//   - any other role mismatch: deny, naming the actual role
func Evaluate(sess *models.Session, requiredRoles []models.UserRole, attemptedPath string) Decision {
	if sess == nil {
		target := LoginPath
		if attemptedPath != "" && attemptedPath != LoginPath {
			target = LoginPath + "?redirect=" + url.QueryEscape(attemptedPath)
		}
		return Decision{Kind: Redirect, Target: target}
	}

	role := sess.User.Role
	for _, required := range requiredRoles {
		if role == required {
			return Decision{Kind: Allow}
		}
	}

	if role.IsAdministrative() && isUserArea(requiredRoles) {
		return Decision{Kind: Redirect, Target: AdminAreaPath}
	}

	return Decision{
		Kind:   Deny,
		Reason: fmt.Sprintf("halaman ini tidak tersedia untuk peran %q", role),
	}
}

// LandingPath is where a fresh login gets sent, split by role.
func LandingPath(role models.UserRole) string {
	if role.IsAdministrative() {
		return AdminAreaPath
	}
	return UserAreaPath
}

func isUserArea(requiredRoles []models.UserRole) bool {
	for _, role := range requiredRoles {
		if role == models.UserRoleUser || role == models.UserRoleBeswan {
			return true
		}
	}
	return false
}
