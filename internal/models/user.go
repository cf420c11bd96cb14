package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleBeswan     UserRole = "beswan"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "superadmin"
)

// IsAdministrative reports whether the role belongs to the dashboard area.
func (r UserRole) IsAdministrative() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// UnmarshalJSON tolerates the id arriving as either a JSON string or a
// number; the core API is not consistent about which it sends.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	u.ID = ""
	if len(aux.ID) == 0 || string(aux.ID) == "null" {
		return nil
	}
	if err := json.Unmarshal(aux.ID, &u.ID); err == nil {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.ID, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = n.String()
	return nil
}

// Session is the triple kept per browser session: the upstream bearer token,
// the user profile, and the moment of login. The three travel together; a
// session missing any of them is corrupt and gets cleared on read.
type Session struct {
	Token          string
	User           User
	LoginTimestamp time.Time
}

// SessionTTL is how long a session stays readable after login. Expiry is
// enforced lazily on read, never by a timer.
const SessionTTL = 24 * time.Hour

func (s Session) ExpiredAt(now time.Time) bool {
	return now.Sub(s.LoginTimestamp) > SessionTTL
}
