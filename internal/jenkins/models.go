package jenkins

import (
	"net/url"
	"strings"
)

// Credentials identifies the Jenkins server and the account used to manage it.
// A Credentials value is resolved once at startup and never modified.
type Credentials struct {
	BaseURL  string // e.g. "https://ci.example.com" (no trailing slash needed)
	Username string // Admin account name
	Token    string // API token for Username
}

// normalized returns a copy with the trailing slash removed from BaseURL
func (c Credentials) normalized() Credentials {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	return c
}

// Account is a new user for the Jenkins own-user-database security realm.
// Both password fields of the signup form receive Password.
type Account struct {
	Username string
	Password string
	FullName string
	Email    string
}

// ToFormData returns the createAccountByAdmin form body
func (a Account) ToFormData() url.Values {
	data := url.Values{}
	data.Set("username", a.Username)
	data.Set("password1", a.Password)
	data.Set("password2", a.Password)
	data.Set("fullname", a.FullName)
	data.Set("email", a.Email)
	return data
}

// RoleAssignment grants a role to a user (sid) in the role strategy plugin.
type RoleAssignment struct {
	Username string
	Role     string
	Type     string // Role type; GlobalRoles when empty
}

// ToFormData returns the assignRole form body
func (r RoleAssignment) ToFormData() url.Values {
	roleType := r.Type
	if roleType == "" {
		roleType = GlobalRoles
	}

	data := url.Values{}
	data.Set("type", roleType)
	data.Set("roleName", r.Role)
	data.Set("sid", r.Username)
	return data
}

// User is one entry of the people listing
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName,omitempty"`
}

// peopleResponse is the body of GET /asynchPeople/api/json
type peopleResponse struct {
	Users []User `json:"users"`
}

// UserIDs returns the identifiers of users, in order
func UserIDs(users []User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
