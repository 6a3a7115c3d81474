package action

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four user-management actions
type Kind int

const (
	CreateUser Kind = iota
	ListUsers
	AssignRole
	DeleteUser
)

// Kinds lists every action in form order
var Kinds = []Kind{CreateUser, ListUsers, AssignRole, DeleteUser}

// String returns the action name used in logs and errors
func (k Kind) String() string {
	switch k {
	case CreateUser:
		return "create user"
	case ListUsers:
		return "list users"
	case AssignRole:
		return "assign role"
	case DeleteUser:
		return "delete user"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Label returns the button caption for the action
func (k Kind) Label() string {
	switch k {
	case CreateUser:
		return "Create User"
	case ListUsers:
		return "List Users"
	case AssignRole:
		return "Assign Role"
	case DeleteUser:
		return "Delete User"
	default:
		return k.String()
	}
}

// ParseKind accepts "create-user", "create user", "create_user", "createuser"
// and the short forms "create", "list", "assign" and "delete".
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "createuser", "create":
		return CreateUser, nil
	case "listusers", "list":
		return ListUsers, nil
	case "assignrole", "assign":
		return AssignRole, nil
	case "deleteuser", "delete":
		return DeleteUser, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
