package action

import (
	"errors"
	"testing"

	"github.com/muurk/jenkins-users/internal/jenkins"
)

func TestBuild(t *testing.T) {
	full := Fields{Username: "alice", FullName: "Alice A", Email: "alice@example.com", Role: "developer"}

	tests := []struct {
		name        string
		kind        Kind
		fields      Fields
		wantMessage string
		wantMissing []string
	}{
		{"create ok", CreateUser, full, "", nil},
		{"create empty username", CreateUser, Fields{FullName: "A", Email: "a@b"}, MsgCreateUserFields, []string{"username"}},
		{"create whitespace only", CreateUser, Fields{Username: "  ", FullName: "\t", Email: "a@b"}, MsgCreateUserFields, []string{"username", "full name"}},
		{"create ignores role", CreateUser, Fields{Username: "a", FullName: "A", Email: "a@b"}, "", nil},
		{"list needs nothing", ListUsers, Fields{}, "", nil},
		{"assign ok", AssignRole, full, "", nil},
		{"assign missing role", AssignRole, Fields{Username: "alice"}, MsgAssignRoleFields, []string{"role"}},
		{"assign missing both", AssignRole, Fields{}, MsgAssignRoleFields, []string{"username", "role"}},
		{"delete ok", DeleteUser, Fields{Username: "alice"}, "", nil},
		{"delete missing", DeleteUser, Fields{FullName: "Alice"}, MsgDeleteUserFields, []string{"username"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(tt.kind, tt.fields)

			if tt.wantMessage == "" {
				if err != nil {
					t.Fatalf("Build() error = %v", err)
				}
				if req.Kind != tt.kind {
					t.Errorf("Kind = %v, want %v", req.Kind, tt.kind)
				}
				return
			}

			var ve *jenkins.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Build() error = %v, want ValidationError", err)
			}
			if ve.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", ve.Message, tt.wantMessage)
			}
			if len(ve.Fields) != len(tt.wantMissing) {
				t.Fatalf("Fields = %v, want %v", ve.Fields, tt.wantMissing)
			}
			for i := range ve.Fields {
				if ve.Fields[i] != tt.wantMissing[i] {
					t.Errorf("Fields[%d] = %s, want %s", i, ve.Fields[i], tt.wantMissing[i])
				}
			}
		})
	}
}

func TestBuild_TrimsFields(t *testing.T) {
	req, err := Build(AssignRole, Fields{Username: "  alice ", Role: "\tdeveloper\n"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if req.Fields.Username != "alice" || req.Fields.Role != "developer" {
		t.Errorf("Fields = %+v, want trimmed values", req.Fields)
	}
	if req.Subject() != "alice" {
		t.Errorf("Subject() = %s, want alice", req.Subject())
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build(Kind(42), Fields{})
	if err == nil {
		t.Fatal("Build() should fail for an unknown kind")
	}
	if jenkins.IsValidationError(err) {
		t.Error("unknown kind is not a validation error")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"create-user", CreateUser},
		{"Create User", CreateUser},
		{"list_users", ListUsers},
		{"list", ListUsers},
		{"assignrole", AssignRole},
		{"delete", DeleteUser},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Errorf("ParseKind(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseKind("promote"); err == nil {
		t.Error("ParseKind(promote) should fail")
	}
}

func TestKindStrings(t *testing.T) {
	for _, k := range Kinds {
		if k.String() == "" || k.Label() == "" {
			t.Errorf("kind %d has empty name", int(k))
		}
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), parsed, err, k)
		}
	}
}
