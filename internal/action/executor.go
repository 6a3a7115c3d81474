package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/jenkins-users/internal/jenkins"
	"github.com/muurk/jenkins-users/internal/logging"
)

// ListHeader starts the text of a successful user listing
const ListHeader = "👥 Jenkins Users:"

// Client is the subset of *jenkins.Client the executor needs
type Client interface {
	CreateUser(ctx context.Context, account jenkins.Account) error
	ListUsers(ctx context.Context) ([]jenkins.User, error)
	AssignRole(ctx context.Context, assignment jenkins.RoleAssignment) error
	DeleteUser(ctx context.Context, username string) error
}

// Outcome is the result of one dispatched action
type Outcome struct {
	ID      string // Correlation id attached to the action's log lines
	Kind    Kind
	Success bool
	Message string   // Text shown to the user
	Users   []string // User ids, ListUsers only
	Err     error    // *jenkins.ValidationError or *jenkins.RequestError on failure
}

// Executor runs validated requests against a Jenkins client
type Executor struct {
	Client Client

	// Password is given to created accounts (jenkins.DefaultPassword when empty)
	Password string

	// Timeout bounds each request (no extra bound when zero)
	Timeout time.Duration
}

// NewExecutor creates an executor using the default password
func NewExecutor(client Client) *Executor {
	return &Executor{
		Client:   client,
		Password: jenkins.DefaultPassword,
	}
}

// Dispatch builds and runs an action. Invalid fields produce a failed
// outcome without any call to the client.
func (e *Executor) Dispatch(ctx context.Context, kind Kind, fields Fields) Outcome {
	req, err := Build(kind, fields)
	if err != nil {
		return Rejected(kind, fields.Trimmed().Username, err)
	}
	return e.Run(ctx, req)
}

// Rejected returns the failed outcome of a request that never left Build
func Rejected(kind Kind, subject string, err error) Outcome {
	id := uuid.NewString()
	logging.LogAction(id, kind.String(), subject, false, err)
	return Outcome{
		ID:      id,
		Kind:    kind,
		Message: jenkins.ShortMessage(err),
		Err:     err,
	}
}

// Run performs the single client call for req and renders the outcome text
func (e *Executor) Run(ctx context.Context, req Request) Outcome {
	out := Outcome{ID: uuid.NewString(), Kind: req.Kind}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	f := req.Fields
	var err error

	switch req.Kind {
	case CreateUser:
		err = e.Client.CreateUser(ctx, jenkins.Account{
			Username: f.Username,
			Password: e.Password,
			FullName: f.FullName,
			Email:    f.Email,
		})
		out.Message = createUserMessage(f.Username, err)

	case ListUsers:
		var users []jenkins.User
		users, err = e.Client.ListUsers(ctx)
		if err == nil {
			out.Users = jenkins.UserIDs(users)
		}
		out.Message = listUsersMessage(out.Users, err)

	case AssignRole:
		err = e.Client.AssignRole(ctx, jenkins.RoleAssignment{Username: f.Username, Role: f.Role})
		out.Message = assignRoleMessage(f.Username, f.Role, err)

	case DeleteUser:
		err = e.Client.DeleteUser(ctx, f.Username)
		out.Message = deleteUserMessage(f.Username, err)

	default:
		err = fmt.Errorf("unknown action %v", req.Kind)
		out.Message = "❌ " + err.Error()
	}

	out.Success = err == nil
	out.Err = err
	logging.LogAction(out.ID, req.Kind.String(), req.Subject(), out.Success, err)
	return out
}

func createUserMessage(username string, err error) string {
	if err != nil {
		return fmt.Sprintf("❌ Failed to create user '%s'.", username)
	}
	return fmt.Sprintf("✅ User '%s' created successfully.", username)
}

func listUsersMessage(ids []string, err error) string {
	if err != nil {
		return "❌ Failed to fetch user list."
	}
	return ListHeader + "\n" + strings.Join(ids, "\n")
}

func assignRoleMessage(username, role string, err error) string {
	if err != nil {
		return fmt.Sprintf("❌ Failed to assign role '%s' to '%s'.", role, username)
	}
	return fmt.Sprintf("✅ Role '%s' assigned to '%s'.", role, username)
}

func deleteUserMessage(username string, err error) string {
	if err != nil {
		return fmt.Sprintf("❌ Failed to delete user '%s'.", username)
	}
	return fmt.Sprintf("✅ User '%s' deleted successfully.", username)
}
