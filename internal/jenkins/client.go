package jenkins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/muurk/jenkins-users/internal/logging"
	"github.com/muurk/jenkins-users/internal/version"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultPassword is the initial password given to created accounts
	DefaultPassword = "password123"

	// GlobalRoles is the role type used by AssignRole
	GlobalRoles = "globalRoles"

	// breakerFailures is the number of consecutive transport failures that
	// opens the circuit breaker
	breakerFailures = 5

	// breakerTimeout is how long the breaker stays open
	breakerTimeout = 30 * time.Second
)

// Operation names carried by RequestError.Op
const (
	OpCreateUser = "create user"
	OpListUsers  = "list users"
	OpAssignRole = "assign role"
	OpDeleteUser = "delete user"
	OpPing       = "ping"
)

// Jenkins endpoint paths, relative to the server base URL
const (
	pathCreateAccount = "/securityRealm/createAccountByAdmin"
	pathPeople        = "/asynchPeople/api/json"
	pathAssignRole    = "/role-strategy/strategy/assignRole"
	pathDeleteUser    = "/securityRealm/user/%s/doDelete"
	pathAPI           = "/api/json"
)

// Client talks to the user-management endpoints of one Jenkins server.
// Every method issues exactly one HTTP request.
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string

	creds   Credentials
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// NewClient creates a client for the server and account in creds.
// The credentials are copied and cannot be changed afterwards.
func NewClient(creds Credentials) *Client {
	creds = creds.normalized()

	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  version.UserAgent(),
		creds:      creds,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:    "jenkins " + creds.BaseURL,
			Timeout: breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Warn("Circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

// BaseURL returns the server URL the client was created with
func (c *Client) BaseURL() string {
	return c.creds.BaseURL
}

// Username returns the account the client authenticates as
func (c *Client) Username() string {
	return c.creds.Username
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.HTTPClient.Timeout = timeout
	}
}

// CreateUser creates an account in the Jenkins user database.
// Jenkins answers a bad signup with 200 and the form again, so the
// returned page is checked for form errors.
func (c *Client) CreateUser(ctx context.Context, account Account) error {
	if account.Password == "" {
		account.Password = DefaultPassword
	}

	body, err := c.do(ctx, OpCreateUser, account.Username, http.MethodPost, pathCreateAccount, account.ToFormData())
	if err != nil {
		return err
	}

	if msg, rejected := inspectSignupPage(body); rejected {
		return NewRejectedError(OpCreateUser, account.Username, msg)
	}
	return nil
}

// ListUsers returns every user known to Jenkins.
// Entries without an id are skipped.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.do(ctx, OpListUsers, "", http.MethodGet, pathPeople, nil)
	if err != nil {
		return nil, err
	}

	var people peopleResponse
	if err := json.Unmarshal(body, &people); err != nil {
		return nil, NewParseError(OpListUsers, "failed to parse user list", err)
	}

	users := make([]User, 0, len(people.Users))
	for _, u := range people.Users {
		if u.ID == "" {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// AssignRole assigns a role to a user
func (c *Client) AssignRole(ctx context.Context, assignment RoleAssignment) error {
	_, err := c.do(ctx, OpAssignRole, assignment.Username, http.MethodPost, pathAssignRole, assignment.ToFormData())
	return err
}

// DeleteUser deletes a user from the Jenkins user database
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	path := fmt.Sprintf(pathDeleteUser, url.PathEscape(username))
	_, err := c.do(ctx, OpDeleteUser, username, http.MethodPost, path, url.Values{})
	return err
}

// Ping checks that the server is reachable and accepts the credentials
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, OpPing, "", http.MethodGet, pathAPI, nil)
	return err
}

// do performs one request and returns the body of a 200 response.
// A nil form sends no body; a non-nil form is sent url-encoded.
func (c *Client) do(ctx context.Context, op, subject, method, path string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.creds.BaseURL+path, reqBody)
	if err != nil {
		return nil, NewNetworkError(op, subject, "failed to create request", err)
	}

	req.SetBasicAuth(c.creds.Username, c.creds.Token)
	req.Header.Set("User-Agent", c.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.HTTPClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NewUnavailableError(op, subject, err)
		}
		return nil, NewNetworkError(op, subject, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogRequest(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, NewAuthError(op, subject, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(op, subject, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError(op, subject, "failed to read response body", err)
	}
	return body, nil
}
