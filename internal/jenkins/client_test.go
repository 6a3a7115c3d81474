package jenkins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const mockPeopleResponse = `{"_class":"hudson.model.View$AsynchPeople$People","users":[{"id":"alice","fullName":"Alice A"},{"id":"bob","fullName":"Bob B"}]}`

const mockSignupErrorPage = `<html><body>
<form method="post" action="createAccountByAdmin">
  <div class="error">User name is already taken</div>
  <input name="username" value="alice">
</form>
</body></html>`

const mockSignupFormPage = `<html><body>
<form method="post" action="/securityRealm/createAccountByAdmin/">
  <input name="username" value="">
</form>
</body></html>`

func testCredentials(baseURL string) Credentials {
	return Credentials{BaseURL: baseURL, Username: "admin", Token: "11abcdef"}
}

// closedServerURL returns the address of a server that no longer listens
func closedServerURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()
	return addr
}

func TestNewClient(t *testing.T) {
	client := NewClient(testCredentials("https://ci.example.com/ "))

	if client.BaseURL() != "https://ci.example.com" {
		t.Errorf("BaseURL() = %s, want https://ci.example.com", client.BaseURL())
	}
	if client.Username() != "admin" {
		t.Errorf("Username() = %s, want admin", client.Username())
	}
	if client.HTTPClient == nil {
		t.Fatal("HTTPClient should not be nil")
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
	if !strings.HasPrefix(client.UserAgent, "jenkins-users/") {
		t.Errorf("UserAgent = %s, want jenkins-users/ prefix", client.UserAgent)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient(testCredentials("http://localhost"))

	client.SetTimeout(5 * time.Second)
	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}

	client.SetTimeout(0)
	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, zero should be ignored", client.HTTPClient.Timeout)
	}
}

func TestCreateUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/securityRealm/createAccountByAdmin" {
			t.Errorf("Path = %s, want /securityRealm/createAccountByAdmin", r.URL.Path)
		}

		user, token, ok := r.BasicAuth()
		if !ok || user != "admin" || token != "11abcdef" {
			t.Errorf("BasicAuth = %s/%s/%v, want admin/11abcdef/true", user, token, ok)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %s", ct)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "jenkins-users/") {
			t.Errorf("User-Agent = %s", ua)
		}

		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error = %v", err)
		}
		want := map[string]string{
			"username":  "alice",
			"password1": DefaultPassword,
			"password2": DefaultPassword,
			"fullname":  "Alice A",
			"email":     "alice@example.com",
		}
		for k, v := range want {
			if got := r.FormValue(k); got != v {
				t.Errorf("form %s = %q, want %q", k, got, v)
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html><body><table id="people"></table></body></html>`))
	}))
	defer server.Close()

	client := NewClient(testCredentials(server.URL))
	err := client.CreateUser(context.Background(), Account{
		Username: "alice",
		FullName: "Alice A",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
}

func TestCreateUser_RejectedPage(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		contains string
	}{
		{"error element", mockSignupErrorPage, "already taken"},
		{"form returned", mockSignupFormPage, "signup form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.page))
			}))
			defer server.Close()

			client := NewClient(testCredentials(server.URL))
			err := client.CreateUser(context.Background(), Account{Username: "alice", FullName: "A", Email: "a@b"})
			if err == nil {
				t.Fatal("CreateUser() should fail on a rejected signup page")
			}
			if !IsRejected(err) {
				t.Errorf("IsRejected() = false, error = %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestCreateUser_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/securityRealm/createAccountByAdmin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/securityRealm/", http.StatusFound)
	})
	mux.HandleFunc("/securityRealm/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>Users</body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testCredentials(server.URL))
	if err := client.CreateUser(context.Background(), Account{Username: "alice"}); err != nil {
		t.Errorf("CreateUser() error = %v", err)
	}
}

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/asynchPeople/api/json" {
			t.Errorf("Path = %s, want /asynchPeople/api/json", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mockPeopleResponse))
	}))
	defer server.Close()

	client := NewClient(testCredentials(server.URL))
	users, err := client.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	ids := UserIDs(users)
	if len(ids) != 2 || ids[0] != "alice" || ids[1] != "bob" {
		t.Errorf("ids = %v, want [alice bob]", ids)
	}
	if users[0].FullName != "Alice A" {
		t.Errorf("FullName = %s, want Alice A", users[0].FullName)
	}
}

func TestListUsers_Bodies(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIDs   int
		wantParse bool
	}{
		{"missing users field", `{}`, 0, false},
		{"empty users", `{"users":[]}`, 0, false},
		{"entry without id", `{"users":[{"fullName":"ghost"},{"id":"carol"}]}`, 1, false},
		{"not json", `<html>login</html>`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			users, err := NewClient(testCredentials(server.URL)).ListUsers(context.Background())
			if tt.wantParse {
				if !IsParseError(err) {
					t.Errorf("error = %v, want parse error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListUsers() error = %v", err)
			}
			if len(users) != tt.wantIDs {
				t.Errorf("len(users) = %d, want %d", len(users), tt.wantIDs)
			}
		})
	}
}

func TestAssignRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/role-strategy/strategy/assignRole" {
			t.Errorf("Path = %s, want /role-strategy/strategy/assignRole", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error = %v", err)
		}
		if got := r.FormValue("type"); got != GlobalRoles {
			t.Errorf("type = %s, want %s", got, GlobalRoles)
		}
		if got := r.FormValue("roleName"); got != "developer" {
			t.Errorf("roleName = %s, want developer", got)
		}
		if got := r.FormValue("sid"); got != "alice" {
			t.Errorf("sid = %s, want alice", got)
		}
	}))
	defer server.Close()

	client := NewClient(testCredentials(server.URL))
	err := client.AssignRole(context.Background(), RoleAssignment{Username: "alice", Role: "developer"})
	if err != nil {
		t.Fatalf("AssignRole() error = %v", err)
	}
}

func TestDeleteUser_EscapesUsername(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		gotPath = r.URL.EscapedPath()
	}))
	defer server.Close()

	client := NewClient(testCredentials(server.URL))
	if err := client.DeleteUser(context.Background(), "john doe/x"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	want := "/securityRealm/user/john%20doe%2Fx/doDelete"
	if gotPath != want {
		t.Errorf("path = %s, want %s", gotPath, want)
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantAuth bool
		wantHTTP bool
	}{
		{"unauthorized", http.StatusUnauthorized, true, false},
		{"forbidden", http.StatusForbidden, true, false},
		{"not found", http.StatusNotFound, false, true},
		{"server error", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("details that should not leak"))
			}))
			defer server.Close()

			err := NewClient(testCredentials(server.URL)).DeleteUser(context.Background(), "alice")
			if err == nil {
				t.Fatal("DeleteUser() should fail")
			}
			if IsAuthError(err) != tt.wantAuth {
				t.Errorf("IsAuthError() = %v, want %v", IsAuthError(err), tt.wantAuth)
			}
			if IsHTTPError(err) != tt.wantHTTP {
				t.Errorf("IsHTTPError() = %v, want %v", IsHTTPError(err), tt.wantHTTP)
			}
			if !strings.Contains(err.Error(), "alice") {
				t.Errorf("error = %q, want it to name alice", err.Error())
			}
			if strings.Contains(err.Error(), "leak") {
				t.Errorf("error = %q, must not include the response body", err.Error())
			}

			re, _ := asRequestError(err)
			if re.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", re.StatusCode, tt.status)
			}
		})
	}
}

func TestConnectionFailure_AllOperations(t *testing.T) {
	client := NewClient(testCredentials(closedServerURL()))
	ctx := context.Background()

	_, listErr := client.ListUsers(ctx)
	errs := map[string]error{
		OpCreateUser: client.CreateUser(ctx, Account{Username: "alice"}),
		OpListUsers:  listErr,
		OpAssignRole: client.AssignRole(ctx, RoleAssignment{Username: "alice", Role: "dev"}),
		OpDeleteUser: client.DeleteUser(ctx, "alice"),
	}

	for op, err := range errs {
		if !IsRequestError(err) {
			t.Errorf("%s: error = %v, want RequestError", op, err)
			continue
		}
		if !IsNetworkError(err) {
			t.Errorf("%s: IsNetworkError() = false, error = %v", op, err)
		}
		re, _ := asRequestError(err)
		if re.Op != op {
			t.Errorf("Op = %s, want %s", re.Op, op)
		}
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(testCredentials(server.URL))
	client.SetTimeout(50 * time.Millisecond)

	err := client.Ping(context.Background())
	re, ok := asRequestError(err)
	if !ok {
		t.Fatalf("error = %v, want RequestError", err)
	}
	if re.Kind != KindTimeout {
		t.Errorf("Kind = %v, want %v", re.Kind, KindTimeout)
	}
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	client := NewClient(testCredentials(closedServerURL()))
	ctx := context.Background()

	for i := 0; i < breakerFailures; i++ {
		err := client.Ping(ctx)
		re, ok := asRequestError(err)
		if !ok || re.Kind == KindUnavailable {
			t.Fatalf("attempt %d: error = %v, want a connection error", i+1, err)
		}
	}

	err := client.Ping(ctx)
	re, ok := asRequestError(err)
	if !ok || re.Kind != KindUnavailable {
		t.Fatalf("error = %v, want KindUnavailable", err)
	}
	if !IsNetworkError(err) {
		t.Error("Unavailable should count as a network error")
	}
}

func TestCircuitBreaker_IgnoresStatusFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testCredentials(server.URL))
	for i := 0; i < breakerFailures*2; i++ {
		if err := client.Ping(context.Background()); !IsHTTPError(err) {
			t.Fatalf("attempt %d: error = %v, want HTTP error", i+1, err)
		}
	}

	if got := atomic.LoadInt32(&calls); got != breakerFailures*2 {
		t.Errorf("server saw %d requests, want %d", got, breakerFailures*2)
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/json" {
			t.Errorf("Path = %s, want /api/json", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"mode":"NORMAL"}`))
	}))
	defer server.Close()

	if err := NewClient(testCredentials(server.URL)).Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
