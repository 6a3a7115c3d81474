// Package jenkins provides an HTTP client for the user-management endpoints of
// a Jenkins server.
//
// The client covers the four administrative actions of jenkins-users plus a
// connectivity check. Every call issues exactly one HTTP request with Basic
// auth (username and API token) and maps the response to nil or a typed
// error.
//
// # Endpoints
//
//   - CreateUser: POST /securityRealm/createAccountByAdmin
//   - ListUsers:  GET  /asynchPeople/api/json
//   - AssignRole: POST /role-strategy/strategy/assignRole (needs the Role-based Authorization Strategy plugin)
//   - DeleteUser: POST /securityRealm/user/{username}/doDelete
//   - Ping:       GET  /api/json
//
// # Usage Example
//
//	client := jenkins.NewClient(jenkins.Credentials{
//	    BaseURL:  "https://ci.example.com",
//	    Username: "admin",
//	    Token:    token,
//	})
//
//	users, err := client.ListUsers(ctx)
//	if err != nil {
//	    fmt.Println(jenkins.ShortMessage(err))
//	    return err
//	}
//
// # Errors
//
// Input rejected before dispatch is a *ValidationError. Everything after
// dispatch is a *RequestError whose Kind separates connection failures
// (timeout, refused, DNS, unreachable) from status-code failures and from
// 200 pages that carry a Jenkins form error.
//
// A circuit breaker sits in front of the transport. After repeated
// connection failures requests fail fast with KindUnavailable for a short
// while instead of waiting on a dead server.
package jenkins
