// Package urls keeps the documentation links shown to users in one place.
//
// Troubleshooting hints in the jenkins package and the CLI result boxes point
// at these pages; update them here when the upstream docs move.
//
// Usage:
//
//	import "github.com/muurk/jenkins-users/internal/urls"
//
//	fmt.Printf("See: %s\n", urls.RemoteAccessAPI)
package urls
