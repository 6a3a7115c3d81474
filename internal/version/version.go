package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version and Commit are normally stamped at build time:
//
//	go build -ldflags="-X github.com/muurk/jenkins-users/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/jenkins-users/internal/version.Commit=abc123"
//
// Without ldflags they are read from the VCS stamp in the binary's build info,
// falling back to a dated "dev" version.
var (
	Version = ""
	Commit  = ""
)

// ProductName is used in the CLI banner and the HTTP User-Agent header.
const ProductName = "jenkins-users"

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Full returns the version with its commit, e.g. "v0.3.0 (commit: abc123)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent returns the User-Agent sent with every request to Jenkins.
func UserAgent() string {
	return ProductName + "/" + Version
}
