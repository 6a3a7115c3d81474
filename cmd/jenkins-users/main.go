// Jenkins-users manages user accounts on a Jenkins server.
//
// It creates accounts in Jenkins' own user database, lists users, assigns
// global roles through the Role-based Authorization Strategy plugin and
// deletes users. All calls go through the Jenkins HTTP API using a username
// and API token.
//
// Usage:
//
//	jenkins-users [command] [flags]
//
// Running without arguments launches the interactive form.
// See 'jenkins-users --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/muurk/jenkins-users/internal/logging"
	"github.com/muurk/jenkins-users/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath  string
	serverURL   string
	accountName string
	timeoutFlag string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "jenkins-users",
	Short: "Jenkins User Manager",
	Long: `Manage the users of a Jenkins server from the terminal.

Creates accounts in Jenkins' own user database, lists users, assigns global
roles (Role-based Authorization Strategy plugin) and deletes users.

The server and account come from the config file, the environment
(JENKINS_URL, JENKINS_USER, JENKINS_TOKEN, JENKINS_TIMEOUT, optionally from a
.env file) or the flags below. The API token is never stored; when it is not
set you are prompted for it.

If no command is specified, the interactive form will launch automatically.`,
	Version: version.Version,
	Example: `  # Launch the interactive form
  jenkins-users --server https://ci.example.com --user admin

  # List users as JSON
  JENKINS_TOKEN=... jenkins-users list-users --format json

  # Create a user and give them a role
  jenkins-users create-user alice --fullname "Alice Doe" --email alice@example.com
  jenkins-users assign-role alice developer`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: OS config dir/jenkins-users/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Jenkins base URL (overrides JENKINS_URL)")
	rootCmd.PersistentFlags().StringVar(&accountName, "user", "", "Jenkins admin username (overrides JENKINS_USER)")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", "", "Request timeout, seconds or duration like 45s (overrides JENKINS_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: silent)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.ProductName, version.Full())
	},
}
