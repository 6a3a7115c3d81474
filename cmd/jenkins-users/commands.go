package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/muurk/jenkins-users/internal/action"
	"github.com/muurk/jenkins-users/internal/config"
	"github.com/muurk/jenkins-users/internal/jenkins"
	"github.com/muurk/jenkins-users/internal/tui"
	"github.com/muurk/jenkins-users/internal/ui"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Action command flags
var (
	fullName     string
	email        string
	outputFormat string
	assumeYes    bool
)

// canConfirm reports whether the delete confirmation can be asked
var canConfirm = func() bool { return config.CanPrompt(os.Stdin) }

func init() {
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(listUsersCmd)
	rootCmd.AddCommand(assignRoleCmd)
	rootCmd.AddCommand(deleteUserCmd)
	rootCmd.AddCommand(checkCmd)
}

func runForm(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := openSession()
	if err != nil {
		return err
	}

	if err := tui.Run(cmd.Context(), s.Executor, s.Settings.BaseURL); err != nil {
		return fmt.Errorf("form error: %w", err)
	}
	return nil
}

// createUserCmd creates an account in Jenkins' own user database
var createUserCmd = &cobra.Command{
	Use:   "create-user <username>",
	Short: "Create a Jenkins user",
	Long: `Create an account in Jenkins' own user database.

The account gets the default password from the config file (password123
unless changed). Full name and email are required, as in the form.`,
	Example: `  jenkins-users create-user alice --fullname "Alice Doe" --email alice@example.com`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args, action.CreateUser, action.Fields{
			Username: args[0],
			FullName: fullName,
			Email:    email,
		})
	},
}

func init() {
	createUserCmd.Flags().StringVar(&fullName, "fullname", "", "Full name of the user")
	createUserCmd.Flags().StringVar(&email, "email", "", "Email address of the user")
}

// listUsersCmd lists the ids of all known users
var listUsersCmd = &cobra.Command{
	Use:   "list-users",
	Short: "List Jenkins users",
	Long: `List the ids of all users Jenkins knows about.

The json format prints only a JSON document, for scripting.`,
	Example: `  jenkins-users list-users
  jenkins-users list-users --format json | jq -r '.users[]'`,
	Args: cobra.NoArgs,
	RunE: runListUsers,
}

func init() {
	listUsersCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")
}

func runListUsers(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case "text":
		return runAction(cmd, args, action.ListUsers, action.Fields{})
	case "json":
		// plain document below
	default:
		return fmt.Errorf("unknown format %q (want text or json)", outputFormat)
	}

	cmd.SilenceUsage = true
	s, err := openSession()
	if err != nil {
		return err
	}

	out := s.Executor.Dispatch(cmd.Context(), action.ListUsers, action.Fields{})
	if !out.Success {
		return out.Err
	}
	return writeUsersJSON(cmd.OutOrStdout(), out.Users)
}

// usersDocument is the --format json output of list-users
type usersDocument struct {
	Users []string `json:"users"`
}

func writeUsersJSON(w io.Writer, users []string) error {
	if users == nil {
		users = []string{}
	}
	data, err := json.MarshalIndent(usersDocument{Users: users}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// assignRoleCmd assigns a global role
var assignRoleCmd = &cobra.Command{
	Use:   "assign-role <username> <role>",
	Short: "Assign a global role to a user",
	Long: `Assign a global role to a user.

Requires the Role-based Authorization Strategy plugin. The role must
already exist.`,
	Example: `  jenkins-users assign-role alice developer`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args, action.AssignRole, action.Fields{
			Username: args[0],
			Role:     args[1],
		})
	},
}

// deleteUserCmd deletes a user after typed confirmation
var deleteUserCmd = &cobra.Command{
	Use:   "delete-user <username>",
	Short: "Delete a Jenkins user",
	Long: `Delete a user from Jenkins.

You are asked to type the username to confirm. Use --yes to skip the
prompt, which is required when standard input is not a terminal.`,
	Example: `  jenkins-users delete-user alice
  jenkins-users delete-user alice --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteUser,
}

func init() {
	deleteUserCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking for confirmation")
}

func runDeleteUser(cmd *cobra.Command, args []string) error {
	if !assumeYes {
		if !canConfirm() {
			return errors.New("refusing to delete without confirmation: pass --yes when not running in a terminal")
		}

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if !ui.ConfirmDeletion(os.Stdin, cmd.OutOrStdout(), args[0], settings.BaseURL) {
			return nil
		}
	}

	return runAction(cmd, args, action.DeleteUser, action.Fields{Username: args[0]})
}

// checkCmd verifies the server URL and credentials
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the connection to Jenkins",
	Long: `Check that Jenkins answers at the configured URL and accepts the
username and API token.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := openSession()
	if err != nil {
		return err
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Check",
		Command: commandLine(cmd, args),
		Params:  s.params(),
		Output:  cmd.OutOrStdout(),
	})

	return runner.Run(func() (ui.Report, error) {
		if err := s.Client.Ping(cmd.Context()); err != nil {
			return ui.Report{
				Title:           "Cannot use Jenkins at " + s.Settings.BaseURL,
				Cause:           jenkins.ShortMessage(err),
				Troubleshooting: jenkins.Troubleshooting(err),
			}, err
		}
		return ui.Report{
			Title: fmt.Sprintf("Connected to Jenkins as '%s'.", s.Settings.Username),
			Details: []ui.Param{
				{Key: "Token", Value: s.Settings.MaskedToken()},
				{Key: "Timeout", Value: s.Settings.Timeout.String()},
			},
		}, nil
	})
}
