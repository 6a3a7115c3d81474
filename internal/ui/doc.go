// Package ui provides terminal output components for the jenkins-users CLI.
//
// This package uses Lipgloss to render the one-shot subcommands. Unlike the
// interactive form in package tui, these components follow a "run once and
// exit" pattern: they print a header, the result of a single action and exit.
//
// # Components
//
//   - Header: Command banner showing the action and the target server
//   - Result: Success/failure boxes with details, free text and troubleshooting tips
//   - Confirmation: Warning box that requires typing a phrase before a destructive action
//   - Runner: Orchestrates header → operation → result for a subcommand
//
// Example:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:   "Delete User",
//	    Command: "jenkins-users delete-user alice",
//	    Params:  []ui.Param{{Key: "Server", Value: server}},
//	})
//
//	err := runner.Run(func() (ui.Report, error) {
//	    out := exec.Dispatch(ctx, action.DeleteUser, action.Fields{Username: "alice"})
//	    return ui.Report{Title: out.Message}, out.Err
//	})
//
// # Logging Integration
//
// Logging is controlled via JENKINS_USERS_LOG_LEVEL. When unset or empty, zap
// logging is silent and only the curated output is displayed.
package ui
