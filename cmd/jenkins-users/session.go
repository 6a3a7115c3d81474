package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/jenkins-users/internal/action"
	"github.com/muurk/jenkins-users/internal/config"
	"github.com/muurk/jenkins-users/internal/jenkins"
	"github.com/muurk/jenkins-users/internal/logging"
	"github.com/muurk/jenkins-users/internal/ui"
)

// session holds everything a command needs to talk to Jenkins
type session struct {
	Settings config.Settings
	Client   *jenkins.Client
	Executor *action.Executor
}

// overrides collects the global flags
func overrides() (config.Overrides, error) {
	flags := config.Overrides{
		URL:      serverURL,
		Username: accountName,
		LogLevel: logLevel,
	}
	if timeoutFlag != "" {
		d, err := config.ParseTimeout(timeoutFlag)
		if err != nil {
			return flags, fmt.Errorf("invalid --timeout: %w", err)
		}
		flags.Timeout = d
	}
	return flags, nil
}

// loadSettings resolves the settings and starts logging. The token may still be empty.
func loadSettings() (config.Settings, error) {
	flags, err := overrides()
	if err != nil {
		return config.Settings{}, err
	}

	settings, err := config.Resolve(configPath, flags)
	if err != nil {
		return config.Settings{}, err
	}

	if err := logging.Initialize(logging.Options{Level: settings.LogLevel, File: settings.LogFile}); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// openSession resolves and validates the settings, prompting for the token
// if needed, and builds the client and executor.
func openSession() (*session, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	settings, err = config.EnsureToken(settings, os.Stdin, os.Stderr)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client := jenkins.NewClient(settings.Credentials())
	client.SetTimeout(settings.Timeout)

	executor := action.NewExecutor(client)
	executor.Password = settings.DefaultPassword
	executor.Timeout = settings.Timeout

	logging.Debug("Session opened",
		zap.String("server", settings.BaseURL),
		zap.String("user", settings.Username),
		zap.Duration("timeout", settings.Timeout),
		zap.String("config", settings.Path),
	)

	return &session{Settings: settings, Client: client, Executor: executor}, nil
}

// params returns the header lines describing the target server
func (s *session) params() []ui.Param {
	return []ui.Param{
		{Key: "Server", Value: s.Settings.BaseURL},
		{Key: "Account", Value: s.Settings.Username},
	}
}

// commandLine reconstructs the invoked command for the header
func commandLine(cmd *cobra.Command, args []string) string {
	return strings.Join(append([]string{cmd.CommandPath()}, args...), " ")
}

// runAction dispatches one action and renders its outcome.
// The outcome error is returned so the process exits non-zero on failure.
func runAction(cmd *cobra.Command, args []string, kind action.Kind, fields action.Fields) error {
	cmd.SilenceUsage = true

	s, err := openSession()
	if err != nil {
		return err
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   kind.Label(),
		Command: commandLine(cmd, args),
		Params:  s.params(),
		Output:  cmd.OutOrStdout(),
	})

	return runner.Run(func() (ui.Report, error) {
		outcome := s.Executor.Dispatch(cmd.Context(), kind, fields)
		return reportFor(outcome), outcome.Err
	})
}

// reportFor turns an action outcome into the result box content
func reportFor(out action.Outcome) ui.Report {
	if !out.Success {
		return ui.Report{
			Title:           out.Message,
			Cause:           jenkins.ShortMessage(out.Err),
			Troubleshooting: jenkins.Troubleshooting(out.Err),
		}
	}

	if out.Kind == action.ListUsers {
		return ui.Report{
			Title:   fmt.Sprintf("%d users", len(out.Users)),
			Details: []ui.Param{{Key: "Action ID", Value: out.ID}},
			Body:    out.Message,
		}
	}

	return ui.Report{
		Title:   out.Message,
		Details: []ui.Param{{Key: "Action ID", Value: out.ID}},
	}
}
