package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/jenkins-users/internal/config"
	"github.com/muurk/jenkins-users/internal/ui"
)

var forceInit bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// configCmd groups the config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	Long: `Manage the jenkins-users config file.

The file holds the server URL, the admin username and preferences. The API
token is never written to it.`,
}

// configInitCmd writes a config file from the current settings
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long: `Write a config file from the current flags, environment and defaults.

An existing file is only replaced with --force.`,
	Example: `  jenkins-users config init --server https://ci.example.com --user admin`,
	Args:    cobra.NoArgs,
	RunE:    runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if config.Exists(settings.Path) && !forceInit {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", settings.Path)
	}

	if err := settings.ToFile().Save(settings.Path); err != nil {
		return err
	}

	result := ui.NewSuccessResult("Config file written",
		ui.Param{Key: "Path", Value: settings.Path},
		ui.Param{Key: "Server", Value: orUnset(settings.BaseURL)},
		ui.Param{Key: "Account", Value: orUnset(settings.Username)},
	)
	result.SetBody("The API token is not stored. Set JENKINS_TOKEN or enter it when prompted.")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Render())
	return err
}

// configShowCmd prints the resolved settings
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved settings",
	Long: `Show the settings after combining the config file, environment and flags.

The token is masked. Problems that would stop a command are listed.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	details := []ui.Param{
		{Key: "Config file", Value: settings.Path + fileState(settings.Path)},
		{Key: "Server", Value: orUnset(settings.BaseURL)},
		{Key: "Account", Value: orUnset(settings.Username)},
		{Key: "Token", Value: settings.MaskedToken()},
		{Key: "Timeout", Value: settings.Timeout.String()},
		{Key: "Default password", Value: strconv.Itoa(len(settings.DefaultPassword)) + " characters"},
		{Key: "Log level", Value: orUnset(settings.LogLevel)},
		{Key: "Log file", Value: orUnset(settings.LogFile)},
	}

	var result *ui.Result
	if err := settings.Validate(); err != nil {
		result = ui.NewWarningResult("Settings incomplete", details...).SetBody(err.Error())
	} else {
		result = ui.NewSuccessResult("Settings complete", details...)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Render())
	return err
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func fileState(path string) string {
	if config.Exists(path) {
		return ""
	}
	return " (not found)"
}
