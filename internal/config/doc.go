// Package config provides configuration management for jenkins-users.
//
// Settings are resolved once at startup from four layers, each overriding the
// one before it:
//
//  1. Built-in defaults (30s timeout, default account password)
//  2. The YAML configuration file
//  3. Environment variables (JENKINS_URL, JENKINS_USER, JENKINS_TOKEN,
//     JENKINS_TIMEOUT), after loading a .env file from the working directory
//  4. Command-line flags
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/jenkins-users/config.yaml or $HOME/.config/jenkins-users/config.yaml
//   - macOS: $HOME/.config/jenkins-users/config.yaml
//   - Windows: %LOCALAPPDATA%\jenkins-users\config.yaml
//
// # Security
//
// IMPORTANT: The API token is NEVER written to the configuration file. It is
// read from the environment or prompted for on the terminal.
//
// # Usage Example
//
//	settings, err := config.Resolve("", config.Overrides{URL: serverFlag})
//	if err != nil {
//	    return err
//	}
//	settings, err = config.EnsureToken(settings, os.Stdin, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
//	client := jenkins.NewClient(settings.Credentials())
//
// # Example Configuration
//
//	version: 1
//	server:
//	  url: https://ci.example.com
//	  username: admin
//	preferences:
//	  timeout: 30
package config
