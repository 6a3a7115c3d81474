// Package logging provides structured logging for jenkins-users.
//
// This package wraps a zap logger with convenience functions. Logging is
// silent by default so that the terminal form and the CLI result boxes are
// the only thing a user sees.
//
// # Log Levels
//
//   - Debug: every HTTP round trip to Jenkins (method, path, status, latency)
//   - Info: completed actions
//   - Warn: failed actions (validation or request errors)
//   - Error: startup failures
//
// # Configuration
//
//	JENKINS_USERS_LOG_LEVEL=debug jenkins-users list-users
//	JENKINS_USERS_LOG_LEVEL=info JENKINS_USERS_LOG_FILE=/tmp/jenkins-users.log jenkins-users
//
// Without a log file, output goes to stderr. With one, output goes to a
// size-rotated file, which is the only sensible choice while the full-screen
// form is running.
//
// Initialize once at startup:
//
//	if err := logging.Initialize(logging.Options{Level: flagLevel}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once initialized.
package logging
