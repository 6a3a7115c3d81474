package ui

import (
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig holds configuration for one action subcommand
type RunnerConfig struct {
	Title   string    // Action title (e.g., "Delete User")
	Command string    // Full command (e.g., "jenkins-users delete-user alice")
	Params  []Param   // Parameters to display in header
	Output  io.Writer // Output writer (default: os.Stdout)
	Width   int       // Render width (default: terminal width)
}

// Report is what an operation hands back for the result box
type Report struct {
	Title           string   // Result title, e.g. the user-facing outcome message
	Details         []Param  // Extra key-value lines
	Body            string   // Free text, e.g. a user list
	Cause           string   // Short cause for failures
	Troubleshooting []string // Tips for failures
}

// Runner orchestrates the UI for a single action: it prints the header,
// runs the operation and prints a success or failure box.
type Runner struct {
	config RunnerConfig
	header *Header
	output io.Writer
	width  int
}

// NewRunner creates a new runner for an action subcommand
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := config.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	return &Runner{
		config: config,
		header: NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		output: config.Output,
		width:  width,
	}
}

// Operation performs the action. A non-nil error marks the run as failed.
type Operation func() (Report, error)

// Run prints the header, executes the operation and prints the result.
// The operation's error is returned unchanged.
func (r *Runner) Run(operation Operation) error {
	start := time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	report, err := operation()
	duration := time.Since(start)

	var result *Result
	if err != nil {
		result = NewFailureResult(report.Title, err, report.Troubleshooting).SetCause(report.Cause)
	} else {
		result = NewSuccessResult(report.Title)
	}
	result.Details = append(result.Details, report.Details...)
	result.AddDetail("Duration", formatDuration(duration))
	result.SetBody(report.Body).SetWidth(r.width)

	_, _ = fmt.Fprintln(r.output, result.Render())
	return err
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
