package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by PromptToken when stdin cannot be prompted
var ErrNotTerminal = errors.New("standard input is not a terminal")

// CanPrompt reports whether in is an interactive terminal
func CanPrompt(in *os.File) bool {
	return in != nil && term.IsTerminal(int(in.Fd()))
}

// PromptToken asks for the API token of username without echoing it.
func PromptToken(in *os.File, out io.Writer, username string) (string, error) {
	if !CanPrompt(in) {
		return "", ErrNotTerminal
	}

	fmt.Fprintf(out, "Jenkins API token for %s: ", username)
	raw, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", errors.New("no token entered")
	}
	return token, nil
}

// EnsureToken fills s.Token from an interactive prompt when it is still empty.
// Settings that already carry a token are returned unchanged.
func EnsureToken(s Settings, in *os.File, out io.Writer) (Settings, error) {
	if s.Token != "" {
		return s, nil
	}
	token, err := PromptToken(in, out, s.Username)
	if err != nil {
		if errors.Is(err, ErrNotTerminal) {
			return s, nil
		}
		return s, err
	}
	s.Token = token
	return s, nil
}
