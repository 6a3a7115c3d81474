package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/muurk/jenkins-users/internal/jenkins"
)

// Environment variables read by Resolve
const (
	EnvURL     = "JENKINS_URL"
	EnvUser    = "JENKINS_USER"
	EnvToken   = "JENKINS_TOKEN"
	EnvTimeout = "JENKINS_TIMEOUT"
)

// DotEnvFile is loaded from the working directory when present
const DotEnvFile = ".env"

// Settings is the fully resolved configuration for one run.
// It is built once at startup and passed around by value.
type Settings struct {
	BaseURL         string        `validate:"required,url"`
	Username        string        `validate:"required"`
	Token           string        `validate:"required"`
	Timeout         time.Duration `validate:"gt=0"`
	DefaultPassword string        `validate:"required"`
	LogLevel        string        `validate:"omitempty,oneof=debug info warn error"`
	LogFile         string
	Path            string // Config file the settings were read from
}

// Overrides carries command-line flag values. Empty fields are ignored.
type Overrides struct {
	URL      string
	Username string
	Token    string
	Timeout  time.Duration
	LogLevel string
}

// Resolve builds Settings from, in increasing precedence: defaults, the
// config file at path, the environment (after loading .env), and flags.
// The result is not validated; call Validate once the token is known.
func Resolve(path string, flags Overrides) (Settings, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	file, err := Load(path)
	if err != nil {
		return Settings{}, err
	}

	configPath, err := resolvePath(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get config path: %w", err)
	}

	s := Settings{
		BaseURL:         file.Server.URL,
		Username:        file.Server.Username,
		Timeout:         time.Duration(file.Preferences.Timeout) * time.Second,
		DefaultPassword: file.Preferences.DefaultPassword,
		LogLevel:        file.Preferences.LogLevel,
		LogFile:         file.Preferences.LogFile,
		Path:            configPath,
	}
	if s.DefaultPassword == "" {
		s.DefaultPassword = jenkins.DefaultPassword
	}

	if v := os.Getenv(EnvURL); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		s.Username = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		s.Token = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		s.Timeout = d
	}

	if flags.URL != "" {
		s.BaseURL = flags.URL
	}
	if flags.Username != "" {
		s.Username = flags.Username
	}
	if flags.Token != "" {
		s.Token = flags.Token
	}
	if flags.Timeout > 0 {
		s.Timeout = flags.Timeout
	}
	if flags.LogLevel != "" {
		s.LogLevel = flags.LogLevel
	}

	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	s.Username = strings.TrimSpace(s.Username)
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	return s, nil
}

// ParseTimeout accepts a Go duration ("45s", "2m") or a number of seconds ("45").
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", v)
	}
	return d, nil
}

var validate = validator.New()

// where each setting can be provided, for error messages
var settingSources = map[string]string{
	"BaseURL":         "--server, " + EnvURL + " or server.url in the config file",
	"Username":        "--user, " + EnvUser + " or server.username in the config file",
	"Token":           EnvToken + ", a .env file or the interactive prompt",
	"Timeout":         "--timeout, " + EnvTimeout + " or preferences.timeout in the config file",
	"DefaultPassword": "preferences.default_password in the config file",
	"LogLevel":        "--log-level or preferences.log_level in the config file",
}

// Validate checks that the settings are complete and well formed.
// Each problem is reported with the places the value can be set.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var problem string
		switch fe.Tag() {
		case "required":
			problem = fmt.Sprintf("missing %s", fe.Field())
		case "url":
			problem = fmt.Sprintf("%s %q is not a valid URL", fe.Field(), fe.Value())
		default:
			problem = fmt.Sprintf("invalid %s %v", fe.Field(), fe.Value())
		}
		problems = append(problems, fmt.Sprintf("%s (set with %s)", problem, settingSources[fe.StructField()]))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// Credentials returns the immutable credentials for jenkins.NewClient
func (s Settings) Credentials() jenkins.Credentials {
	return jenkins.Credentials{
		BaseURL:  s.BaseURL,
		Username: s.Username,
		Token:    s.Token,
	}
}

// MaskedToken returns the token with all but the last four characters hidden
func (s Settings) MaskedToken() string {
	if s.Token == "" {
		return "(not set)"
	}
	if len(s.Token) <= 4 {
		return strings.Repeat("*", len(s.Token))
	}
	return strings.Repeat("*", len(s.Token)-4) + s.Token[len(s.Token)-4:]
}

// ToFile returns a config File holding the storable part of the settings.
// The token is left out.
func (s Settings) ToFile() *File {
	f := NewFile()
	f.Server.URL = s.BaseURL
	f.Server.Username = s.Username
	if secs := int(s.Timeout / time.Second); secs > 0 {
		f.Preferences.Timeout = secs
	}
	if s.DefaultPassword != jenkins.DefaultPassword {
		f.Preferences.DefaultPassword = s.DefaultPassword
	}
	f.Preferences.LogLevel = s.LogLevel
	f.Preferences.LogFile = s.LogFile
	return f
}
