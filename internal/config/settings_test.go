package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muurk/jenkins-users/internal/jenkins"
)

// clearEnv isolates a test from JENKINS_* variables set in the environment
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURL, EnvUser, EnvToken, EnvTimeout} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	chdir(t, t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleConfig = `version: 1
server:
  url: https://file.example.com/
  username: file-admin
preferences:
  timeout: 12
`

func TestResolve_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, sampleConfig)

	s, err := Resolve(path, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if s.BaseURL != "https://file.example.com" {
		t.Errorf("BaseURL = %s, want trailing slash trimmed", s.BaseURL)
	}
	if s.Username != "file-admin" {
		t.Errorf("Username = %s", s.Username)
	}
	if s.Timeout != 12*time.Second {
		t.Errorf("Timeout = %v, want 12s", s.Timeout)
	}
	if s.DefaultPassword != jenkins.DefaultPassword {
		t.Errorf("DefaultPassword = %s, want %s", s.DefaultPassword, jenkins.DefaultPassword)
	}
	if s.Token != "" {
		t.Error("Token should not come from the config file")
	}
	if s.Path != path {
		t.Errorf("Path = %s, want %s", s.Path, path)
	}
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, sampleConfig)

	t.Setenv(EnvURL, "https://env.example.com")
	t.Setenv(EnvUser, "env-admin")
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvTimeout, "20")

	s, err := Resolve(path, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.BaseURL != "https://env.example.com" || s.Username != "env-admin" || s.Token != "env-token" {
		t.Errorf("env should override file, got %+v", s)
	}
	if s.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", s.Timeout)
	}

	s, err = Resolve(path, Overrides{URL: "https://flag.example.com", Username: "flag-admin", Timeout: 5 * time.Second, LogLevel: "DEBUG"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.BaseURL != "https://flag.example.com" || s.Username != "flag-admin" {
		t.Errorf("flags should override env, got %+v", s)
	}
	if s.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", s.Timeout)
	}
	if s.Token != "env-token" {
		t.Errorf("Token = %s, want env-token", s.Token)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", s.LogLevel)
	}
}

func TestResolve_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Cleanup(func() {
		for _, key := range []string{EnvURL, EnvUser, EnvToken} {
			_ = os.Unsetenv(key)
		}
	})

	env := "JENKINS_URL=https://dotenv.example.com\nJENKINS_USER=dotenv-admin\nJENKINS_TOKEN=dotenv-token\n"
	if err := os.WriteFile(DotEnvFile, []byte(env), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Resolve(filepath.Join(t.TempDir(), "absent.yaml"), Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.BaseURL != "https://dotenv.example.com" || s.Username != "dotenv-admin" || s.Token != "dotenv-token" {
		t.Errorf("Resolve() = %+v, want values from .env", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestResolve_InvalidEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTimeout, "soon")

	if _, err := Resolve(filepath.Join(t.TempDir(), "absent.yaml"), Overrides{}); err == nil {
		t.Error("Resolve() should reject an invalid JENKINS_TIMEOUT")
	}
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"45", 45 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{" 500ms ", 500 * time.Millisecond, false},
		{"0", 0, true},
		{"-5s", 0, true},
		{"later", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeout(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Settings{
		BaseURL:         "https://ci.example.com",
		Username:        "admin",
		Token:           "abc",
		Timeout:         time.Second,
		DefaultPassword: "password123",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(*Settings)
		contains string
	}{
		{"missing url", func(s *Settings) { s.BaseURL = "" }, "--server"},
		{"bad url", func(s *Settings) { s.BaseURL = "ci example" }, "not a valid URL"},
		{"missing token", func(s *Settings) { s.Token = "" }, EnvToken},
		{"zero timeout", func(s *Settings) { s.Timeout = 0 }, "--timeout"},
		{"bad log level", func(s *Settings) { s.LogLevel = "loud" }, "--log-level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Validate() = %q, want it to contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestCredentials(t *testing.T) {
	s := Settings{BaseURL: "https://ci.example.com", Username: "admin", Token: "abc"}
	got := s.Credentials()
	want := jenkins.Credentials{BaseURL: "https://ci.example.com", Username: "admin", Token: "abc"}
	if got != want {
		t.Errorf("Credentials() = %+v, want %+v", got, want)
	}
}

func TestMaskedToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "(not set)"},
		{"abc", "***"},
		{"1234567890", "******7890"},
	}
	for _, tt := range tests {
		if got := (Settings{Token: tt.token}).MaskedToken(); got != tt.want {
			t.Errorf("MaskedToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestToFile_OmitsToken(t *testing.T) {
	s := Settings{
		BaseURL:         "https://ci.example.com",
		Username:        "admin",
		Token:           "super-secret",
		Timeout:         40 * time.Second,
		DefaultPassword: jenkins.DefaultPassword,
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := s.ToFile().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "super-secret") {
		t.Error("token must never be written to the config file")
	}
	if strings.Contains(string(data), "default_password") {
		t.Error("the built-in default password should not be written")
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Preferences.Timeout != 40 {
		t.Errorf("Timeout = %d, want 40", f.Preferences.Timeout)
	}
}

func TestEnsureToken(t *testing.T) {
	s := Settings{Token: "already"}
	got, err := EnsureToken(s, nil, nil)
	if err != nil || got.Token != "already" {
		t.Errorf("EnsureToken() = %+v, %v; want unchanged", got, err)
	}

	got, err = EnsureToken(Settings{}, nil, nil)
	if err != nil {
		t.Errorf("EnsureToken() without a terminal error = %v, want nil", err)
	}
	if got.Token != "" {
		t.Errorf("Token = %q, want empty", got.Token)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
