package config

// File represents the entire user configuration file.
type File struct {
	Version     int          `yaml:"version"`
	Server      *Server      `yaml:"server,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Server identifies the Jenkins instance and the admin account to use.
// Note: The API token is NEVER stored here; it comes from the environment or a prompt.
type Server struct {
	URL      string `yaml:"url"`      // Jenkins base URL (e.g., "https://ci.example.com")
	Username string `yaml:"username"` // Admin account name
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Timeout         int    `yaml:"timeout"`                    // Request timeout in seconds
	DefaultPassword string `yaml:"default_password,omitempty"` // Initial password for created accounts
	LogLevel        string `yaml:"log_level,omitempty"`        // debug, info, warn or error
	LogFile         string `yaml:"log_file,omitempty"`         // Rotating log file (stderr when empty)
}

// currentVersion is the only config file version this build understands
const currentVersion = 1

// defaultTimeoutSeconds matches jenkins.DefaultTimeout
const defaultTimeoutSeconds = 30

// NewFile creates a new File with default values.
func NewFile() *File {
	return &File{
		Version: currentVersion,
		Server:  &Server{},
		Preferences: &Preferences{
			Timeout: defaultTimeoutSeconds,
		},
	}
}

// ensureDefaults fills sections missing from an older or hand-written file.
func (f *File) ensureDefaults() {
	if f.Server == nil {
		f.Server = &Server{}
	}
	if f.Preferences == nil {
		f.Preferences = &Preferences{}
	}
	if f.Preferences.Timeout <= 0 {
		f.Preferences.Timeout = defaultTimeoutSeconds
	}
}
