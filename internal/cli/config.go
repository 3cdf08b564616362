package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionID   string
	SessionFile string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("MMGAME_SERVER", "http://localhost:8080"),
		SessionID:   os.Getenv("MMGAME_SESSION"),
		SessionFile: getEnvOrDefault("MMGAME_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadSession loads the session id from file if not already set
func (c *Config) LoadSession() error {
	if c.SessionID != "" {
		return nil
	}

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No session file is fine
		}
		return err
	}

	c.SessionID = string(data)
	return nil
}

// SaveSession saves the session id to the session file
func (c *Config) SaveSession(sessionID string) error {
	c.SessionID = sessionID

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, []byte(sessionID), 0600)
}

// ClearSession removes the stored session
func (c *Config) ClearSession() error {
	c.SessionID = ""
	err := os.Remove(c.SessionFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mmctl/session"
	}
	return filepath.Join(home, ".mmctl", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
