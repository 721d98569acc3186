package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config holds user preferences persisted between runs.
type Config struct {
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications when a reply arrives unfocused
	LastSessionID        string `json:"last_session_id,omitempty"`       // Session reopened on startup
	SidebarHidden        bool   `json:"sidebar_hidden,omitempty"`        // Wide layout starts without the history panel

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	if dir := os.Getenv("SOHBET_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sohbet"), nil
}

// DefaultPath returns the path to the preferences file.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the preferences from the default path.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the preferences from path, or returns defaults if the file
// doesn't exist yet.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.LastSessionID != "" && len(c.LastSessionID) > 256 {
		return fmt.Errorf("last session id too long (%d bytes)", len(c.LastSessionID))
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.filePath, data, 0644)
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLastSessionID returns the session that was active when the app last quit.
func (c *Config) GetLastSessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSessionID
}

// SetLastSessionID records the active session.
func (c *Config) SetLastSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSessionID = id
}

// GetSidebarHidden returns whether the history panel starts hidden.
func (c *Config) GetSidebarHidden() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SidebarHidden
}

// SetSidebarHidden sets whether the history panel starts hidden.
func (c *Config) SetSidebarHidden(hidden bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SidebarHidden = hidden
}
