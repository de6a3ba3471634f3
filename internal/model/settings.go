package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StoredAccount is one signed-in account remembered across sessions.
type StoredAccount struct {
	Username string `mapstructure:"username" yaml:"username"`
	Active   bool   `mapstructure:"active" yaml:"active"`
}

// Settings is the top-level application settings document. Credential
// material is never stored here; the API client collaborator owns tokens.
type Settings struct {
	Accounts []StoredAccount `mapstructure:"accounts" yaml:"accounts"`

	// ShowAll switches the list from unread-only to everything.
	ShowAll bool `mapstructure:"show_all" yaml:"show_all"`

	// PollIntervalSec is how often (in seconds) to fetch notifications.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

func defaultSettings() *Settings {
	return &Settings{
		PollIntervalSec: 120,
	}
}

// LoadSettings reads the settings document from path using Viper. A
// missing file yields defaults; callers resolve the path themselves.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("poll_interval_sec", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultSettings(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	cfg := defaultSettings()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	if cfg.PollIntervalSec <= 0 {
		cfg.PollIntervalSec = 120
	}

	return cfg, nil
}

// SaveSettings writes the settings document to a YAML file at path,
// creating parent directories if needed.
func SaveSettings(path string, cfg *Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("accounts", cfg.Accounts)
	v.Set("show_all", cfg.ShowAll)
	v.Set("poll_interval_sec", cfg.PollIntervalSec)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing settings to %s: %w", path, err)
	}

	return nil
}

// SetActiveAccount marks username as the single active account, adding it
// to the list if it was not known yet.
func (s *Settings) SetActiveAccount(username string) {
	found := false
	for i := range s.Accounts {
		s.Accounts[i].Active = s.Accounts[i].Username == username
		found = found || s.Accounts[i].Active
	}

	if !found {
		s.Accounts = append(s.Accounts, StoredAccount{
			Username: username,
			Active:   true,
		})
	}
}

// RemoveAccount forgets an account by username.
func (s *Settings) RemoveAccount(username string) {
	kept := s.Accounts[:0]
	for _, a := range s.Accounts {
		if a.Username != username {
			kept = append(kept, a)
		}
	}
	s.Accounts = kept
}

// ActiveAccount returns the username of the active account, or "" when
// no account is signed in.
func (s *Settings) ActiveAccount() string {
	for _, a := range s.Accounts {
		if a.Active {
			return a.Username
		}
	}
	return ""
}

// Usernames returns every stored account name in order.
func (s *Settings) Usernames() []string {
	names := make([]string, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		names = append(names, a.Username)
	}
	return names
}
