package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wfc-portal/internal/domain"
)

// UserConfig represents ~/.wfc/config.yaml.
type UserConfig struct {
	CurrentProfile string             `yaml:"current-profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile is one named CLI configuration with its saved credentials. It is
// the CLI's durable token storage, the counterpart of the web portal's
// credential cookies.
type Profile struct {
	Host         string       `yaml:"host,omitempty"`
	AccessToken  string       `yaml:"access-token,omitempty"`
	RefreshToken string       `yaml:"refresh-token,omitempty"`
	Admin        bool         `yaml:"admin,omitempty"`
	Output       string       `yaml:"output,omitempty"`
	User         *ProfileUser `yaml:"user,omitempty"`
}

// ProfileUser caches the signed-in account for `wfcctl whoami` without a
// network round trip.
type ProfileUser struct {
	ID       string `yaml:"id,omitempty"`
	Email    string `yaml:"email,omitempty"`
	FullName string `yaml:"full-name,omitempty"`
	Status   string `yaml:"status,omitempty"`
	Role     string `yaml:"role,omitempty"`
}

// ActiveProfile returns the profile named by the override, or the
// current-profile when the override is empty.
func (c *UserConfig) ActiveProfile(override string) (string, Profile) {
	name := c.CurrentProfile
	if override != "" {
		name = override
	}
	if name == "" {
		name = "default"
	}
	return name, c.Profiles[name]
}

// ConfigDir returns the CLI config directory, ~/.wfc by default. The
// WFC_CONFIG_DIR environment variable overrides it.
func ConfigDir() string {
	if dir := os.Getenv("WFC_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wfc")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadUserConfig reads the config file. A missing file yields an empty
// config rather than an error; the CLI works before any profile exists.
func LoadUserConfig() (*UserConfig, error) {
	data, err := os.ReadFile(ConfigPath())
	if os.IsNotExist(err) {
		return &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return &cfg, nil
}

// SaveUserConfig writes the config file with owner-only permissions.
func SaveUserConfig(cfg *UserConfig) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(ConfigPath(), data, 0o600)
}

// profileStorage adapts one named profile to the session token storage,
// persisting every write back to the config file.
type profileStorage struct {
	name string
}

func newProfileStorage(name string) *profileStorage {
	if name == "" {
		name = "default"
	}
	return &profileStorage{name: name}
}

func (p *profileStorage) load() (cfg *UserConfig, prof Profile) {
	cfg, err := LoadUserConfig()
	if err != nil {
		cfg = &UserConfig{CurrentProfile: p.name, Profiles: map[string]Profile{}}
	}
	return cfg, cfg.Profiles[p.name]
}

func (p *profileStorage) save(cfg *UserConfig, prof Profile) error {
	cfg.Profiles[p.name] = prof
	return SaveUserConfig(cfg)
}

// AccessToken implements backend.TokenProvider.
func (p *profileStorage) AccessToken() (string, bool) {
	_, prof := p.load()
	return prof.AccessToken, prof.AccessToken != ""
}

func (p *profileStorage) Tokens() (domain.TokenPair, bool) {
	_, prof := p.load()
	pair := domain.TokenPair{AccessToken: prof.AccessToken, RefreshToken: prof.RefreshToken}
	return pair, !pair.Empty()
}

func (p *profileStorage) StoreTokens(pair domain.TokenPair) error {
	cfg, prof := p.load()
	prof.AccessToken = pair.AccessToken
	prof.RefreshToken = pair.RefreshToken
	return p.save(cfg, prof)
}

func (p *profileStorage) Profile() (*domain.User, bool) {
	_, prof := p.load()
	if prof.User == nil {
		return nil, false
	}
	return &domain.User{
		ID:       prof.User.ID,
		Email:    prof.User.Email,
		FullName: prof.User.FullName,
		Status:   domain.UserStatus(prof.User.Status),
		Role:     domain.UserRole(prof.User.Role),
	}, true
}

func (p *profileStorage) StoreProfile(user *domain.User) error {
	cfg, prof := p.load()
	prof.User = &ProfileUser{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Status:   string(user.Status),
		Role:     string(user.Role),
	}
	return p.save(cfg, prof)
}

func (p *profileStorage) Clear() error {
	cfg, prof := p.load()
	prof.AccessToken = ""
	prof.RefreshToken = ""
	prof.User = nil
	return p.save(cfg, prof)
}
