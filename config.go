package users

import (
	"os"
	"strconv"
)

// Default configuration values used when the environment does not override
// them. The signing key default exists for local development only.
const (
	DefaultSigningKey      = "change-me-in-production"
	DefaultIssuer          = "go-users"
	DefaultTokenTTLMinutes = 30
	DefaultListenAddress   = ":8000"
	DefaultAdminEmail      = "admin@test.com"
	DefaultAdminPassword   = "11110"
)

// EnvConfig reads its values from the process environment, falling back to
// development defaults. It satisfies the Config interface.
type EnvConfig struct {
	SigningKey     string
	Issuer         string
	TokenTTL       int
	ListenAddress  string
	AdminEmail     string
	AdminPassword  string
	AllowedOrigins string
}

// ConfigFromEnv builds an EnvConfig from USERS_* environment variables.
func ConfigFromEnv() *EnvConfig {
	return &EnvConfig{
		SigningKey:     envOr("USERS_SIGNING_KEY", DefaultSigningKey),
		Issuer:         envOr("USERS_ISSUER", DefaultIssuer),
		TokenTTL:       envIntOr("USERS_TOKEN_TTL_MINUTES", DefaultTokenTTLMinutes),
		ListenAddress:  envOr("USERS_LISTEN_ADDRESS", DefaultListenAddress),
		AdminEmail:     envOr("USERS_ADMIN_EMAIL", DefaultAdminEmail),
		AdminPassword:  envOr("USERS_ADMIN_PASSWORD", DefaultAdminPassword),
		AllowedOrigins: envOr("USERS_ALLOWED_ORIGINS", "*"),
	}
}

func (c *EnvConfig) GetSigningKey() string     { return c.SigningKey }
func (c *EnvConfig) GetIssuer() string         { return c.Issuer }
func (c *EnvConfig) GetTokenTTL() int          { return c.TokenTTL }
func (c *EnvConfig) GetListenAddress() string  { return c.ListenAddress }
func (c *EnvConfig) GetAdminEmail() string     { return c.AdminEmail }
func (c *EnvConfig) GetAdminPassword() string  { return c.AdminPassword }
func (c *EnvConfig) GetAllowedOrigins() string { return c.AllowedOrigins }

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envIntOr(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return def
}
