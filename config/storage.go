package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StorageBackend selects where the session slots are persisted.
type StorageBackend string

const (
	// StorageBackendFile keeps the slots in a local JSON file.
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis keeps the slots in Redis so several shells share a session.
	StorageBackendRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, redis)", v)
	}
}

// StorageConfig controls durable storage of the credential and principal.
type StorageConfig struct {
	Backend StorageBackend `env:"STORAGE_BACKEND" envDefault:"file"`

	// FilePath is the slot file used by the file backend. Empty means
	// <user config dir>/bookstore-admin/session.json.
	FilePath string `env:"STORAGE_FILE_PATH"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"bookstore-admin:"`

	// TokenKey and PrincipalKey name the two persisted slots.
	TokenKey     string `env:"STORAGE_TOKEN_KEY"     envDefault:"auth_token"`
	PrincipalKey string `env:"STORAGE_PRINCIPAL_KEY" envDefault:"user"`

	// TTL expires Redis slots after inactivity; zero keeps them until logout.
	TTL time.Duration `env:"STORAGE_TTL"`
}

// Sanitize fills derived defaults for storage configuration.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageBackendFile
	}
	s.FilePath = strings.TrimSpace(s.FilePath)
	if s.FilePath == "" {
		s.FilePath = defaultSessionFile()
	}
	if strings.TrimSpace(s.TokenKey) == "" {
		s.TokenKey = "auth_token"
	}
	if strings.TrimSpace(s.PrincipalKey) == "" {
		s.PrincipalKey = "user"
	}
	if s.TTL < 0 {
		s.TTL = 0
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "bookstore-admin", "session.json")
}
