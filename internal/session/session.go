// Package session provides key-value storage scoped to one terminal session.
//
// A session is identified by a string id. Everything written under that id
// lives until Clear is called (the session ends) or the backing medium goes
// away: process exit for memory, tmp cleanup for file and sqlite.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage is a session-scoped string store.
type Storage interface {
	// Get returns the value under key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Clear ends the session by dropping all of its entries.
	Clear() error
	Close() error
}

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite}
}

// EnvSession overrides the default session id.
const EnvSession = "TADA_SESSION"

// DefaultID identifies the current terminal session. Without an explicit
// TADA_SESSION it is keyed on the parent process, normally the shell.
func DefaultID() string {
	if v := strings.TrimSpace(os.Getenv(EnvSession)); v != "" {
		return v
	}
	return fmt.Sprintf("ppid-%d", os.Getppid())
}

// DefaultDir is where file and sqlite sessions live.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "tada-sessions")
}

// Open returns the storage for backend, rooted at dir for the on-disk backends.
func Open(backend, dir, id string) (Storage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("session id is empty")
	}
	if dir == "" {
		dir = DefaultDir()
	}
	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(dir, id)
	case BackendSQLite:
		return NewSQLite(dir, id)
	}
	return nil, fmt.Errorf("unknown session backend %q (want one of %s)", backend, strings.Join(Backends(), ", "))
}
