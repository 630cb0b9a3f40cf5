// Package device keeps per-install state on disk: the machine identity used
// for license binding and the last accepted license key.
package device

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	machineIDFile  = "machine-id"
	licenseKeyFile = "license-key"
)

// Store reads and writes files under one data directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is the per-user config directory for the application.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}

	return filepath.Join(base, "cofre"), nil
}

// MachineID returns this install's identity, creating a random one on first
// call. The value is stable for as long as the data directory survives.
func (s *Store) MachineID() (string, error) {
	id, err := s.read(machineIDFile)
	if err != nil {
		return "", err
	}

	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := s.write(machineIDFile, id); err != nil {
		return "", err
	}

	return id, nil
}

// LicenseKey returns the saved key, or "" if none has been accepted yet.
func (s *Store) LicenseKey() (string, error) {
	return s.read(licenseKeyFile)
}

func (s *Store) SaveLicenseKey(key string) error {
	return s.write(licenseKeyFile, key)
}

func (s *Store) read(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	return strings.TrimSpace(string(b)), nil
}

func (s *Store) write(name, value string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(value+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}
