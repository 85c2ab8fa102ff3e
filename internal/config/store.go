package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/logger"
)

const (
	// AppDir is the directory under the user config dir.
	AppDir = "mosdef"
	// FileName is the persisted config file name.
	FileName = "config.json"
	// DefaultFreshness is how long a loaded document is reused.
	DefaultFreshness = 2 * time.Second
)

// DefaultPath returns <user config dir>/mosdef/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine the user config directory",
			"Pass --config or set MOSDEF_CONFIG to choose a location.")
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// Store reads and writes the persisted document at a fixed path.
type Store struct {
	path string
	ttl  time.Duration
	now  func() time.Time
	log  logger.Logger

	cached   *Persisted
	cachedAt time.Time
}

// NewStore creates a store for path with the default freshness window.
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Noop()
	}
	return &Store{path: path, ttl: DefaultFreshness, now: time.Now, log: log}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted document. A missing or unreadable file yields
// the defaults; it never fails. Results are reused for the freshness window.
func (s *Store) Load() *Persisted {
	if s.cached != nil && s.now().Sub(s.cachedAt) < s.ttl {
		return s.cached.clone()
	}

	p := s.read()
	s.cached = p
	s.cachedAt = s.now()
	return p.clone()
}

func (s *Store) read() *Persisted {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("Reading %s: %v, using defaults", s.path, err)
		}
		return Default()
	}

	var p Persisted
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Debug("Config %s is corrupt (%v), using defaults", s.path, err)
		return Default()
	}
	if len(p.SelectorHistory) > HistoryCapacity {
		p.SelectorHistory = p.SelectorHistory[:HistoryCapacity]
	}
	return &p
}

// Inspect reads the file without falling back to defaults. exists is false
// when there is no file yet; err reports unreadable or corrupt content.
func (s *Store) Inspect() (p *Persisted, exists bool, err error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, true, err
	}

	p = &Persisted{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, true, err
	}
	return p, true, nil
}

// Save writes p to a temp file in the same directory and renames it over
// the config file.
func (s *Store) Save(p *Persisted) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory "+dir,
			"Check directory permissions")
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot encode config", "")
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write config file "+s.path,
			"Check directory permissions")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write config file "+s.path, "")
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write config file "+s.path, "")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write config file "+s.path, "")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot replace config file "+s.path,
			"Check file permissions")
	}

	s.cached = p.clone()
	s.cachedAt = s.now()
	return nil
}
