// Package session holds per-player state that outlives a single tick:
// the persisted profile, runtime settings, the duel battle and the
// opponent mirror.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultUsername is used until the player picks a name.
const DefaultUsername = "Warrior"

// Profile is the persisted player record.
type Profile struct {
	Username  string `yaml:"username"`
	MaxStreak int    `yaml:"max_streak"`
	TotalPops int    `yaml:"total_pops"`
}

// DefaultProfile returns the profile of a first-time player.
func DefaultProfile() Profile {
	return Profile{Username: DefaultUsername}
}

// Store persists the profile.
type Store interface {
	Load() (Profile, error)
	Save(Profile) error
}

// FileStore keeps the profile in a YAML file.
type FileStore struct {
	Path string
}

// NewFileStore creates a store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the profile. A missing file yields the default profile.
func (s *FileStore) Load() (Profile, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultProfile(), nil
	}
	if err != nil {
		return DefaultProfile(), fmt.Errorf("reading profile: %w", err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("parsing profile: %w", err)
	}
	if p.Username == "" {
		p.Username = DefaultUsername
	}
	return p, nil
}

// Save writes the profile atomically.
func (s *FileStore) Save(p Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating profile dir: %w", err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replacing profile: %w", err)
	}
	return nil
}

// MemoryStore keeps the profile in memory and counts writes.
type MemoryStore struct {
	mu      sync.Mutex
	profile Profile
	saves   int

	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// NewMemoryStore creates a store holding p.
func NewMemoryStore(p Profile) *MemoryStore {
	return &MemoryStore{profile: p}
}

// Load returns the held profile.
func (s *MemoryStore) Load() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

// Save replaces the held profile.
func (s *MemoryStore) Save(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.profile = p
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
