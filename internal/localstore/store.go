// Package localstore keeps the terminal client's guest state in a small TOML
// file: header customisation, focus minutes earned without an account, and
// the cached daily message.
package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"roseboard/backend/internal/model"
)

const (
	KeyHeaderTitle       = "headerTitle"
	KeyHeaderInitial     = "headerInitial"
	KeyGuestFocusMinutes = "guestFocusMinutes"
	KeyEODMessage        = "eodMessage"
	KeyEODMessageDate    = "eodMessageDate"

	fileName = "local.toml"
)

var ErrUnknownKey = errors.New("unknown local store key")

var knownKeys = map[string]bool{
	KeyHeaderTitle:       true,
	KeyHeaderInitial:     true,
	KeyGuestFocusMinutes: true,
	KeyEODMessage:        true,
	KeyEODMessageDate:    true,
}

type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// Open loads the store from dir, creating the directory if needed. A missing
// file is an empty store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local store dir: %w", err)
	}

	path := filepath.Join(dir, fileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault(KeyHeaderTitle, model.DefaultHeaderTitle)
	v.SetDefault(KeyHeaderInitial, model.DefaultHeaderInitial)
	v.SetDefault(KeyGuestFocusMinutes, 0)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read local store: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat local store: %w", err)
	}

	return &Store{v: v, path: path}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(key string) (string, error) {
	if !knownKeys[key] {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(key), nil
}

func (s *Store) Set(key string, value interface{}) error {
	if !knownKeys[key] {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAll(map[string]interface{}{key: value})
}

func (s *Store) HeaderTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyHeaderTitle)
}

func (s *Store) HeaderInitial() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyHeaderInitial)
}

func (s *Store) GuestFocusMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetInt(KeyGuestFocusMinutes)
}

// AddGuestFocusMinutes adds to the guest total and returns the new value.
func (s *Store) AddGuestFocusMinutes(minutes int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.v.GetInt(KeyGuestFocusMinutes) + minutes
	if err := s.setAll(map[string]interface{}{KeyGuestFocusMinutes: total}); err != nil {
		return 0, err
	}
	return total, nil
}

// CachedMessage returns the cached daily message and the date key it was
// cached for. Both are empty when nothing is cached.
func (s *Store) CachedMessage() (message, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyEODMessage), s.v.GetString(KeyEODMessageDate)
}

func (s *Store) CacheMessage(message, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAll(map[string]interface{}{
		KeyEODMessage:     message,
		KeyEODMessageDate: date,
	})
}

// setAll applies values and writes the file. When the write fails the
// previous values are restored so memory never runs ahead of disk.
func (s *Store) setAll(values map[string]interface{}) error {
	previous := make(map[string]interface{}, len(values))
	for key, value := range values {
		previous[key] = s.v.Get(key)
		s.v.Set(key, value)
	}
	if err := s.write(); err != nil {
		for key, value := range previous {
			s.v.Set(key, value)
		}
		return err
	}
	return nil
}

func (s *Store) write() error {
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}
