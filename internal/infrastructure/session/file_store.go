package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

var _ repository.SessionStore = (*FileStore)(nil)

const (
	configDirName = "customer-portal"
	sessionFile   = "session.json"
)

type fileState struct {
	Token string `json:"token"`
}

// FileStore SessionStore de la CLI: un archivo JSON con una sola clave.
// Sobrevive entre ejecuciones; Clear elimina el archivo.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore usa path, o DefaultSessionPath si path está vacío.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

// DefaultSessionPath devuelve $XDG_CONFIG_HOME/customer-portal/session.json (~/.config si no está definido).
func DefaultSessionPath() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, configDirName, sessionFile), nil
}

// Path ruta del archivo de sesión.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return "", false
	}
	return st.Token, st.Token != ""
}

func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	data, err := json.Marshal(fileState{Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *FileStore) IsAuthenticated() bool {
	_, ok := s.Get()
	return ok
}
