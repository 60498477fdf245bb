package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

var _ ports.SessionStore = (*FileStore)(nil)

// fileSession formato en disco; las claves son los nombres fijos de la sesión.
type fileSession struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Username     string `json:"username,omitempty"`
}

// FileStore sesión persistida en un archivo JSON (permisos 0600) para que la CLI
// conserve el login entre ejecuciones. Cada escritura reemplaza el archivo completo
// vía rename, así un Clear nunca deja un archivo a medias.
type FileStore struct {
	path string

	mu sync.RWMutex
	s  entity.Session
}

// NewFileStore abre (o crea en la primera escritura) el archivo de sesión.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sessionstore: ruta del archivo de sesión requerida")
	}
	f := &FileStore{path: path}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path ruta del archivo.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Set(_ context.Context, access, refresh, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = entity.Session{AccessToken: access, RefreshToken: refresh, Username: username}
	return f.persistLocked()
}

func (f *FileStore) SetAccessToken(_ context.Context, access string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s.Empty() {
		return nil
	}
	f.s.AccessToken = access
	return f.persistLocked()
}

func (f *FileStore) AccessToken(context.Context) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.s.AccessToken, nil
}

func (f *FileStore) RefreshToken(context.Context) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.s.RefreshToken, nil
}

func (f *FileStore) Username(context.Context) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.s.Username, nil
}

// Clear borra la sesión en memoria y elimina el archivo.
func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = entity.Session{}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("sessionstore: borrar archivo de sesión: %w", err)
	}
	return nil
}

func (f *FileStore) load() error {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("sessionstore: leer archivo de sesión: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	var decoded fileSession
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("sessionstore: decodificar archivo de sesión: %w", err)
	}
	f.s = entity.Session(decoded)
	return nil
}

func (f *FileStore) persistLocked() error {
	b, err := json.MarshalIndent(fileSession(f.s), "", "  ")
	if err != nil {
		return fmt.Errorf("sessionstore: codificar sesión: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sessionstore: crear directorio de sesión: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("sessionstore: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionstore: escribir sesión: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionstore: permisos de sesión: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sessionstore: cerrar sesión: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("sessionstore: reemplazar archivo de sesión: %w", err)
	}
	return nil
}
