package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"clinic-admin/internal/domain"
)

var fileKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type fileStore struct {
	dir string
}

// NewFileStore guarda cada sesión en <dir>/<key>.json con permisos 0600.
func NewFileStore(dir string) (Store, error) {
	if dir == "" {
		return nil, errors.New("session dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) (string, error) {
	if !fileKeyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid session key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *fileStore) Load(_ context.Context, key string) (domain.Session, error) {
	p, err := s.path(key)
	if err != nil {
		return domain.Session{}, ErrNotFound
	}
	raw, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	return decode(raw)
}

func (s *fileStore) Save(_ context.Context, key string, sess domain.Session) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
