package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// session ids are uuids; anything else is refused before touching the disk
var reSessionFile = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// File stores one snapshot file per session under a state directory.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart state dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (s *File) path(sessionID string) (string, error) {
	if !reSessionFile.MatchString(sessionID) {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(s.dir, sessionID+".json"), nil
}

func (s *File) Load(_ context.Context, sessionID string) ([]byte, error) {
	p, err := s.path(sessionID)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	return b, nil
}

func (s *File) Save(_ context.Context, sessionID string, snapshot []byte) error {
	p, err := s.path(sessionID)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, snapshot, 0o644); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return os.Rename(tmp, p)
}

func (s *File) Clear(_ context.Context, sessionID string) error {
	p, err := s.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cart snapshot: %w", err)
	}
	return nil
}
