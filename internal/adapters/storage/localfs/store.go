package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store guarda archivos subidos en un directorio local.
// Un nombre repetido sobrescribe el archivo anterior (last write wins); la
// escritura pasa por un temporal + rename, así que nunca queda un archivo a medias.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save escribe r como dir/name y devuelve esa ruta (con "/" como separador).
// name debe venir ya saneado (sin separadores).
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	dst := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return filepath.ToSlash(dst), nil
}
