package uploads

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid file name")
)

// Storage persiste el contenido bajo un nombre y devuelve la ruta pública relativa.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

type StoredFile struct {
	Filename string
	Path     string
}

type Options struct {
	// UniqueNames antepone un uuid al nombre para evitar pisar archivos.
	UniqueNames bool
}

type Service struct {
	storage Storage
	unique  bool
	newID   func() string
}

func NewService(storage Storage, opts Options) *Service {
	return &Service{
		storage: storage,
		unique:  opts.UniqueNames,
		newID:   uuid.NewString,
	}
}

func (s *Service) Save(ctx context.Context, filename string, r io.Reader) (StoredFile, error) {
	name, err := SanitizeName(filename)
	if err != nil {
		return StoredFile{}, err
	}
	if s.unique {
		name = s.newID() + "_" + name
	}

	p, err := s.storage.Save(ctx, name, r)
	if err != nil {
		return StoredFile{}, err
	}
	return StoredFile{Filename: name, Path: p}, nil
}

// SanitizeName reduce el nombre del cliente a su último segmento.
func SanitizeName(raw string) (string, error) {
	n := strings.TrimSpace(strings.ReplaceAll(raw, `\`, "/"))
	n = path.Base(n)
	switch n {
	case "", ".", "..", "/":
		return "", ErrInvalidName
	}
	if strings.HasPrefix(n, ".upload-") {
		// reservado para los temporales del store
		return "", ErrInvalidName
	}
	return n, nil
}
