package dining

import (
	"context"
)

type Service struct {
	repo Repository
	norm Normalizer
}

func NewService(repo Repository, norm Normalizer) *Service {
	return &Service{
		repo: repo,
		norm: norm,
	}
}

func (s *Service) Normalizer() Normalizer {
	return s.norm
}

func (s *Service) List(ctx context.Context) ([]DiningEvent, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DiningEvent, 0, len(items))
	for _, e := range items {
		e.NormalizeCollections()
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (DiningEvent, error) {
	if id <= 0 {
		return DiningEvent{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DiningEvent{}, err
	}
	e.NormalizeCollections()
	return e, nil
}

// Create construye el registro desde la entrada ya normalizada y lo persiste.
func (s *Service) Create(ctx context.Context, in CreateInput) (DiningEvent, error) {
	e, err := NewDiningEvent(in)
	if err != nil {
		return DiningEvent{}, err
	}

	stored, err := s.repo.Create(ctx, e)
	if err != nil {
		return DiningEvent{}, err
	}
	stored.NormalizeCollections()
	return stored, nil
}

func (s *Service) Update(ctx context.Context, id int64, u Update) (DiningEvent, error) {
	if id <= 0 {
		return DiningEvent{}, ErrNotFound
	}
	e, err := s.repo.ReplaceFields(ctx, id, u)
	if err != nil {
		return DiningEvent{}, err
	}
	e.NormalizeCollections()
	return e, nil
}

// Delete es idempotente: borrar un id inexistente no es un error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}
