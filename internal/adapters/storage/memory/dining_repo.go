package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"dining-calendar/internal/domain/dining"
)

type diningRepo struct {
	mu     sync.RWMutex
	byID   map[int64]dining.DiningEvent
	nextID int64
}

func NewDiningRepo() dining.Repository {
	return &diningRepo{
		byID:   make(map[int64]dining.DiningEvent),
		nextID: 1,
	}
}

func (r *diningRepo) List(ctx context.Context) ([]dining.DiningEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dining.DiningEvent, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, clone(e))
	}

	// Orden de calendario: por fecha asc y luego por id
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}

func (r *diningRepo) GetByID(ctx context.Context, id int64) (dining.DiningEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return dining.DiningEvent{}, dining.ErrNotFound
	}
	return clone(e), nil
}

func (r *diningRepo) Create(ctx context.Context, e dining.DiningEvent) (dining.DiningEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID != 0 {
		return dining.DiningEvent{}, errors.New("event id is assigned by the repository")
	}

	e.ID = r.nextID
	r.nextID++

	r.byID[e.ID] = clone(e)
	return clone(e), nil
}

func (r *diningRepo) ReplaceFields(ctx context.Context, id int64, u dining.Update) (dining.DiningEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return dining.DiningEvent{}, dining.ErrNotFound
	}

	next, err := u.ApplyTo(clone(current))
	if err != nil {
		return dining.DiningEvent{}, err
	}
	next.ID = id

	r.byID[id] = clone(next)
	return next, nil
}

func (r *diningRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

// clone evita que el llamador comparta slices/punteros con el mapa interno.
func clone(e dining.DiningEvent) dining.DiningEvent {
	if e.Participants != nil {
		e.Participants = append([]string(nil), e.Participants...)
	}
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	if e.EndDatetime != nil {
		t := *e.EndDatetime
		e.EndDatetime = &t
	}
	if e.Category != nil {
		s := *e.Category
		e.Category = &s
	}
	if e.ImagePath != nil {
		s := *e.ImagePath
		e.ImagePath = &s
	}
	return e
}
