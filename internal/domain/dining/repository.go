package dining

import "context"

// Repository es el gateway de persistencia de eventos.
// GetByID y ReplaceFields devuelven ErrNotFound para ids desconocidos.
type Repository interface {
	List(ctx context.Context) ([]DiningEvent, error)
	GetByID(ctx context.Context, id int64) (DiningEvent, error)
	// Create asigna el ID y devuelve el registro guardado.
	Create(ctx context.Context, e DiningEvent) (DiningEvent, error)
	// ReplaceFields aplica u sobre el registro actual como una sola unidad de trabajo.
	ReplaceFields(ctx context.Context, id int64, u Update) (DiningEvent, error)
	// Delete informa si existía un registro con ese id.
	Delete(ctx context.Context, id int64) (bool, error)
}
