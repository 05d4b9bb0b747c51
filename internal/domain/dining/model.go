package dining

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiningEvent es una comida registrada en el calendario.
type DiningEvent struct {
	ID int64

	Title       string     `field:"title" validate:"required"`
	Date        time.Time  `field:"date"`
	EndDatetime *time.Time `field:"end_datetime"` // sin orden validado respecto a Date

	Location string  `field:"location" validate:"required"`
	Category *string `field:"category"`

	Participants []string `field:"participants"`
	CostTotal    decimal.Decimal
	Rating       int      `field:"rating" validate:"gte=0,lte=5"`
	Tags         []string `field:"tags"`

	Notes     string  `field:"notes"`
	ImagePath *string `field:"image_path"` // lo produce el flujo de upload
}

// NormalizeCollections garantiza que participants/tags nunca salgan como nil.
func (e *DiningEvent) NormalizeCollections() {
	if e.Participants == nil {
		e.Participants = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
}

// CreateInput es la representación tipada que produce el Normalizer a partir
// del payload libre de creación.
type CreateInput struct {
	Title        string
	Date         time.Time
	EndDatetime  *time.Time
	Location     string
	Category     *string
	Participants []string
	CostTotal    decimal.Decimal
	Rating       int
	Tags         []string
	Notes        string
	ImagePath    *string
}

// NewDiningEvent construye y valida un registro nuevo (sin ID todavía).
func NewDiningEvent(in CreateInput) (DiningEvent, error) {
	e := DiningEvent{
		Title:        in.Title,
		Date:         in.Date,
		EndDatetime:  in.EndDatetime,
		Location:     in.Location,
		Category:     in.Category,
		Participants: cloneStrings(in.Participants),
		CostTotal:    in.CostTotal,
		Rating:       in.Rating,
		Tags:         cloneStrings(in.Tags),
		Notes:        in.Notes,
		ImagePath:    in.ImagePath,
	}
	e.NormalizeCollections()

	if err := e.Validate(); err != nil {
		return DiningEvent{}, err
	}
	return e, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
