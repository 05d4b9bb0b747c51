package dining

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Optional marca si un campo vino explícitamente en el payload.
// Set=true con Value cero significa "enviado vacío/null", que igual se aplica.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Update es la representación parcial de PUT /events/{id}: nil/Set=false = no tocar.
type Update struct {
	Title        Optional[string]
	Date         Optional[time.Time]
	EndDatetime  Optional[*time.Time]
	Location     Optional[string]
	Category     Optional[*string]
	Participants Optional[[]string]
	CostTotal    Optional[decimal.Decimal]
	Rating       Optional[int]
	Tags         Optional[[]string]
	Notes        Optional[string]
	ImagePath    Optional[*string]
}

// ParseUpdate construye un Update a partir del cuerpo crudo, detectando presencia
// de cada clave. Fechas y listas pasan por el Normalizer igual que en la creación.
func ParseUpdate(raw map[string]json.RawMessage, n Normalizer) (Update, error) {
	var u Update

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// end_datetime tiene prioridad sobre el alias endDate
	_, hasEnd := raw["end_datetime"]

	for _, key := range keys {
		msg := raw[key]

		switch key {
		case "id":
			// el id es inmutable; se ignora si el cliente reenvía el registro completo
			continue

		case "title":
			s, err := decodeText(key, msg)
			if err != nil {
				return Update{}, err
			}
			u.Title = Some(strings.TrimSpace(s))

		case "date":
			v, err := decodeLoose(key, msg)
			if err != nil {
				return Update{}, err
			}
			t, err := n.Datetime(key, v)
			if err != nil {
				return Update{}, err
			}
			if t == nil {
				return Update{}, invalid(key, nil, "cannot be empty")
			}
			u.Date = Some(*t)

		case "end_datetime", "endDate":
			if key == "endDate" && hasEnd {
				continue
			}
			v, err := decodeLoose(key, msg)
			if err != nil {
				return Update{}, err
			}
			t, err := n.Datetime(key, v)
			if err != nil {
				return Update{}, err
			}
			u.EndDatetime = Some(t)

		case "location":
			s, err := decodeText(key, msg)
			if err != nil {
				return Update{}, err
			}
			u.Location = Some(strings.TrimSpace(s))

		case "category":
			s, err := decodeNullableText(key, msg)
			if err != nil {
				return Update{}, err
			}
			u.Category = Some(s)

		case "participants":
			v, err := decodeLoose(key, msg)
			if err != nil {
				return Update{}, err
			}
			list, err := List(key, v)
			if err != nil {
				return Update{}, err
			}
			u.Participants = Some(list)

		case "cost_total":
			v, err := decodeLoose(key, msg)
			if err != nil {
				return Update{}, err
			}
			if v == nil {
				return Update{}, invalid(key, nil, "cannot be null")
			}
			d, err := decimalValue(key, v)
			if err != nil {
				return Update{}, err
			}
			u.CostTotal = Some(d)

		case "rating":
			v, err := decodeLoose(key, msg)
			if err != nil {
				return Update{}, err
			}
			if v == nil {
				return Update{}, invalid(key, nil, "cannot be null")
			}
			i, err := intValue(key, v)
			if err != nil {
				return Update{}, err
			}
			u.Rating = Some(i)

		case "tags":
			v, err := decodeLoose(key, msg)
			if err != nil {
				return Update{}, err
			}
			list, err := List(key, v)
			if err != nil {
				return Update{}, err
			}
			u.Tags = Some(list)

		case "notes":
			s, err := decodeText(key, msg)
			if err != nil {
				return Update{}, err
			}
			u.Notes = Some(s)

		case "image_path":
			s, err := decodeNullableText(key, msg)
			if err != nil {
				return Update{}, err
			}
			u.ImagePath = Some(s)

		default:
			return Update{}, invalid(key, nil, "is not a known field")
		}
	}

	return u, nil
}

// ApplyTo devuelve e con los campos presentes en u sobrescritos.
// El ID no cambia nunca. El resultado se normaliza y valida.
func (u Update) ApplyTo(e DiningEvent) (DiningEvent, error) {
	if u.Title.Set {
		e.Title = u.Title.Value
	}
	if u.Date.Set {
		e.Date = u.Date.Value
	}
	if u.EndDatetime.Set {
		e.EndDatetime = u.EndDatetime.Value
	}
	if u.Location.Set {
		e.Location = u.Location.Value
	}
	if u.Category.Set {
		e.Category = u.Category.Value
	}
	if u.Participants.Set {
		e.Participants = cloneStrings(u.Participants.Value)
	}
	if u.CostTotal.Set {
		e.CostTotal = u.CostTotal.Value
	}
	if u.Rating.Set {
		e.Rating = u.Rating.Value
	}
	if u.Tags.Set {
		e.Tags = cloneStrings(u.Tags.Value)
	}
	if u.Notes.Set {
		e.Notes = u.Notes.Value
	}
	if u.ImagePath.Set {
		e.ImagePath = u.ImagePath.Value
	}

	e.NormalizeCollections()
	if err := e.Validate(); err != nil {
		return DiningEvent{}, err
	}
	return e, nil
}

func isNull(msg json.RawMessage) bool {
	return len(bytes.TrimSpace(msg)) == 0 || string(bytes.TrimSpace(msg)) == "null"
}

func decodeText(field string, msg json.RawMessage) (string, error) {
	if isNull(msg) {
		return "", invalid(field, nil, "cannot be null")
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return "", invalid(field, string(msg), "must be a string")
	}
	return s, nil
}

func decodeNullableText(field string, msg json.RawMessage) (*string, error) {
	if isNull(msg) {
		return nil, nil
	}
	s, err := decodeText(field, msg)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// decodeLoose decodifica a any preservando números como json.Number.
func decodeLoose(field string, msg json.RawMessage) (any, error) {
	if isNull(msg) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalid(field, string(msg), "is not valid json")
	}
	return v, nil
}
