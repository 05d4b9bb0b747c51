package dining

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	minYear = 1
	maxYear = 9999

	// 0001-01-01 y 9999-12-31 en segundos Unix, con un día de margen por zona.
	minUnix = -62135596800 + 86400
	maxUnix = 253402300799 - 86400

	// maxCostDigits acota cifras enteras y decimales de cost_total.
	maxCostDigits = 38
)

// Claves alternativas aceptadas para end_datetime, en orden de prioridad.
var endDatetimeKeys = []string{"end_datetime", "endDate"}

type layout struct {
	value string
	zoned bool // si false, se interpreta en la zona del Normalizer
}

// ISO-8601 (con la Z final ya reescrita a +00:00).
var isoLayouts = []layout{
	{time.RFC3339Nano, true},
	{"2006-01-02 15:04:05.999999999Z07:00", true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02 15:04Z07:00", true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02 15:04:05.999999999", false},
	{"2006-01-02 15:04", false},
}

// Formatos explícitos que se prueban después de ISO, en este orden.
var fallbackLayouts = []layout{
	{"2006-01-02T15:04:05-0700", true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02", false},
}

// Normalizer convierte valores laxos del cliente en valores tipados.
// Es puro: no tiene estado aparte de la zona horaria usada para fechas sin offset
// y para timestamps Unix.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return Normalizer{loc: loc}
}

func (n Normalizer) Location() *time.Location {
	if n.loc == nil {
		return time.Local
	}
	return n.loc
}

// Datetime normaliza un valor de fecha/hora.
// nil o texto vacío => (nil, nil). Texto no reconocido => InvalidInputError con el valor crudo.
// El año resultante tiene que caer en 1..9999.
func (n Normalizer) Datetime(field string, v any) (*time.Time, error) {
	t, err := n.datetime(field, v)
	if err != nil || t == nil {
		return t, err
	}
	if y := t.Year(); y < minYear || y > maxYear {
		return nil, invalid(field, rawValue(v), "is out of range")
	}
	return t, nil
}

func (n Normalizer) datetime(field string, v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case *time.Time:
		return t, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, invalid(field, t.String(), "is not a valid unix timestamp")
		}
		return n.fromUnix(field, t.String(), f)
	case float64:
		return n.fromUnix(field, t, t)
	case int:
		return n.fromUnix(field, t, float64(t))
	case int64:
		return n.fromUnix(field, t, float64(t))
	case string:
		return n.parseText(field, t)
	default:
		return nil, invalid(field, v, "must be a datetime string or a unix timestamp")
	}
}

func rawValue(v any) any {
	if num, ok := v.(json.Number); ok {
		return num.String()
	}
	return v
}

// fromUnix rechaza segundos fuera de 0001..9999 antes de convertir a int64.
func (n Normalizer) fromUnix(field string, raw any, f float64) (*time.Time, error) {
	if math.IsNaN(f) || f < minUnix || f > maxUnix {
		return nil, invalid(field, raw, "is out of range")
	}
	sec, frac := math.Modf(f)
	ts := time.Unix(int64(sec), int64(math.Round(frac*1e9))).In(n.Location())
	return &ts, nil
}

func (n Normalizer) parseText(field, raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	iso := s
	if strings.HasSuffix(iso, "Z") {
		iso = strings.TrimSuffix(iso, "Z") + "+00:00"
	}
	if t, ok := n.tryLayouts(isoLayouts, iso); ok {
		return &t, nil
	}
	if t, ok := n.tryLayouts(fallbackLayouts, s); ok {
		return &t, nil
	}

	return nil, invalid(field, raw, "is not a recognized datetime")
}

func (n Normalizer) tryLayouts(layouts []layout, s string) (time.Time, bool) {
	for _, l := range layouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.value, s)
		} else {
			t, err = time.ParseInLocation(l.value, s, n.Location())
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// List normaliza participants/tags: una secuencia pasa tal cual, un texto se
// separa por comas (trim + sin vacíos) y nil queda como secuencia vacía.
func List(field string, v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		if t == nil {
			return []string{}, nil
		}
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(fmt.Sprintf("%s[%d]", field, i), item, "must be a string")
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return SplitList(t), nil
	default:
		return nil, invalid(field, v, "must be a list of strings or a comma-separated string")
	}
}

// SplitList separa "a, b ,,c" en ["a","b","c"].
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CreateInput normaliza el payload libre de POST /events.
// Cualquier fallo aborta todo el payload; no hay aplicación parcial.
func (n Normalizer) CreateInput(raw map[string]any) (CreateInput, error) {
	var (
		in  CreateInput
		err error
	)

	if in.Title, err = requiredText(raw, "title"); err != nil {
		return CreateInput{}, err
	}

	date, err := n.Datetime("date", raw["date"])
	if err != nil {
		return CreateInput{}, err
	}
	if date == nil {
		return CreateInput{}, invalid("date", nil, "is required")
	}
	in.Date = *date

	endKey, endVal := firstNonEmpty(raw, endDatetimeKeys...)
	if in.EndDatetime, err = n.Datetime(endKey, endVal); err != nil {
		return CreateInput{}, err
	}

	if in.Location, err = requiredText(raw, "location"); err != nil {
		return CreateInput{}, err
	}
	if in.Category, err = optionalText(raw, "category"); err != nil {
		return CreateInput{}, err
	}
	if in.Participants, err = List("participants", raw["participants"]); err != nil {
		return CreateInput{}, err
	}

	cost, ok := raw["cost_total"]
	if !ok || cost == nil {
		return CreateInput{}, invalid("cost_total", nil, "is required")
	}
	if in.CostTotal, err = decimalValue("cost_total", cost); err != nil {
		return CreateInput{}, err
	}

	rating, ok := raw["rating"]
	if !ok || rating == nil {
		return CreateInput{}, invalid("rating", nil, "is required")
	}
	if in.Rating, err = intValue("rating", rating); err != nil {
		return CreateInput{}, err
	}

	if in.Tags, err = List("tags", raw["tags"]); err != nil {
		return CreateInput{}, err
	}

	notes, ok := raw["notes"]
	if !ok || notes == nil {
		return CreateInput{}, invalid("notes", nil, "is required")
	}
	s, ok := notes.(string)
	if !ok {
		return CreateInput{}, invalid("notes", notes, "must be a string")
	}
	in.Notes = s

	if in.ImagePath, err = optionalText(raw, "image_path"); err != nil {
		return CreateInput{}, err
	}

	return in, nil
}

// firstNonEmpty devuelve la primera clave presente con valor no vacío.
// Si ninguna lo tiene, devuelve la primera clave y nil.
func firstNonEmpty(raw map[string]any, keys ...string) (string, any) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return k, v
	}
	return keys[0], nil
}

func requiredText(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", invalid(key, nil, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(key, v, "must be a string")
	}
	return strings.TrimSpace(s), nil
}

func optionalText(raw map[string]any, key string) (*string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalid(key, v, "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func decimalValue(field string, v any) (decimal.Decimal, error) {
	d, err := parseDecimal(field, v)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Exponent() < -maxCostDigits || d.NumDigits()+int(d.Exponent()) > maxCostDigits {
		return decimal.Zero, invalid(field, rawValue(v), "is out of range")
	}
	return d, nil
}

func parseDecimal(field string, v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, invalid(field, t.String(), "must be a number")
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case decimal.Decimal:
		return t, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, invalid(field, t, "must be a number")
		}
		return d, nil
	default:
		return decimal.Zero, invalid(field, v, "must be a number")
	}
}

func intValue(field string, v any) (int, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.Atoi(t.String()); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, invalid(field, t.String(), "must be an integer")
		}
		return int(f), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, invalid(field, t, "must be an integer")
		}
		return int(t), nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, invalid(field, t, "must be an integer")
		}
		return i, nil
	default:
		return 0, invalid(field, v, "must be an integer")
	}
}
