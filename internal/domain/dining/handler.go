package dining

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dining-calendar/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(map[string]any{"module": "dining"})

	r.Route("/events", func(er chi.Router) {
		er.Get("/", listEventsHandler(svc, log))
		er.Post("/", createEventHandler(svc, log))

		er.Get("/{eventID}", getEventHandler(svc, log))
		er.Put("/{eventID}", updateEventHandler(svc, log))
		er.Delete("/{eventID}", deleteEventHandler(svc, log))
	})
}

// eventResponse es la forma JSON de un evento de comida.
type eventResponse struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Date         time.Time   `json:"date"`
	EndDatetime  *time.Time  `json:"end_datetime"`
	Location     string      `json:"location"`
	Category     *string     `json:"category"`
	Participants []string    `json:"participants"`
	CostTotal    json.Number `json:"cost_total" swaggertype:"number"`
	Rating       int         `json:"rating"`
	Tags         []string    `json:"tags"`
	Notes        string      `json:"notes"`
	ImagePath    *string     `json:"image_path"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Devuelve todos los eventos de comida. participants y tags nunca vienen null.
// @Tags events
// @Produce json
// @Success 200 {array} eventResponse
// @Failure 500 {string} string "internal error"
// @Router /events [get]
func listEventsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Acepta un objeto JSON libre. date/end_datetime admiten ISO-8601 (con o sin zona), timestamps Unix, "YYYY-MM-DDTHH:MM" o "YYYY-MM-DD". end_datetime también se acepta como endDate. participants/tags admiten array o texto separado por comas. rating tiene que estar entre 0 y 5; fuera de ese rango responde 400.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body object true "Datos del evento"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 500 {string} string "internal error"
// @Router /events [post]
func createEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(r.Body)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := svc.Normalizer().CreateInput(raw)
		if err != nil {
			writeError(w, log, err)
			return
		}

		e, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, log, err)
			return
		}

		log.Debug("event created", map[string]any{"event_id": e.ID})
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// getEventHandler godoc
// @Summary Obtener evento
// @Tags events
// @Produce json
// @Param eventID path int true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid event id"
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := eventIDParam(w, r)
		if !ok {
			return
		}

		e, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// updateEventHandler godoc
// @Summary Actualizar evento (parcial)
// @Description Solo se modifican los campos presentes en el cuerpo. Un campo enviado como null se aplica igual (si el campo lo admite). rating tiene que estar entre 0 y 5; fuera de ese rango responde 400.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path int true "ID del evento"
// @Param payload body object true "Campos a modificar"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [put]
func updateEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := eventIDParam(w, r)
		if !ok {
			return
		}

		// Decodificamos a map para detectar presencia de cada campo.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := ParseUpdate(raw, svc.Normalizer())
		if err != nil {
			writeError(w, log, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, u)
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(updated))
	}
}

// deleteEventHandler godoc
// @Summary Borrar evento
// @Description Siempre responde éxito, exista o no el evento.
// @Tags events
// @Produce json
// @Param eventID path int true "ID del evento"
// @Success 200 {object} messageResponse
// @Failure 400 {string} string "invalid event id"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [delete]
func deleteEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := eventIDParam(w, r)
		if !ok {
			return
		}

		existed, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, log, err)
			return
		}

		log.Debug("event delete", map[string]any{"event_id": id, "existed": existed})
		writeJSON(w, http.StatusOK, messageResponse{Message: "Event deleted"})
	}
}

func eventIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "eventID")), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeObject lee un objeto JSON conservando los números como json.Number.
func decodeObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("body must be a json object")
	}
	return raw, nil
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	default:
		log.Error("storage failure", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEventResponse(e DiningEvent) eventResponse {
	e.NormalizeCollections()
	return eventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Date:         e.Date,
		EndDatetime:  e.EndDatetime,
		Location:     e.Location,
		Category:     e.Category,
		Participants: e.Participants,
		CostTotal:    json.Number(e.CostTotal.String()),
		Rating:       e.Rating,
		Tags:         e.Tags,
		Notes:        e.Notes,
		ImagePath:    e.ImagePath,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
