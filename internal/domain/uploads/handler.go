package uploads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dining-calendar/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	MaxBytes int64

	// Dir y URLPrefix se usan para servir los archivos de vuelta.
	Dir       string
	URLPrefix string
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions, log logger.Logger) {
	log = log.With(map[string]any{"module": "uploads"})

	r.Post("/upload-image", uploadImageHandler(svc, opts.MaxBytes, log))

	if opts.Dir != "" {
		prefix := "/" + strings.Trim(opts.URLPrefix, "/")
		if prefix == "/" {
			prefix = "/uploads"
		}
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(opts.Dir))))
	}
}

type uploadResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// uploadImageHandler godoc
// @Summary Subir imagen
// @Description Guarda el archivo del campo multipart `file` bajo el directorio de uploads. Devuelve la ruta a guardar en image_path. Un nombre repetido reemplaza el archivo anterior salvo que uploads.unique_names esté activo.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Imagen"
// @Success 200 {object} uploadResponse
// @Failure 400 {string} string "missing file / invalid file name"
// @Failure 413 {string} string "file too large"
// @Failure 500 {string} string "internal error"
// @Router /upload-image [post]
func uploadImageHandler(svc *Service, maxBytes int64, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		stored, err := svc.Save(r.Context(), header.Filename, file)
		if err != nil {
			if errors.Is(err, ErrInvalidName) {
				http.Error(w, "invalid file name", http.StatusBadRequest)
				return
			}
			log.Error("upload failed", map[string]any{"error": err.Error(), "filename": header.Filename})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Info("image uploaded", map[string]any{"filename": stored.Filename, "size": header.Size})
		writeJSON(w, http.StatusOK, uploadResponse{Filename: stored.Filename, Path: stored.Path})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
