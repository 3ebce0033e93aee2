package generate_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"figurine/internal/generated/dto"
	"figurine/internal/service/generation"
	"figurine/pkg/logger"
)

const maxUploadSize = 32 << 20 // 32 MiB

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	photo, contentType, err := firstUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo upload missing")
		return
	}

	result, err := h.service.Generate(r.Context(), photo, contentType)
	if err != nil {
		switch {
		case errors.Is(err, generation.ErrEmptyUpload):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("generate artifacts")
			writeError(w, http.StatusInternalServerError, "generation failed")
		}
		return
	}

	response := dto.GenerateResponse{
		Prompt:    result.Prompt,
		Artifacts: result.Artifacts,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// firstUpload returns the first file in the form regardless of its field
// name, matching how the shop frontend posts the photo.
func firstUpload(r *http.Request) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", errors.New("no multipart form")
	}

	for _, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		file, err := header.Open()
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		photo, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}

		return photo, header.Header.Get("Content-Type"), nil
	}

	return nil, "", errors.New("no file in form")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}
